package lang

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v2"
)

// numericPrecision is the significant-digit budget for every arithmetic
// operation. +, -, * are exact at any realistic interpreter-scale input;
// / and sqrt round half-even at this precision when the true result isn't
// exactly representable (spec.md §4.3's "/ preserves exact decimal
// representation" is read as "exact up to this budget", documented rather
// than silently truncated — see SPEC_FULL.md §4.3).
const numericPrecision = 200

var numCtx = func() *apd.Context {
	c := apd.BaseContext.WithPrecision(numericPrecision)
	c.Rounding = apd.RoundHalfEven
	return c
}()

// truncCtx rounds down (toward zero) rather than half-even, used by `int`
// and the integer-valued predicate below.
var truncCtx = func() *apd.Context {
	c := numCtx.WithPrecision(numericPrecision)
	c.Rounding = apd.RoundDown
	return c
}()

// Num is the arbitrary-precision decimal Value variant. The zero value is
// not meaningful; use NewNum/ParseNum.
type Num struct {
	d *apd.Decimal
}

// NewNum wraps an *apd.Decimal as a Num. The decimal is not copied; callers
// must not mutate it afterwards.
func NewNum(d *apd.Decimal) Num { return Num{d: d} }

// NewNumFromInt64 builds a Num from an int64.
func NewNumFromInt64(i int64) Num { return Num{d: apd.New(i, 0)} }

// ParseNum parses a decimal literal (reader-facing; see reader.go).
func ParseNum(s string) (Num, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Num{}, err
	}
	return Num{d: d}, nil
}

func (n Num) Decimal() *apd.Decimal { return n.d }

// String renders per spec.md §6: integers with no decimal point,
// fractionals with enough digits to round-trip (apd's own %s formatting
// preserves the stored coefficient/exponent, i.e. the scale the value
// carries). An integer-valued result with a negative exponent (0.5 + 0.5
// is stored as 1.0) is rescaled to exponent 0 first.
func (n Num) String() string {
	if n.d == nil {
		return "0"
	}
	d := n.d
	if d.Exponent < 0 && n.IsInteger() {
		var z apd.Decimal
		_, _ = truncCtx.Quantize(&z, d, 0)
		d = &z
	}
	s := d.String()
	// apd renders exponents >= 0 in plain form already for reasonable
	// magnitudes; guard against scientific notation creeping into small
	// everyday integers/decimals by preferring Text('f') when it differs.
	if strings.ContainsAny(s, "eE") {
		return d.Text('f')
	}
	return s
}

func (n Num) IsInteger() bool {
	if n.d == nil {
		return true
	}
	var z apd.Decimal
	_, _ = truncCtx.Quantize(&z, n.d, 0)
	return z.Cmp(n.d) == 0
}

func (n Num) Cmp(o Num) int {
	return n.d.Cmp(o.d)
}

func (n Num) IsZero() bool { return n.d.IsZero() }

func (n Num) Sign() int { return n.d.Sign() }

func numOp2(op func(z, x, y *apd.Decimal) (apd.Condition, error), x, y Num) (Num, error) {
	var z apd.Decimal
	_, err := op(&z, x.d, y.d)
	if err != nil {
		return Num{}, err
	}
	return Num{d: &z}, nil
}

// Add implements `+` between two numbers.
func Add(x, y Num) (Num, error) { return numOp2(numCtx.Add, x, y) }

// Sub implements binary `-`.
func Sub(x, y Num) (Num, error) { return numOp2(numCtx.Sub, x, y) }

// Mul implements `*` between two numbers.
func Mul(x, y Num) (Num, error) { return numOp2(numCtx.Mul, x, y) }

// Neg implements unary `-`.
func Neg(x Num) (Num, error) {
	var z apd.Decimal
	_, err := numCtx.Neg(&z, x.d)
	return Num{d: &z}, err
}

// Div implements `/`; divide-by-zero is surfaced to the caller as a bool
// so eval can raise DivideByZero with call-site context.
func Div(x, y Num) (Num, bool, error) {
	if y.IsZero() {
		return Num{}, true, nil
	}
	z, err := numOp2(numCtx.Quo, x, y)
	return z, false, err
}

// Mod implements `%`, truncating toward zero like Go's Rem.
func Mod(x, y Num) (Num, bool, error) {
	if y.IsZero() {
		return Num{}, true, nil
	}
	z, err := numOp2(numCtx.Rem, x, y)
	return z, false, err
}

// Sqrt implements `sqrt`; negative input is the caller's responsibility to
// reject (BadTypes), per spec.md §4.3 ("non-negative Num").
func Sqrt(x Num) (Num, error) {
	var z apd.Decimal
	_, err := numCtx.Sqrt(&z, x.d)
	return Num{d: &z}, err
}

// Inc implements `inc` (+1).
func Inc(x Num) (Num, error) { return Add(x, NewNumFromInt64(1)) }

// Int64 returns n truncated toward zero as an int64, for builtins (`nth`,
// `take`, string-repeat counts, ...) that need a Go integer index/count.
// Routed through decimal text rather than apd's internal coefficient
// fields to keep this module's surface area on apd small and stable.
func (n Num) Int64() (int64, error) {
	var i apd.Decimal
	if _, err := truncCtx.Quantize(&i, n.d, 0); err != nil {
		return 0, err
	}
	var v int64
	_, err := fmt.Sscanf(i.Text('f'), "%d", &v)
	if err != nil {
		return 0, fmt.Errorf("number too large to use as an integer: %s", i.String())
	}
	return v, nil
}

// Trunc implements `int`, truncating toward zero.
func Trunc(x Num) Num {
	var z apd.Decimal
	_, _ = truncCtx.Quantize(&z, x.d, 0)
	return Num{d: &z}
}

// numericTypeError formats the standard BadTypes message for a
// non-numeric operand, used across numeric builtins.
func numericTypeError(op string, v Value) error {
	return fmt.Errorf("%s expects a number, got %s", op, TypeName(v))
}
