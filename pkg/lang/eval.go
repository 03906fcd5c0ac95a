package lang

// Eval reduces a Value to a Value under env, per spec.md §4.2. Grounded on
// the teacher's pkg/core/eval.go `Eval`/`evalSpecialForm`/`evalFunctionCall`
// shape, generalized with the full special-form set, variadic binding,
// member-call sugar and stacktrace capture.
func Eval(expr Value, env *Environment) (Value, error) {
	switch v := expr.(type) {
	case Symbol:
		val, ok := env.Lookup(v)
		if !ok {
			return nil, NewError(UndefinedSymbol, "%s", string(v))
		}
		return val, nil

	case *Seq:
		switch v.Kind() {
		case QuoteKind:
			return v.AsList(), nil
		case TupleKind:
			return evalTuple(v, env)
		default: // ListKind
			if v.IsEmpty() {
				return v, nil
			}
			return evalList(v, env)
		}

	default:
		// Num, Bool, Nil, Str, *Function, *LazySeq, *Dict, Record: all
		// self-evaluating (spec.md §4.2).
		return expr, nil
	}
}

func evalTuple(v *Seq, env *Environment) (Value, error) {
	elems := v.Elements()
	out := make([]Value, len(elems))
	for i, e := range elems {
		ev, err := Eval(e, env)
		if err != nil {
			return nil, err
		}
		out[i] = ev
	}
	return NewSeq(TupleKind, out...), nil
}

// specialForms is the set of symbols recognized in head position whose
// arguments are not pre-evaluated (spec.md §4.2).
var specialForms = map[Symbol]bool{
	"def": true, "defn": true, "fn": true, "if": true, "cond": true,
	"match": true, "do": true, "bind": true, "quote": true, "and": true, "or": true,
}

func evalList(v *Seq, env *Environment) (Value, error) {
	if sym, ok := v.First().(Symbol); ok {
		if name, isMember := memberCallTarget(sym); isMember {
			return evalMemberCall(name, v.Rest(), env)
		}
		if specialForms[sym] {
			return evalSpecialForm(sym, v.Rest(), env)
		}
	}

	head, err := Eval(v.First(), env)
	if err != nil {
		return nil, err
	}
	fn, ok := head.(*Function)
	if !ok {
		return nil, NewError(BadTypes, "cannot call non-function value %s", head.String())
	}

	args, err := evalArgs(v.Rest(), env)
	if err != nil {
		return nil, err
	}
	return Apply(fn, args, env)
}

func evalArgs(rest *Seq, env *Environment) ([]Value, error) {
	var args []Value
	for c := rest; c != nil; c = c.Rest() {
		a, err := Eval(c.First(), env)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return args, nil
}

func evalMemberCall(method string, rest *Seq, env *Environment) (Value, error) {
	args, err := evalArgs(rest, env)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, NewError(ArityMismatch, ".%s expects a record receiver", method)
	}
	rec, ok := args[0].(Record)
	if !ok {
		return nil, NewError(BadTypes, ".%s expects a record, got %s", method, TypeName(args[0]))
	}
	result, err := CallMethod(rec, method, args[1:])
	if err != nil {
		return nil, WithFrame(err, "."+method, args)
	}
	return result, nil
}

// Apply invokes fn with already-evaluated args, per spec.md §4.2's
// function-invocation rules: arity check, push a frame parented to root
// (user functions never close over the caller's environment), evaluate
// the body, and decorate any error with a call frame on the way out.
func Apply(fn *Function, args []Value, env *Environment) (Value, error) {
	if err := checkArity(fn, len(args)); err != nil {
		return nil, WithFrame(err, calleeName(fn), args)
	}

	if fn.IsBuiltin() {
		result, err := fn.Builtin(args, env)
		if err != nil {
			return nil, WithFrame(err, calleeName(fn), args)
		}
		return result, nil
	}

	fnEnv := NewEnvironment(fn.Closure.Root())
	bindParams(fn.Params, args, fnEnv)

	result, err := Eval(fn.Body, fnEnv)
	if err != nil {
		return nil, WithFrame(err, calleeName(fn), args)
	}
	return result, nil
}

func calleeName(fn *Function) string {
	if fn.Name != "" {
		return fn.Name
	}
	return "anonymous"
}

func checkArity(fn *Function, got int) error {
	need := len(fn.Params.Fixed)
	if fn.Params.IsVariadic() {
		if got < need {
			return NewError(ArityMismatch, "%s expects at least %d argument(s), got %d", calleeName(fn), need, got)
		}
		return nil
	}
	if got != need {
		return NewError(ArityMismatch, "%s expects %d argument(s), got %d", calleeName(fn), need, got)
	}
	return nil
}

func bindParams(params ParamSpec, args []Value, env *Environment) {
	for i, p := range params.Fixed {
		env.Define(p, args[i])
	}
	if params.IsVariadic() {
		env.Define(params.Rest, NewSeq(ListKind, args[len(params.Fixed):]...))
	}
}

// --- Special forms ---

func evalSpecialForm(sym Symbol, args *Seq, env *Environment) (Value, error) {
	switch sym {
	case "quote":
		return evalQuoteForm(args)
	case "if":
		return evalIf(args, env)
	case "cond":
		return evalCond(args, env)
	case "match":
		return evalMatch(args, env)
	case "do":
		return evalDo(args, env)
	case "def":
		return evalDef(args, env)
	case "defn":
		return evalDefn(args, env)
	case "fn":
		return evalFn(args, env)
	case "bind":
		return evalBind(args, env)
	case "and":
		return evalAnd(args, env)
	case "or":
		return evalOr(args, env)
	default:
		return nil, NewError(BadTypes, "unknown special form %s", sym)
	}
}

func evalQuoteForm(args *Seq) (Value, error) {
	if args.Len() != 1 {
		return nil, NewError(ArityMismatch, "quote expects 1 argument, got %d", args.Len())
	}
	return args.First(), nil
}

func evalIf(args *Seq, env *Environment) (Value, error) {
	n := args.Len()
	if n < 2 || n > 3 {
		return nil, NewError(ArityMismatch, "if expects 2-3 arguments, got %d", n)
	}
	elems := args.Elements()
	cond, err := Eval(elems[0], env)
	if err != nil {
		return nil, err
	}
	if IsTruthy(cond) {
		return Eval(elems[1], env)
	}
	if n == 3 {
		return Eval(elems[2], env)
	}
	return Nil{}, nil
}

func evalCond(args *Seq, env *Environment) (Value, error) {
	elems := args.Elements()
	if len(elems)%2 != 0 {
		return nil, NewError(ArityMismatch, "cond expects an even number of arguments, got %d", len(elems))
	}
	for i := 0; i < len(elems); i += 2 {
		test, err := Eval(elems[i], env)
		if err != nil {
			return nil, err
		}
		if IsTruthy(test) {
			return Eval(elems[i+1], env)
		}
	}
	return Nil{}, nil
}

func evalMatch(args *Seq, env *Environment) (Value, error) {
	elems := args.Elements()
	if len(elems) < 1 {
		return nil, NewError(ArityMismatch, "match expects at least 1 argument")
	}
	x, err := Eval(elems[0], env)
	if err != nil {
		return nil, err
	}
	clauses := elems[1:]
	for i := 0; i+1 < len(clauses); i += 2 {
		pattern := clauses[i]
		if sym, ok := pattern.(Symbol); ok && sym == "_" {
			return Eval(clauses[i+1], env)
		}
		pv, err := Eval(pattern, env)
		if err != nil {
			return nil, err
		}
		if Equal(pv, x) {
			return Eval(clauses[i+1], env)
		}
	}
	return Nil{}, nil
}

func evalDo(args *Seq, env *Environment) (Value, error) {
	var result Value = Nil{}
	for c := args; c != nil; c = c.Rest() {
		var err error
		result, err = Eval(c.First(), env)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func evalDef(args *Seq, env *Environment) (Value, error) {
	if args.Len() != 2 {
		return nil, NewError(ArityMismatch, "def expects 2 arguments, got %d", args.Len())
	}
	elems := args.Elements()
	sym, ok := elems[0].(Symbol)
	if !ok {
		return nil, NewError(BadTypes, "def expects a symbol, got %s", TypeName(elems[0]))
	}
	value, err := Eval(elems[1], env)
	if err != nil {
		return nil, err
	}
	env.Root().Define(sym, value)
	return value, nil
}

func evalDefn(args *Seq, env *Environment) (Value, error) {
	elems := args.Elements()
	if len(elems) < 2 {
		return nil, NewError(ArityMismatch, "defn expects a name, parameter list, and body")
	}
	name, ok := elems[0].(Symbol)
	if !ok {
		return nil, NewError(BadTypes, "defn expects a symbol name, got %s", TypeName(elems[0]))
	}
	params, err := parseParams(elems[1])
	if err != nil {
		return nil, err
	}
	bodyForms := elems[2:]
	doc := ""
	if len(bodyForms) > 1 {
		if s, ok := bodyForms[0].(Str); ok {
			doc = string(s)
			bodyForms = bodyForms[1:]
		}
	}
	fn := &Function{
		Name:    string(name),
		Params:  params,
		Doc:     doc,
		Body:    implicitDo(bodyForms),
		Closure: env.Root(),
	}
	env.Root().Define(name, fn)
	return fn, nil
}

func evalFn(args *Seq, env *Environment) (Value, error) {
	elems := args.Elements()
	if len(elems) < 2 {
		return nil, NewError(ArityMismatch, "fn expects a parameter list and body")
	}
	params, err := parseParams(elems[0])
	if err != nil {
		return nil, err
	}
	return &Function{
		Params:  params,
		Body:    implicitDo(elems[1:]),
		Closure: env.Root(),
	}, nil
}

func implicitDo(forms []Value) Value {
	if len(forms) == 1 {
		return forms[0]
	}
	return NewSeq(ListKind, append([]Value{Intern("do")}, forms...)...)
}

// parseParams reads a parameter list, recognizing `&rest` per spec.md
// §4.2 ("A parameter list may contain `&` followed by one symbol").
func parseParams(v Value) (ParamSpec, error) {
	seq, ok := v.(*Seq)
	if !ok {
		return ParamSpec{}, NewError(BadTypes, "expected a parameter list, got %s", TypeName(v))
	}
	var spec ParamSpec
	elems := seq.Elements()
	for i := 0; i < len(elems); i++ {
		sym, ok := elems[i].(Symbol)
		if !ok {
			return ParamSpec{}, NewError(BadTypes, "parameter names must be symbols, got %s", TypeName(elems[i]))
		}
		if sym == "&" {
			if i+2 != len(elems) {
				return ParamSpec{}, NewError(BadTypes, "`&` must be followed by exactly one rest parameter")
			}
			rest, ok := elems[i+1].(Symbol)
			if !ok {
				return ParamSpec{}, NewError(BadTypes, "rest parameter must be a symbol")
			}
			spec.Rest = rest
			break
		}
		spec.Fixed = append(spec.Fixed, sym)
	}
	return spec, nil
}

func evalBind(args *Seq, env *Environment) (Value, error) {
	elems := args.Elements()
	if len(elems) < 1 {
		return nil, NewError(ArityMismatch, "bind expects a binding list and a body")
	}
	bindingSeq, ok := elems[0].(*Seq)
	if !ok {
		return nil, NewError(BadTypes, "bind expects a list of bindings, got %s", TypeName(elems[0]))
	}
	bindings := bindingSeq.Elements()
	if len(bindings)%2 != 0 {
		return nil, NewError(ArityMismatch, "bind expects an even number of binding forms")
	}
	bindEnv := env.PushChild()
	for i := 0; i < len(bindings); i += 2 {
		sym, ok := bindings[i].(Symbol)
		if !ok {
			return nil, NewError(BadTypes, "bind names must be symbols, got %s", TypeName(bindings[i]))
		}
		value, err := Eval(bindings[i+1], bindEnv)
		if err != nil {
			return nil, err
		}
		bindEnv.Define(sym, value)
	}
	return evalDo(NewSeq(ListKind, elems[1:]...), bindEnv)
}

func evalAnd(args *Seq, env *Environment) (Value, error) {
	var result Value = Bool(true)
	for c := args; c != nil; c = c.Rest() {
		var err error
		result, err = Eval(c.First(), env)
		if err != nil {
			return nil, err
		}
		if !IsTruthy(result) {
			return result, nil
		}
	}
	return result, nil
}

func evalOr(args *Seq, env *Environment) (Value, error) {
	var result Value = Bool(false)
	for c := args; c != nil; c = c.Rest() {
		var err error
		result, err = Eval(c.First(), env)
		if err != nil {
			return nil, err
		}
		if IsTruthy(result) {
			return result, nil
		}
	}
	return result, nil
}

// builtin constructs a registry entry, used across the builtins_*.go files.
// Builtins validate their own arity internally (the contract varies too
// much to express as a single ParamSpec), so the wrapper is modeled as
// variadic and Apply defers entirely to the builtin's own checks.
func builtin(name, doc string, fn BuiltinFn) *Function {
	return &Function{Name: name, Doc: doc, Builtin: fn, Params: ParamSpec{Rest: "args"}}
}
