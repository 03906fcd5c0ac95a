package lang

import "fmt"

// CallMethod implements the `call_method` builtin contract shared by every
// Record (spec.md §4.6/§6).
func CallMethod(rec Record, name string, args []Value) (Value, error) {
	if _, ok := rec.Methods()[name]; !ok {
		return nil, fmt.Errorf("%s has no method %q", rec.RecordName(), name)
	}
	return rec.Invoke(name, args)
}

// MethodsList renders a Record's method table as a Dict of name -> doc,
// backing the `methods` builtin.
func MethodsList(rec Record) *Dict {
	d := NewDict()
	for name, m := range rec.Methods() {
		d = d.Assoc(Str(name), Str(m.Doc))
	}
	return d
}

// memberCallTarget splits a `.method` head-position symbol into the bare
// method name, per spec.md §4.6's member-call sugar:
// "(.name record args…)" is "(call_method record \"name\" args…)".
func memberCallTarget(sym Symbol) (string, bool) {
	s := string(sym)
	if len(s) > 1 && s[0] == '.' {
		return s[1:], true
	}
	return "", false
}
