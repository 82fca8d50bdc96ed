package combspec

import "reflect"

// typeName returns the unqualified type name of v, unwrapping every level
// of pointer — used as the strategy_class fallback (§6) when a Strategy
// doesn't implement StrategyDescriber.
func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// packagePath returns the import path of v's type, unwrapping every level
// of pointer — used as the class_module fallback (§6).
func packagePath(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.PkgPath()
}
