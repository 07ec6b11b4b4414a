package binder

// call.go adapts Go functions and methods, found using reflection, to the resolver calling conventions

import (
	"context"
	"fmt"
	"reflect"

	"github.com/LiuXiaoZhuang/graphql/internal/field"
)

var infoType = reflect.TypeOf((*ResolveInfo)(nil))

// signature summarises the parameters and results of a resolver function or method
type signature struct {
	hasContext bool // 1st parameter is a context.Context
	hasInfo    bool // next parameter is a *ResolveInfo
	first      int  // index of the 1st positional parameter (source or argument)
	hasError   bool // 2nd result is an error
}

func newSignature(t reflect.Type) (*signature, error) {
	if t.IsVariadic() {
		return nil, fmt.Errorf("resolver function %v cannot be variadic", t)
	}
	s := &signature{}
	if s.first < t.NumIn() && t.In(s.first) == field.ContextType {
		s.hasContext = true
		s.first++
	}
	if s.first < t.NumIn() && t.In(s.first) == infoType {
		s.hasInfo = true
		s.first++
	}
	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != field.ErrorType {
			return nil, fmt.Errorf("second return value of resolver function %v must be error", t)
		}
		s.hasError = true
	default:
		return nil, fmt.Errorf("resolver function %v must return a value and optional error", t)
	}
	return s, nil
}

// call invokes fn - params are the positional parameters (excl. any context and info)
func (s *signature) call(ctx context.Context, fn reflect.Value, info *ResolveInfo, params []any) (any, error) {
	t := fn.Type()
	if len(params) != t.NumIn()-s.first {
		return nil, fmt.Errorf("resolver function %v expects %d parameter(s) but got %d", t, t.NumIn()-s.first, len(params))
	}
	in := make([]reflect.Value, 0, t.NumIn())
	if s.hasContext {
		if ctx == nil {
			ctx = context.Background()
		}
		in = append(in, reflect.ValueOf(ctx))
	}
	if s.hasInfo {
		in = append(in, reflect.ValueOf(info))
	}
	for i, p := range params {
		v, err := paramValue(p, t.In(s.first+i))
		if err != nil {
			return nil, fmt.Errorf("%w (parameter %d of %v)", err, i+1, t)
		}
		in = append(in, v)
	}

	out := fn.Call(in)
	if s.hasError && !out[1].IsNil() {
		return nil, out[1].Interface().(error) // returned as is
	}
	return out[0].Interface(), nil
}

// paramValue makes a reflect.Value of type t from p.  Values of named types are converted
// to/from their underlying type (eg string to ID) as are numbers if the value is kept (eg int to int64).
func paramValue(p any, t reflect.Type) (reflect.Value, error) {
	if p == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %v", t)
	}
	v := reflect.ValueOf(p)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(t.Kind()) {
		if c, ok := convertNumber(v, t); ok {
			return c, nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use %v (%T) as %v without loss", p, p, t)
	}
	if v.Kind() == t.Kind() && v.Type().ConvertibleTo(t) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %v", p, t)
}

func isNumeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

func isSigned(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64 || k == reflect.Float32 || k == reflect.Float64
}

// convertNumber converts v to the numeric type t only if the value is unchanged, so that (eg) 2.0
// can be passed as an int but 1.5 or -1 are not silently changed to 1 or a large unsigned number.
// Float to float conversions are always allowed (eg 0.1 to a float32).
func convertNumber(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	c := v.Convert(t)
	if v.CanFloat() && c.CanFloat() {
		return c, true
	}
	if isSigned(v.Kind()) != isSigned(t.Kind()) && isNegative(v) != isNegative(c) {
		return reflect.Value{}, false
	}
	if !c.Convert(v.Type()).Equal(v) {
		return reflect.Value{}, false
	}
	return c, true
}

func isNegative(v reflect.Value) bool {
	switch {
	case v.CanInt():
		return v.Int() < 0
	case v.CanFloat():
		return v.Float() < 0
	}
	return false
}

// Func makes a ResolveFunc from a Go function.  The function may take a context.Context then a
// *ResolveInfo (both optional) followed by the source (if injected) and the arguments.
// It must return a single value, optionally followed by an error.
func Func(fn any) (ResolveFunc, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("resolver must be a function not %T", fn)
	}
	s, err := newSignature(v.Type())
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, params []any) (any, error) {
		var info *ResolveInfo
		if len(params) > 0 {
			info, _ = params[0].(*ResolveInfo)
			params = params[1:]
		}
		return s.call(ctx, v, info, params)
	}, nil
}

// CallMethod calls the method called name of the source object with params (the source, if injected,
// then the arguments).  A context.Context 1st parameter is supplied but the method never gets the info.
func CallMethod(ctx context.Context, source any, name string, params []any) (any, error) {
	v := reflect.ValueOf(source)
	if !v.IsValid() || v.Kind() == reflect.Ptr && v.IsNil() {
		return nil, fmt.Errorf("cannot call method %q of a nil source object", name)
	}
	m := v.MethodByName(name)
	if !m.IsValid() && v.Kind() != reflect.Ptr {
		// a method with pointer receiver can be used with a copy of the value
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		m = p.MethodByName(name)
	}
	if !m.IsValid() {
		return nil, fmt.Errorf("source object of type %T has no method %q", source, name)
	}
	s, err := newSignature(m.Type())
	if err != nil {
		return nil, err
	}
	if s.hasInfo {
		return nil, fmt.Errorf("method %q of %T cannot take a *ResolveInfo", name, source)
	}
	return s.call(ctx, m, nil, params)
}
