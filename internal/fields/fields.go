// Package fields makes the GraphQL fields (with their resolvers) of annotated Go structs.
//
// The fields of a self type are made from the struct's exported fields and its Method fields, and are
// resolved using the source (parent) object.  The fields of a provider (container) instance are made
// from its exported func fields and Method fields, which are resolved using the instance itself.
package fields

import (
	"context"
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/LiuXiaoZhuang/graphql/internal/argument"
	"github.com/LiuXiaoZhuang/graphql/internal/binder"
	"github.com/LiuXiaoZhuang/graphql/internal/field"
	"github.com/LiuXiaoZhuang/graphql/internal/schema"
	"github.com/LiuXiaoZhuang/graphql/internal/typegen"
)

var infoType = reflect.TypeOf((*binder.ResolveInfo)(nil))

// Factory implements typegen.FieldsBuilderFactory
type Factory struct {
	Args   *argument.Resolver // converts argument values and defaults
	Logger *zap.Logger
}

func (f *Factory) BuildFieldsBuilder(mapper typegen.RecursiveTypeMapper) typegen.FieldProvider {
	args, logger := f.Args, f.Logger
	if args == nil {
		args = argument.New(nil, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{mapper: mapper, args: args, logger: logger}
}

// Provider implements typegen.FieldProvider
type Provider struct {
	mapper typegen.RecursiveTypeMapper
	args   *argument.Resolver
	logger *zap.Logger
}

// GetSelfFields makes the fields of a self type from the Go struct class
func (p *Provider) GetSelfFields(class reflect.Type) ([]*schema.Field, error) {
	class = deref(class)
	if class.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%v is not a struct", class)
	}
	var retval []*schema.Field
	for i := 0; i < class.NumField(); i++ {
		f := class.Field(i)
		fieldInfo, err := field.Get(&f)
		if err != nil {
			return nil, errors.Wrapf(err, "getting field %s of %v", f.Name, class)
		}
		if fieldInfo == nil {
			continue
		}

		var spec *binder.FieldSpec
		switch {
		case f.Type == field.MethodType:
			spec, err = p.selfMethod(class, fieldInfo)
		case f.Type.Kind() == reflect.Func:
			spec, err = p.selfFunc(class, f.Index, f.Type, fieldInfo)
		default:
			spec, err = p.data(fieldInfo, f.Type, readField(class, f.Index))
		}
		if err != nil {
			return nil, errors.Wrapf(err, "field %s of %v", f.Name, class)
		}
		if retval, err = p.add(retval, spec); err != nil {
			return nil, err
		}
	}
	p.logger.Debug("built self fields", zap.Stringer("class", class), zap.Int("fields", len(retval)))
	return retval, nil
}

// GetFields makes the fields provided by instance (a pointer to a struct)
func (p *Provider) GetFields(instance any) ([]*schema.Field, error) {
	v := reflect.ValueOf(instance)
	if !v.IsValid() || v.Kind() == reflect.Ptr && v.IsNil() {
		return nil, errors.New("cannot get fields of a nil instance")
	}
	sv := reflect.Indirect(v)
	t := sv.Type()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("fields provider %T is not a struct", instance)
	}

	var retval []*schema.Field
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fieldInfo, err := field.Get(&f)
		if err != nil {
			return nil, errors.Wrapf(err, "getting field %s of %v", f.Name, t)
		}
		if fieldInfo == nil {
			continue
		}

		var spec *binder.FieldSpec
		switch {
		case f.Type == field.MethodType:
			m := v.MethodByName(fieldInfo.Method)
			if !m.IsValid() {
				err = fmt.Errorf("%T has no method %s", instance, fieldInfo.Method)
				break
			}
			spec, err = p.function(fieldInfo, m)
		case f.Type.Kind() == reflect.Func:
			fn := sv.Field(i)
			if fn.IsNil() {
				err = errors.New("resolver function is nil")
				break
			}
			spec, err = p.function(fieldInfo, fn)
		default:
			value := sv.Field(i)
			spec, err = p.data(fieldInfo, f.Type, func(context.Context, []any) (any, error) {
				return value.Interface(), nil
			})
		}
		if err != nil {
			return nil, errors.Wrapf(err, "field %s of %v", f.Name, t)
		}
		if retval, err = p.add(retval, spec); err != nil {
			return nil, err
		}
	}
	p.logger.Debug("built fields", zap.Stringer("provider", t), zap.Int("fields", len(retval)))
	return retval, nil
}

// add validates the FieldSpec, binds it and appends the field
func (p *Provider) add(fields []*schema.Field, spec *binder.FieldSpec) ([]*schema.Field, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return append(fields, &schema.Field{
		Name:        spec.Name,
		Description: spec.Description,
		Type:        spec.Type,
		Args:        spec.Args,
		Spec:        spec,
		Resolver:    binder.Bind(spec, p.args),
	}), nil
}

// data makes the FieldSpec of a field that just has a value
func (p *Provider) data(fieldInfo *field.Info, t reflect.Type, resolve binder.ResolveFunc) (*binder.FieldSpec, error) {
	typ, err := p.mapper.MapOutputType(t, fieldInfo.Nullable, fieldInfo.GQLTypeName)
	if err != nil {
		return nil, err
	}
	return &binder.FieldSpec{
		Name:         fieldInfo.Name,
		Description:  fieldInfo.Description,
		Type:         typ,
		Resolve:      resolve,
		InjectSource: true,
	}, nil
}

// function makes the FieldSpec of a field resolved by calling fn (a function or bound method)
func (p *Provider) function(fieldInfo *field.Info, fn reflect.Value) (*binder.FieldSpec, error) {
	resolve, err := binder.Func(fn.Interface())
	if err != nil {
		return nil, err
	}
	spec, err := p.callable(fieldInfo, fn.Type(), 0, true)
	if err != nil {
		return nil, err
	}
	spec.Resolve = resolve
	return spec, nil
}

// selfMethod makes the FieldSpec of a field resolved by calling a method of the source object
func (p *Provider) selfMethod(class reflect.Type, fieldInfo *field.Info) (*binder.FieldSpec, error) {
	m, ok := reflect.PointerTo(class).MethodByName(fieldInfo.Method)
	if !ok {
		return nil, fmt.Errorf("%v has no method %s", class, fieldInfo.Method)
	}
	spec, err := p.callable(fieldInfo, m.Type, 1, false) // 1st param is the receiver
	if err != nil {
		return nil, err
	}
	spec.TargetMethod = fieldInfo.Method
	return spec, nil
}

// selfFunc makes the FieldSpec of a field resolved by calling the function stored in a field of the source object
func (p *Provider) selfFunc(class reflect.Type, index []int, t reflect.Type, fieldInfo *field.Info) (*binder.FieldSpec, error) {
	spec, err := p.callable(fieldInfo, t, 0, true)
	if err != nil {
		return nil, err
	}
	read := readField(class, index)
	injected := fieldInfo.Source
	spec.InjectSource = true
	spec.Resolve = func(ctx context.Context, params []any) (any, error) {
		value, err := read(ctx, params)
		if err != nil || value == nil {
			return nil, err // no source object
		}
		if reflect.ValueOf(value).IsNil() {
			return nil, fmt.Errorf("resolver function %s is nil", fieldInfo.Name)
		}
		resolve, err := binder.Func(value)
		if err != nil {
			return nil, err
		}
		if injected {
			return resolve(ctx, params)
		}
		return resolve(ctx, append([]any{params[0]}, params[2:]...)) // the func does not take the source
	}
	return spec, nil
}

// callable makes the FieldSpec of a field resolved by a function with type t whose positional
// parameters start at first.  allowInfo says if the function may take a *ResolveInfo.
func (p *Provider) callable(fieldInfo *field.Info, t reflect.Type, first int, allowInfo bool) (*binder.FieldSpec, error) {
	if first < t.NumIn() && t.In(first) == field.ContextType {
		first++
	}
	if first < t.NumIn() && t.In(first) == infoType {
		if !allowInfo {
			return nil, errors.New("a method of the source object cannot take a *ResolveInfo")
		}
		first++
	}
	if fieldInfo.Source {
		if first >= t.NumIn() {
			return nil, fmt.Errorf("the source option needs a parameter for the source object (%v)", t)
		}
		first++
	}
	if t.IsVariadic() {
		return nil, fmt.Errorf("resolver %v cannot be variadic", t)
	}
	if t.NumIn()-first != len(fieldInfo.Args) {
		return nil, fmt.Errorf("resolver %v has %d argument parameter(s) but %d argument name(s) in the tag",
			t, t.NumIn()-first, len(fieldInfo.Args))
	}
	out, err := resultType(t)
	if err != nil {
		return nil, err
	}
	typ, err := p.mapper.MapOutputType(out, fieldInfo.Nullable, fieldInfo.GQLTypeName)
	if err != nil {
		return nil, err
	}

	args := make([]binder.Argument, len(fieldInfo.Args))
	for i, name := range fieldInfo.Args {
		if args[i], err = p.argument(name, t.In(first+i), fieldInfo.ArgTypes[i], fieldInfo.ArgDefaults[i], fieldInfo.ArgDescriptions[i]); err != nil {
			return nil, errors.Wrapf(err, "argument %s", name)
		}
	}
	return &binder.FieldSpec{
		Name:         fieldInfo.Name,
		Description:  fieldInfo.Description,
		Type:         typ,
		Args:         args,
		InjectSource: fieldInfo.Source,
	}, nil
}

// argument makes an argument of Go type t, converting any default literal (at build time)
func (p *Provider) argument(name string, t reflect.Type, override, defaultLiteral, description string) (binder.Argument, error) {
	if !schema.ValidName(name) {
		return binder.Argument{}, fmt.Errorf("%q is not a valid argument name", name)
	}
	typ, err := p.mapper.MapInputType(t, t.Kind() == reflect.Ptr, override)
	if err != nil {
		return binder.Argument{}, err
	}
	arg := binder.Argument{Name: name, Description: description, Type: typ, GoType: t}
	switch {
	case defaultLiteral != "":
		literal, err := schema.ParseLiteral(defaultLiteral)
		if err != nil {
			return binder.Argument{}, err
		}
		raw, err := literal.Value(nil)
		if err != nil {
			return binder.Argument{}, err
		}
		if arg.Default, err = p.args.Convert(raw, t, typ); err != nil {
			return binder.Argument{}, errors.Wrapf(err, "default %s", defaultLiteral)
		}
		arg.HasDefault, arg.DefaultLiteral = true, defaultLiteral
	case t.Kind() == reflect.Ptr:
		arg.HasDefault = true // nil
	}
	return arg, nil
}

// resultType checks the results of a resolver function returning the type of its value
func resultType(t reflect.Type) (reflect.Type, error) {
	switch {
	case t.NumOut() == 1:
	case t.NumOut() == 2 && t.Out(1) == field.ErrorType:
	default:
		return nil, fmt.Errorf("resolver %v must return a value and optional error", t)
	}
	return t.Out(0), nil
}

// readField returns a ResolveFunc that gets the value of a field of the source object (params[1])
func readField(class reflect.Type, index []int) binder.ResolveFunc {
	return func(_ context.Context, params []any) (any, error) {
		if len(params) < 2 {
			return nil, errors.New("no source object")
		}
		v := reflect.ValueOf(params[1])
		if !v.IsValid() {
			return nil, nil
		}
		for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
			if v.IsNil() {
				return nil, nil
			}
			v = v.Elem()
		}
		if v.Type() != class {
			return nil, fmt.Errorf("source object is a %v not %v", v.Type(), class)
		}
		return v.FieldByIndex(index).Interface(), nil
	}
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
