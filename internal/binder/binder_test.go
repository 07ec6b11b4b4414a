package binder_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/LiuXiaoZhuang/graphql/internal/binder"
)

// capture returns a ResolveFunc that records the params it was called with
func capture(got *[]any) binder.ResolveFunc {
	return func(ctx context.Context, params []any) (any, error) {
		*got = append([]any(nil), params...)
		return "ok", nil
	}
}

// atoi converts string raw values to int
type atoi struct{}

func (atoi) Resolve(raw any, _ *binder.Argument) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return raw, nil
	}
	return strconv.Atoi(s)
}

type user struct {
	First, Last string
}

func (u user) FullName(sep string) string { return u.First + sep + u.Last }

func (u user) Greet(ctx context.Context, other user, greeting string) (string, error) {
	if greeting == "" {
		return "", errors.New("no greeting")
	}
	return greeting + " " + other.First + " from " + u.First, nil
}

func (u *user) Rename(first string) string { u.First = first; return u.First }

func TestDefaultFallback(t *testing.T) {
	var got []any
	spec := &binder.FieldSpec{
		Name:    "f",
		Args:    []binder.Argument{{Name: "a", HasDefault: true, Default: 5}},
		Resolve: capture(&got),
	}
	r := binder.Bind(spec, nil)
	info := &binder.ResolveInfo{FieldName: "f"}

	_, err := r(context.Background(), nil, map[string]any{}, info)
	require.NoError(t, err)
	withDefault := got

	_, err = r(context.Background(), nil, map[string]any{"a": 5}, info)
	require.NoError(t, err)
	assert.Equal(t, withDefault, got)
	assert.Equal(t, []any{info, 5}, got)

	// a nil value is treated like a missing one
	_, err = r(context.Background(), nil, map[string]any{"a": nil}, info)
	require.NoError(t, err)
	assert.Equal(t, []any{info, 5}, got)
}

func TestMissingArgument(t *testing.T) {
	called := false
	spec := &binder.FieldSpec{
		Name: "f",
		Args: []binder.Argument{{Name: "a", HasDefault: true, Default: 1}, {Name: "b"}},
		Resolve: func(context.Context, []any) (any, error) {
			called = true
			return nil, nil
		},
	}
	_, err := binder.Bind(spec, nil)(context.Background(), nil, nil, nil)
	var missing *binder.MissingArgumentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "b", missing.Argument)
	assert.Equal(t, "f", missing.Field)
	assert.False(t, called)
}

func TestParamOrder(t *testing.T) {
	var got []any
	spec := &binder.FieldSpec{
		Name:         "f",
		Args:         []binder.Argument{{Name: "a1"}, {Name: "a2"}},
		Resolve:      capture(&got),
		InjectSource: true,
	}
	info := &binder.ResolveInfo{}
	source := &user{First: "Ann"}
	_, err := binder.Bind(spec, atoi{})(context.Background(), source, map[string]any{"a2": "2", "a1": "1"}, info)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Same(t, info, got[0])
	assert.Same(t, source, got[1])
	assert.Equal(t, []any{1, 2}, got[2:])
}

func TestArgumentError(t *testing.T) {
	spec := &binder.FieldSpec{
		Name:    "f",
		Args:    []binder.Argument{{Name: "n"}},
		Resolve: func(context.Context, []any) (any, error) { return nil, nil },
	}
	_, err := binder.Bind(spec, atoi{})(context.Background(), nil, map[string]any{"n": "x"}, nil)
	var numErr *strconv.NumError
	assert.ErrorAs(t, err, &numErr)
}

func TestTargetMethod(t *testing.T) {
	spec := &binder.FieldSpec{
		Name:         "fullName",
		Args:         []binder.Argument{{Name: "sep", HasDefault: true, Default: " "}},
		TargetMethod: "FullName",
	}
	r := binder.Bind(spec, nil)
	source := user{First: "Ann", Last: "Lee"}

	got, err := r(context.Background(), source, nil, &binder.ResolveInfo{})
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", got)

	got, err = r(context.Background(), &source, map[string]any{"sep": "-"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ann-Lee", got)
}

func TestTargetMethodSource(t *testing.T) {
	spec := &binder.FieldSpec{
		Name:         "greet",
		Args:         []binder.Argument{{Name: "greeting"}},
		TargetMethod: "Greet",
		InjectSource: true,
	}
	r := binder.Bind(spec, nil)
	source := user{First: "Ann"}

	got, err := r(context.Background(), source, map[string]any{"greeting": "Hi"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hi Ann from Ann", got)

	// an error from the method is returned unchanged
	_, err = r(context.Background(), source, map[string]any{"greeting": ""}, nil)
	assert.EqualError(t, err, "no greeting")
}

func TestTargetMethodPointerReceiver(t *testing.T) {
	spec := &binder.FieldSpec{Name: "rename", Args: []binder.Argument{{Name: "first"}}, TargetMethod: "Rename"}
	source := &user{First: "Ann"}
	got, err := binder.Bind(spec, nil)(context.Background(), source, map[string]any{"first": "Bob"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got)
	assert.Equal(t, "Bob", source.First)
}

func TestTargetMethodErrors(t *testing.T) {
	spec := &binder.FieldSpec{Name: "nope", TargetMethod: "Nope"}
	_, err := binder.Bind(spec, nil)(context.Background(), user{}, nil, nil)
	assert.Error(t, err)

	spec = &binder.FieldSpec{Name: "fullName", TargetMethod: "FullName"}
	_, err = binder.Bind(spec, nil)(context.Background(), nil, nil, nil)
	assert.Error(t, err)
}

func TestResolveWins(t *testing.T) {
	var got []any
	spec := &binder.FieldSpec{Name: "f", Resolve: capture(&got), TargetMethod: "FullName"}
	value, err := binder.Bind(spec, nil)(context.Background(), user{}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Len(t, got, 1)
}

func TestInvalidConfiguration(t *testing.T) {
	spec := &binder.FieldSpec{Name: "f"}
	var invalid *binder.InvalidFieldConfigurationError

	_, err := binder.Bind(spec, nil)(context.Background(), nil, nil, nil)
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "f", invalid.Field)

	assert.ErrorAs(t, spec.Validate(), &invalid)
	assert.ErrorAs(t, (&binder.FieldSpec{}).Validate(), &invalid)
	assert.ErrorAs(t, (&binder.FieldSpec{Name: "f", TargetMethod: "F", Args: []binder.Argument{{Name: "a"}, {Name: "a"}}}).Validate(), &invalid)
	assert.NoError(t, (&binder.FieldSpec{Name: "f", TargetMethod: "F"}).Validate())
}

func TestErrorUnchanged(t *testing.T) {
	sentinel := errors.New("boom")
	spec := &binder.FieldSpec{
		Name:    "f",
		Resolve: func(context.Context, []any) (any, error) { return nil, sentinel },
	}
	_, err := binder.Bind(spec, nil)(context.Background(), nil, nil, nil)
	assert.Same(t, sentinel, err)
}

func TestFunc(t *testing.T) {
	fn, err := binder.Func(func(ctx context.Context, info *binder.ResolveInfo, src user, n int64) string {
		return info.FieldName + ":" + src.First + ":" + strconv.FormatInt(n, 10)
	})
	require.NoError(t, err)
	got, err := fn(context.Background(), []any{&binder.ResolveInfo{FieldName: "f"}, user{First: "Ann"}, 3})
	require.NoError(t, err)
	assert.Equal(t, "f:Ann:3", got)

	// the info is dropped if the function does not want it
	fn, err = binder.Func(func(a, b int) (int, error) { return a + b, nil })
	require.NoError(t, err)
	got, err = fn(context.TODO(), []any{nil, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	_, err = fn(context.Background(), []any{nil, 1})
	assert.Error(t, err)
	_, err = fn(context.Background(), []any{nil, 1, "two"})
	assert.Error(t, err)

	for _, bad := range []any{42, func() {}, func() (int, int) { return 0, 0 }, func(...int) int { return 0 }} {
		_, err = binder.Func(bad)
		assert.Error(t, err)
	}
}

func TestFuncNumberConversion(t *testing.T) {
	toInt, err := binder.Func(func(n int) int { return n })
	require.NoError(t, err)
	toByte, err := binder.Func(func(n uint8) uint8 { return n })
	require.NoError(t, err)
	toSmall, err := binder.Func(func(n int8) int8 { return n })
	require.NoError(t, err)
	toFloat32, err := binder.Func(func(f float32) float32 { return f })
	require.NoError(t, err)

	got, err := toInt(context.Background(), []any{nil, 2.0})
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	got, err = toByte(context.Background(), []any{nil, 200})
	require.NoError(t, err)
	assert.Equal(t, uint8(200), got)
	got, err = toFloat32(context.Background(), []any{nil, 1.5})
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), got)

	lossy := map[string]struct {
		fn binder.ResolveFunc
		in any
	}{
		"Fraction":  {toInt, 1.5},
		"Negative":  {toByte, -1},
		"NegFloat":  {toByte, -2.0},
		"Overflow":  {toSmall, int64(300)},
		"BigUint":   {toInt, uint64(1 << 63)},
		"TooBig":    {toByte, 256},
		"NotNumber": {toInt, "1"},
	}
	for name, data := range lossy {
		t.Run(name, func(t *testing.T) {
			_, err := data.fn(context.Background(), []any{nil, data.in})
			assert.Error(t, err)
		})
	}
}

func TestTraced(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	sentinel := errors.New("boom")
	spec := &binder.FieldSpec{
		Name:    "f",
		Resolve: func(context.Context, []any) (any, error) { return nil, sentinel },
	}
	r := binder.Traced(provider.Tracer("test"), "Query", "f", binder.Bind(spec, nil))

	_, err := r(context.Background(), nil, nil, nil)
	assert.Same(t, sentinel, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "graphql.resolve Query.f", spans[0].Name())
	assert.Len(t, spans[0].Events(), 1) // the recorded error
}
