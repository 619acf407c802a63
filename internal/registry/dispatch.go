package registry

import (
	"context"
	"reflect"

	"github.com/vk/adapterhub/internal/ctxlog"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Invoke calls the named adapter method with the given arguments and returns
// its value together with a success flag. The flag is the whole failure
// story: an uninitialized registry, an unknown adapter, an unknown method, a
// panicking callable, an argument mismatch at the call boundary, and a
// non-nil trailing error result all collapse to ok == false. A failure in
// the callable never propagates to the caller.
//
// If the bound function takes a context.Context as its first parameter and
// the caller did not pass one, ctx is injected ahead of args. Functions may
// return nothing, a value, an error, or a (value, error) pair; with ok ==
// true the returned value is the first non-error result, or nil for
// void-shaped functions.
func (r *Registry) Invoke(ctx context.Context, adapter, method string, args ...any) (any, bool) {
	if !r.initialized {
		return nil, false
	}
	e, ok := r.adapters[adapter]
	if !ok {
		return nil, false
	}
	fv, ok := e.methods[method]
	if !ok {
		return nil, false
	}
	return call(ctx, adapter, method, fv, args)
}

// InvokeOr invokes and substitutes fallback when the invocation fails. It
// adds no failure modes of its own; it only collapses the (value, ok) pair.
func (r *Registry) InvokeOr(ctx context.Context, adapter, method string, fallback any, args ...any) any {
	if v, ok := r.Invoke(ctx, adapter, method, args...); ok {
		return v
	}
	return fallback
}

// InvokeAs invokes and narrows the result to T. A failed invocation, or a
// result that is neither a T nor a numeric value convertible to T, yields
// T's zero value and ok == false.
func InvokeAs[T any](ctx context.Context, r *Registry, adapter, method string, args ...any) (T, bool) {
	v, ok := r.Invoke(ctx, adapter, method, args...)
	if !ok {
		var zero T
		return zero, false
	}
	return narrow[T](v)
}

// InvokeOrDefault is the typed form of InvokeOr: it returns fallback when
// the invocation fails or the result does not narrow to T.
func InvokeOrDefault[T any](ctx context.Context, r *Registry, adapter, method string, fallback T, args ...any) T {
	if v, ok := InvokeAs[T](ctx, r, adapter, method, args...); ok {
		return v
	}
	return fallback
}

// InvokeInto is the output-parameter form of InvokeAs: it stores the
// narrowed result through out and reports success. On failure out is set to
// T's zero value.
func InvokeInto[T any](ctx context.Context, r *Registry, adapter, method string, out *T, args ...any) bool {
	v, ok := InvokeAs[T](ctx, r, adapter, method, args...)
	*out = v
	return ok
}

// call performs the reflection call with panic containment. The recover
// boundary is what lets Invoke promise that a misbehaving adapter cannot
// destabilize its caller.
func call(ctx context.Context, adapter, method string, fv reflect.Value, args []any) (result any, ok bool) {
	logger := ctxlog.FromContext(ctx)
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn("Adapter method call failed.", "adapter", adapter, "method", method, "panic", rec)
			result, ok = nil, false
		}
	}()

	ft := fv.Type()

	if ft.NumIn() > 0 && ft.In(0) == contextType {
		supplied := false
		if len(args) > 0 {
			_, supplied = args[0].(context.Context)
		}
		if !supplied {
			args = append([]any{ctx}, args...)
		}
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		if a == nil {
			in[i] = reflect.Zero(paramType(ft, i))
			continue
		}
		in[i] = reflect.ValueOf(a)
	}

	// Arity and assignability mismatches panic inside Call and are absorbed
	// by the recover above.
	results := fv.Call(in)

	if n := len(results); n > 0 {
		last := ft.Out(n - 1)
		if last.Kind() == reflect.Interface && last.Implements(errorType) {
			if errv := results[n-1]; !errv.IsNil() {
				logger.Debug("Adapter method returned an error.", "adapter", adapter, "method", method, "error", errv.Interface())
				return nil, false
			}
			results = results[:n-1]
		}
	}
	if len(results) == 0 {
		return nil, true
	}
	return results[0].Interface(), true
}

// paramType resolves the declared type of the i-th argument, unrolling the
// variadic tail so nil arguments can be zero-filled.
func paramType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}
	if i < ft.NumIn() {
		return ft.In(i)
	}
	// Out of range; hand back something callable-shaped and let Call panic.
	return reflect.TypeOf((*any)(nil)).Elem()
}

// narrow converts an invocation result to T: a direct type assertion first,
// then a numeric kind conversion. String/number coercion is deliberately not
// attempted; a mismatch must stay distinguishable from a legitimate value.
func narrow[T any](v any) (T, bool) {
	if t, ok := v.(T); ok {
		return t, true
	}
	var zero T
	if v == nil {
		return zero, false
	}
	rv := reflect.ValueOf(v)
	tt := reflect.TypeOf((*T)(nil)).Elem()
	if numericKind(rv.Kind()) && numericKind(tt.Kind()) && rv.Type().ConvertibleTo(tt) {
		return rv.Convert(tt).Interface().(T), true
	}
	return zero, false
}

func numericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
