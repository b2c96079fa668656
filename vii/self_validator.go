package vii

import (
	"context"
	"net/http"
	"reflect"
)

type Validator[T any] interface {
	Validate(r *http.Request) (T, error)
}

type AnyValidator interface {
	ValidateAny(r *http.Request) (*http.Request, error)
}

// WrapValidator stores the validated value in the request by its type.
func WrapValidator[T any](v Validator[T]) AnyValidator {
	return anyValidatorFunc(func(r *http.Request) (*http.Request, error) {
		val, err := v.Validate(r)
		if err != nil {
			return r, err
		}
		return WithValidated(r, val), nil
	})
}

// SV is shorthand for WrapValidator.
func SV[T any](v Validator[T]) AnyValidator {
	return WrapValidator(v)
}

type anyValidatorFunc func(r *http.Request) (*http.Request, error)

func (f anyValidatorFunc) ValidateAny(r *http.Request) (*http.Request, error) { return f(r) }

type validatedStoreKey struct{}

// validatedStore is copied on every write so earlier request values never see later ones.
type validatedStore map[reflect.Type]any

func getStore(r *http.Request) validatedStore {
	if r == nil {
		return nil
	}
	s, _ := r.Context().Value(validatedStoreKey{}).(validatedStore)
	return s
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func WithValidated[T any](r *http.Request, value T) *http.Request {
	old := getStore(r)
	next := make(validatedStore, len(old)+1)
	for k, v := range old {
		next[k] = v
	}
	next[typeOf[T]()] = value
	ctx := context.WithValue(r.Context(), validatedStoreKey{}, next)
	return r.WithContext(ctx)
}

func Validated[T any](r *http.Request) (T, bool) {
	var zero T
	v, ok := getStore(r)[typeOf[T]()]
	if !ok {
		return zero, false
	}
	out, ok := v.(T)
	if !ok {
		return zero, false
	}
	return out, true
}
