package web

import (
	"context"
	"net/http"
)

// Key names a request-scoped value of type T. Two keys never collide, even
// with the same name.
type Key[T any] struct {
	name *string
}

func NewKey[T any](name string) Key[T] {
	return Key[T]{name: &name}
}

func (k Key[T]) String() string {
	if k.name == nil {
		return ""
	}
	return *k.name
}

func AddValueToContext[T any](r *http.Request, key Key[T], value T) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), key, value))
}

func GetValueFromContext[T any](r *http.Request, key Key[T]) (T, bool) {
	value, ok := r.Context().Value(key).(T)
	return value, ok
}
