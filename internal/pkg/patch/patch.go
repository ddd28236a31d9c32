// Package patch holds helpers for partial updates where a nil pointer means
// "leave the field alone".
package patch

// Coalesce returns *ptr, or fallback when ptr is nil.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Map converts a present value with f and keeps absence as nil.
func Map[T, U any](ptr *T, f func(T) (U, error)) (*U, error) {
	if ptr == nil {
		return nil, nil
	}
	u, err := f(*ptr)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
