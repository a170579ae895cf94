package util

// Ptr returns a pointer to the given value. Handy for building literal
// operands inline.
func Ptr[T any](value T) *T {
	return &value
}
