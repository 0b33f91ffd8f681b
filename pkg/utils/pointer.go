package utils

// Ptr returns a pointer to the given value. Useful for building partial
// update structs whose optional fields are pointers.
func Ptr[T any](v T) *T {
	return &v
}
