package helpers

// Ptr returns a pointer to a copy of val. Handy for optional filter fields.
func Ptr[T any](val T) *T {
	return &val
}
