package util

// Ptr returns a pointer to v. Token events carry *string so an absent
// token is representable; this keeps their construction to one line.
func Ptr[T any](v T) *T {
	return &v
}
