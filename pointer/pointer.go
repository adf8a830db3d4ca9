package pointer

func FromAny[T any](v T) *T {
	return &v
}

func ToAny[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}
