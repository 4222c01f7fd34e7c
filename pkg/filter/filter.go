package filter

type Predicate[T any] func(T) bool

func Filter[T any](input []T, keep Predicate[T]) []T {
	output := make([]T, 0, len(input))
	for i := range input {
		if keep(input[i]) {
			output = append(output, input[i])
		}
	}
	return output
}

// Not inverts a predicate.
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(v T) bool { return !p(v) }
}
