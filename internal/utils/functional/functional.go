package functional

func Map[T any, R any](items []T, f func(T) R) []R {
	result := make([]R, len(items))
	for i, v := range items {
		result[i] = f(v)
	}
	return result
}

func Filter[T any](items []T, keep func(T) bool) []T {
	result := make([]T, 0, len(items))
	for _, v := range items {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}

func Find[T any](items []T, match func(T) bool) (T, int, bool) {
	for i, v := range items {
		if match(v) {
			return v, i, true
		}
	}
	var zero T
	return zero, -1, false
}
