package utils

func CloneMap[K comparable, V any](m map[K]V) map[K]V {
	cloneM := make(map[K]V)
	for k, v := range m {
		cloneM[k] = v
	}
	return cloneM
}

func MergeMap[K comparable, V any](base, overlay map[K]V) map[K]V {
	merged := CloneMap(base)
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}
