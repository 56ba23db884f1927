// Package mapper converts slices between domain entities and DTOs.
package mapper

// MapSlice applies fn to every item. A nil input gives a nil result.
func MapSlice[T any, R any](items []T, fn func(T) R) []R {
	if items == nil {
		return nil
	}
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// MapSlicePtrSkipNil maps pointer items, dropping nil inputs and nil
// results.
func MapSlicePtrSkipNil[T any, R any](items []*T, fn func(*T) *R) []*R {
	if items == nil {
		return nil
	}
	out := make([]*R, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if r := fn(item); r != nil {
			out = append(out, r)
		}
	}
	return out
}
