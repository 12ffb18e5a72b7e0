package library

// Keyed is any record with a backend identity.
type Keyed interface {
	Key() string
}

// Upsert merges the server's canonical record into a local collection:
// replace in place on identity match, append otherwise. This is the
// optimistic patch applied after a successful create or update; the
// collection itself is replaced wholesale on fetch.
func Upsert[T Keyed](list []T, item T) []T {
	for i := range list {
		if list[i].Key() == item.Key() {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}

// Remove drops the record with the given key after the server confirmed a
// delete. Order of the remaining records is preserved.
func Remove[T Keyed](list []T, key string) []T {
	out := list[:0]
	for _, item := range list {
		if item.Key() != key {
			out = append(out, item)
		}
	}
	return out
}

// Find returns the record with the given key, if present.
func Find[T Keyed](list []T, key string) (T, bool) {
	for _, item := range list {
		if item.Key() == key {
			return item, true
		}
	}
	var zero T
	return zero, false
}
