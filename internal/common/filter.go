package common

import "net/url"

// FilterFromQuery flattens URL query parameters into a store filter,
// keeping the first value of each key. Parameters are passed through to
// the store as-is; the store decides how to coerce them.
func FilterFromQuery(q url.Values) map[string]string {
	filter := make(map[string]string, len(q))
	for key, values := range q {
		if len(values) > 0 {
			filter[key] = values[0]
		}
	}
	return filter
}
