package utils

import (
	"reflect"
	"strings"
)

/**
 * ResolvePath walks m by splitting path on `.` and indexing nested
 * maps. Intermediate values may be any string-keyed map type; the
 * run-time context routinely nests both map[string]any and named
 * map types after JSON round trips.
 * An unresolvable path returns (nil, false).
 */
func ResolvePath(m map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	var current any = m
	for _, part := range strings.Split(path, ".") {
		level, ok := asStringMap(current)
		if !ok {
			return nil, false
		}
		if current, ok = level[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

func asStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case nil:
		return nil, false
	}

	// named map types (e.g. types.Data) land here
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}
