// Package layer provides configuration layering and merging.
//
// Configuration is assembled from ordered tiers: built-in defaults, the
// global plugin file, and the project-local file. Later tiers override
// earlier ones key by key; nested maps merge recursively.
package layer

import "strings"

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
// Maps are merged recursively; other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	if src == nil {
		return dst
	}

	for key, srcVal := range src {
		dstVal, exists := dst[key]
		if !exists {
			dst[key] = cloneValue(srcVal)
			continue
		}

		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
		} else {
			dst[key] = cloneValue(srcVal)
		}
	}

	return dst
}

// Merge layers the given tiers in order, lowest precedence first.
func Merge(tiers ...map[string]any) map[string]any {
	result := make(map[string]any)
	for _, tier := range tiers {
		result = DeepMerge(result, tier)
	}
	return result
}

// StripComments removes keys beginning with "//" from the map, recursively.
// Configuration files carry inline documentation under such keys.
func StripComments(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	out := make(map[string]any, len(m))
	for key, val := range m {
		if strings.HasPrefix(key, "//") {
			continue
		}
		if nested, ok := val.(map[string]any); ok {
			out[key] = StripComments(nested)
		} else {
			out[key] = cloneValue(val)
		}
	}
	return out
}

// cloneValue creates a deep copy of a value.
func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		return cloneSlice(v)
	default:
		return val
	}
}

// cloneMap creates a deep copy of a map.
func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneSlice creates a deep copy of a slice.
func cloneSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = cloneValue(v)
	}
	return out
}
