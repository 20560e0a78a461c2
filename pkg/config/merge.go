package config

// Merge returns loaded merged over defaults. Neither input is modified.
//
// For each key in loaded: when both values are objects they are merged
// recursively; otherwise the loaded value replaces the default, including
// whole lists. A nil loaded document returns a copy of defaults.
func Merge(defaults, loaded map[string]interface{}) map[string]interface{} {
	merged := deepCopyMap(defaults)
	for key, value := range loaded {
		loadedMap, loadedIsMap := asMap(value)
		defaultMap, defaultIsMap := asMap(merged[key])
		if loadedIsMap && defaultIsMap {
			merged[key] = Merge(defaultMap, loadedMap)
			continue
		}
		merged[key] = deepCopy(value)
	}
	return merged
}

// asMap accepts both decoded JSON objects and YAML mappings with non-string
// keys.
func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func deepCopyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(v interface{}) interface{} {
	if m, ok := asMap(v); ok {
		return deepCopyMap(m)
	}
	switch x := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, item := range x {
			out[i] = deepCopy(item)
		}
		return out
	case []string:
		return append([]string(nil), x...)
	case []float64:
		return append([]float64(nil), x...)
	default:
		return v
	}
}
