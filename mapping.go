package nls

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Mapping is the generic intermediate form of every schema type: wire field
// name to value, where values are strings, bools, float64s, nested Mappings
// and []interface{} lists.
type Mapping = map[string]interface{}

// toStringMap accepts both string keyed maps and the interface keyed maps
// produced by YAML decoders.
func toStringMap(field string, value interface{}) (Mapping, error) {
	if typed, ok := value.(map[string]interface{}); ok {
		return typed, nil
	}

	typed, ok := value.(map[interface{}]interface{})
	if !ok {
		return nil, newError(ErrWrongType, field, nil, "expecting a map, got '%T' instead", value)
	}

	keyTyped := make(Mapping, len(typed))
	for k, v := range typed {
		typedKey, ok := k.(string)
		if !ok {
			return nil, newError(ErrWrongType, field, nil, "expecting string keys, got '%T' instead", k)
		}
		keyTyped[typedKey] = v
	}

	return keyTyped, nil
}

func present(parent Mapping, key string) bool {
	value, exists := parent[key]
	return exists && value != nil
}

// checkKeys rejects keys that are not part of the type being built.
func checkKeys(parent Mapping, allowed ...string) error {
	unknown := make([]string, 0)
	for key := range parent {
		known := false
		for _, name := range allowed {
			if key == name {
				known = true
				break
			}
		}
		if !known {
			unknown = append(unknown, key)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return newError(ErrUnknownField, unknown[0], nil, "not a field of this type")
	}
	return nil
}

func getMapOptional(parent Mapping, key string) (Mapping, error) {
	if !present(parent, key) {
		return nil, nil
	}
	return toStringMap(key, parent[key])
}

func getMapArrayOptional(parent Mapping, key string) ([]Mapping, error) {
	if !present(parent, key) {
		return nil, nil
	}

	untypedArr, ok := parent[key].([]interface{})
	if !ok {
		return nil, newError(ErrWrongType, key, nil, "expecting an array, got '%T' instead", parent[key])
	}

	typedArray := make([]Mapping, len(untypedArr))
	for idx, obj := range untypedArr {
		typed, err := toStringMap(fmt.Sprintf("%s[%d]", key, idx), obj)
		if err != nil {
			return nil, err
		}
		typedArray[idx] = typed
	}

	return typedArray, nil
}

func getStringOptional(parent Mapping, key string) (string, error) {
	if !present(parent, key) {
		return "", nil
	}

	typed, ok := parent[key].(string)
	if !ok {
		return "", newError(ErrWrongType, key, nil, "expecting a string, got '%T' instead", parent[key])
	}
	return typed, nil
}

func getStringArrayOptional(parent Mapping, key string) ([]string, error) {
	if !present(parent, key) {
		return nil, nil
	}

	switch typed := parent[key].(type) {
	case []string:
		return typed, nil
	case []interface{}:
		strArr := make([]string, len(typed))
		for idx, obj := range typed {
			str, ok := obj.(string)
			if !ok {
				return nil, newError(ErrWrongType, fmt.Sprintf("%s[%d]", key, idx), nil, "expecting a string, got '%T' instead", obj)
			}
			strArr[idx] = str
		}
		return strArr, nil
	default:
		return nil, newError(ErrWrongType, key, nil, "expecting an array, got '%T' instead", parent[key])
	}
}

func getFloatRequired(parent Mapping, key string) (float64, error) {
	if !present(parent, key) {
		return 0, missing(key)
	}

	switch typed := parent[key].(type) {
	case float64:
		return typed, nil
	case float32:
		return float64(typed), nil
	case int:
		return float64(typed), nil
	case int64:
		return float64(typed), nil
	case int32:
		return float64(typed), nil
	case uint64:
		return float64(typed), nil
	case json.Number:
		value, err := typed.Float64()
		if err != nil {
			return 0, newError(ErrWrongType, key, typed, "expecting a number")
		}
		return value, nil
	default:
		return 0, newError(ErrWrongType, key, nil, "expecting a number, got '%T' instead", parent[key])
	}
}

func getBoolOptional(parent Mapping, key string) (*bool, error) {
	if !present(parent, key) {
		return nil, nil
	}

	typed, ok := parent[key].(bool)
	if !ok {
		return nil, newError(ErrWrongType, key, nil, "expecting a bool, got '%T' instead", parent[key])
	}
	return &typed, nil
}

func copyMapping(m Mapping) Mapping {
	copied, err := normalizeData("", m)
	if err != nil {
		return m
	}
	return copied.(Mapping)
}

// normalizeData converts an opaque payload into the shape a JSON decoder
// would produce, so the payload compares equal after any round trip.
func normalizeData(field string, value interface{}) (interface{}, error) {
	switch typed := value.(type) {
	case nil, string, bool:
		return typed, nil
	case float64:
		return finiteNumber(field, typed)
	case int:
		return float64(typed), nil
	case int8:
		return float64(typed), nil
	case int16:
		return float64(typed), nil
	case int32:
		return float64(typed), nil
	case int64:
		return float64(typed), nil
	case uint:
		return float64(typed), nil
	case uint8:
		return float64(typed), nil
	case uint16:
		return float64(typed), nil
	case uint32:
		return float64(typed), nil
	case uint64:
		return float64(typed), nil
	case float32:
		return finiteNumber(field, float64(typed))
	case json.Number:
		f, err := typed.Float64()
		if err != nil {
			return nil, newError(ErrWrongType, field, typed, "expecting a number")
		}
		return finiteNumber(field, f)
	case map[string]interface{}, map[interface{}]interface{}:
		m, err := toStringMap(field, typed)
		if err != nil {
			return nil, err
		}
		normalized := make(Mapping, len(m))
		for k, v := range m {
			if normalized[k], err = normalizeData(field+"."+k, v); err != nil {
				return nil, err
			}
		}
		return normalized, nil
	case []interface{}:
		normalized := make([]interface{}, len(typed))
		for idx, v := range typed {
			var err error
			if normalized[idx], err = normalizeData(fmt.Sprintf("%s[%d]", field, idx), v); err != nil {
				return nil, err
			}
		}
		return normalized, nil
	default:
		// structs, typed maps and slices: take the JSON view of them
		body, err := json.Marshal(typed)
		if err != nil {
			return nil, newError(ErrWrongType, field, nil, "cannot encode '%T': %v", typed, err)
		}
		var decoded interface{}
		if err := json.Unmarshal(body, &decoded); err != nil {
			return nil, newError(ErrWrongType, field, nil, "cannot decode '%T': %v", typed, err)
		}
		return decoded, nil
	}
}

// finiteNumber rejects NaN and infinities, which have no JSON encoding.
func finiteNumber(field string, f float64) (interface{}, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, newError(ErrMalformedValue, field, f, "expecting a finite number")
	}
	return f, nil
}
