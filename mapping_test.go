package nls

//unit tests

import (
	"encoding/json"
	"errors"
	"testing"

	"gopkg.in/yaml.v2"
)

func TestGetMapOptional(t *testing.T) {
	mapObj := make(map[interface{}]interface{})
	notMapObj := "bar"
	parent := make(map[string]interface{})

	parent["foo"] = mapObj
	parent["foo2"] = notMapObj

	value, err := getMapOptional(parent, "bar")
	if err != nil {
		t.Errorf("Expected nil error, got %v", err)
		return
	}
	if value != nil {
		t.Errorf("Expected nil value, got %v", value)
		return
	}

	value, err = getMapOptional(parent, "foo2")
	if !errors.Is(err, ErrWrongType) {
		t.Errorf("Expected wrong type error, got %v", err)
		return
	}
	if value != nil {
		t.Errorf("Expected nil value, got %v", value)
		return
	}

	value, err = getMapOptional(parent, "foo")
	if err != nil {
		t.Errorf("Expected nil error, got %v", err)
		return
	}
	if value == nil {
		t.Errorf("Expected non-nil map, got nil")
		return
	}
}

func TestGetMapArrayOptional(t *testing.T) {
	arrayOfNotMaps := []interface{}{"0", "1", "2"}
	foo := map[interface{}]interface{}{0: 0, 1: 1, 2: 2}

	arrayOfWrongKeyTypeMaps := []interface{}{foo, foo, foo}
	bar := map[interface{}]interface{}{"0": 0, "1": 1, "2": 2}

	arrayOfCorrectMaps := []interface{}{bar, bar, bar}

	parent := make(map[string]interface{})
	parent["foo2"] = arrayOfNotMaps
	parent["foo"] = arrayOfWrongKeyTypeMaps
	parent["bar"] = arrayOfCorrectMaps
	parent["baz"] = "not an array"

	value, err := getMapArrayOptional(parent, "qux")
	if err != nil {
		t.Errorf("Expected nil error, got %v", err)
		return
	}
	if value != nil {
		t.Errorf("Expected nil value, got %v", value)
		return
	}

	for _, key := range []string{"foo2", "foo", "baz"} {
		value, err = getMapArrayOptional(parent, key)
		if !errors.Is(err, ErrWrongType) {
			t.Errorf("%s: Expected wrong type error, got %v", key, err)
			return
		}
		if value != nil {
			t.Errorf("%s: Expected nil value, got %v", key, value)
			return
		}
	}

	value, err = getMapArrayOptional(parent, "bar")
	if err != nil {
		t.Errorf("Expected nil error, got %v", err)
		return
	}
	if len(value) != 3 {
		t.Errorf("Expected array of length 3, got %v", value)
		return
	}
	if value[1]["1"] != 1 {
		t.Errorf("Expected value 1, got %v", value[1]["1"])
		return
	}
}

func TestGetMapArrayOptionalErrorPath(t *testing.T) {
	parent := map[string]interface{}{
		"contact": []interface{}{map[string]interface{}{}, "nope"},
	}

	_, err := getMapArrayOptional(parent, "contact")

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Expected validation error, got %v", err)
		return
	}
	if verr.Field != "contact[1]" {
		t.Errorf("Expected field contact[1], got %s", verr.Field)
		return
	}
}

func TestGetStringOptional(t *testing.T) {
	parent := make(map[string]interface{})
	parent["foo"] = "bar"
	parent["foo2"] = 0
	parent["foo3"] = nil

	value, err := getStringOptional(parent, "foo")
	if err != nil || value != "bar" {
		t.Errorf("Expected bar, got %v (%v)", value, err)
		return
	}

	value, err = getStringOptional(parent, "baz")
	if err != nil || value != "" {
		t.Errorf("Expected empty string, got %v (%v)", value, err)
		return
	}

	value, err = getStringOptional(parent, "foo3")
	if err != nil || value != "" {
		t.Errorf("Expected empty string for null, got %v (%v)", value, err)
		return
	}

	_, err = getStringOptional(parent, "foo2")
	if !errors.Is(err, ErrWrongType) {
		t.Errorf("Expected wrong type error, got %v", err)
		return
	}
}

func TestGetStringArrayOptional(t *testing.T) {
	parent := make(map[string]interface{})
	parent["typed"] = []string{"a", "b"}
	parent["untyped"] = []interface{}{"a", "b", "c"}
	parent["mixed"] = []interface{}{"a", 1}
	parent["scalar"] = "a"

	value, err := getStringArrayOptional(parent, "typed")
	if err != nil || len(value) != 2 {
		t.Errorf("Expected 2 strings, got %v (%v)", value, err)
		return
	}

	value, err = getStringArrayOptional(parent, "untyped")
	if err != nil || len(value) != 3 || value[2] != "c" {
		t.Errorf("Expected 3 strings, got %v (%v)", value, err)
		return
	}

	_, err = getStringArrayOptional(parent, "mixed")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "mixed[1]" {
		t.Errorf("Expected wrong type error at mixed[1], got %v", err)
		return
	}

	_, err = getStringArrayOptional(parent, "scalar")
	if !errors.Is(err, ErrWrongType) {
		t.Errorf("Expected wrong type error, got %v", err)
		return
	}
}

func TestGetFloatRequired(t *testing.T) {
	parent := map[string]interface{}{
		"float":  47.6,
		"int":    -122,
		"number": json.Number("12.5"),
		"string": "47.6",
	}

	expected := map[string]float64{"float": 47.6, "int": -122, "number": 12.5}
	for key, want := range expected {
		value, err := getFloatRequired(parent, key)
		if err != nil {
			t.Errorf("%s: Expected nil error, got %v", key, err)
			return
		}
		if value != want {
			t.Errorf("%s: Expected %v, got %v", key, want, value)
			return
		}
	}

	if _, err := getFloatRequired(parent, "string"); !errors.Is(err, ErrWrongType) {
		t.Errorf("Expected wrong type error, got %v", err)
		return
	}

	if _, err := getFloatRequired(parent, "missing"); !errors.Is(err, ErrMissingField) {
		t.Errorf("Expected missing field error, got %v", err)
		return
	}
}

func TestGetBoolOptional(t *testing.T) {
	parent := map[string]interface{}{"yes": true, "no": false, "str": "true"}

	value, err := getBoolOptional(parent, "yes")
	if err != nil || value == nil || !*value {
		t.Errorf("Expected true, got %v (%v)", value, err)
		return
	}

	value, err = getBoolOptional(parent, "no")
	if err != nil || value == nil || *value {
		t.Errorf("Expected false, got %v (%v)", value, err)
		return
	}

	value, err = getBoolOptional(parent, "absent")
	if err != nil || value != nil {
		t.Errorf("Expected nil, got %v (%v)", value, err)
		return
	}

	if _, err = getBoolOptional(parent, "str"); !errors.Is(err, ErrWrongType) {
		t.Errorf("Expected wrong type error, got %v", err)
		return
	}
}

func TestCheckKeys(t *testing.T) {
	parent := map[string]interface{}{"a": 1, "b": 2}

	if err := checkKeys(parent, "a", "b", "c"); err != nil {
		t.Errorf("Expected nil error, got %v", err)
		return
	}

	err := checkKeys(parent, "a")
	var verr *ValidationError
	if !errors.As(err, &verr) || !errors.Is(err, ErrUnknownField) || verr.Field != "b" {
		t.Errorf("Expected unknown field error at b, got %v", err)
		return
	}
}

func TestNormalizeDataFromYaml(t *testing.T) {
	var decoded interface{}
	err := yaml.Unmarshal([]byte("count: 3\nnested:\n  list: [1, two, {k: v}]\n"), &decoded)
	if err != nil {
		t.Errorf("Unexpected Error: %v", err)
		return
	}

	normalized, err := normalizeData("data", decoded)
	if err != nil {
		t.Errorf("Unexpected Error: %v", err)
		return
	}

	m, ok := normalized.(Mapping)
	if !ok {
		t.Errorf("Expected a mapping, got %T", normalized)
		return
	}
	if m["count"] != float64(3) {
		t.Errorf("Expected float64 3, got %#v", m["count"])
		return
	}

	list := m["nested"].(Mapping)["list"].([]interface{})
	if list[0] != float64(1) || list[1] != "two" {
		t.Errorf("Unexpected list contents: %#v", list)
		return
	}
	if _, ok := list[2].(Mapping); !ok {
		t.Errorf("Expected nested mapping, got %T", list[2])
		return
	}
}

func TestNormalizeDataRejectsBadKeys(t *testing.T) {
	_, err := normalizeData("data", map[interface{}]interface{}{1: "x"})
	if !errors.Is(err, ErrWrongType) {
		t.Errorf("Expected wrong type error, got %v", err)
		return
	}
}
