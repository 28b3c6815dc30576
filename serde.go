package nls

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v2"
)

// EncodeText renders a mapping as UTF-8 JSON. Object keys come out sorted,
// so equal mappings always encode to identical bytes.
func EncodeText(m Mapping) ([]byte, error) {
	return json.Marshal(m)
}

// DecodeText parses a JSON object into a mapping.
func DecodeText(text []byte) (Mapping, error) {
	var decoded interface{}
	if err := json.Unmarshal(text, &decoded); err != nil {
		return nil, newError(ErrWrongType, "", nil, "not a JSON document: %v", err)
	}
	return toStringMap("", decoded)
}

// ToText is EncodeText(l.ToMapping()).
func (l NormalizedLocation) ToText() ([]byte, error) {
	return EncodeText(l.ToMapping())
}

// ParseNormalizedLocation decodes and validates the text form of a location.
func ParseNormalizedLocation(text []byte) (NormalizedLocation, error) {
	m, err := DecodeText(text)
	if err != nil {
		return NormalizedLocation{}, err
	}
	return NormalizedLocationFromMapping(m)
}

func (l NormalizedLocation) MarshalJSON() ([]byte, error) {
	return l.ToText()
}

func (l *NormalizedLocation) UnmarshalJSON(text []byte) error {
	parsed, err := ParseNormalizedLocation(text)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func (l NormalizedLocation) ToYAML() ([]byte, error) {
	return yaml.Marshal(l.ToMapping())
}

// ParseNormalizedLocationYAML decodes and validates a YAML document holding
// one location.
func ParseNormalizedLocationYAML(text []byte) (NormalizedLocation, error) {
	var decoded interface{}
	if err := yaml.Unmarshal(text, &decoded); err != nil {
		return NormalizedLocation{}, newError(ErrWrongType, "", nil, "not a YAML document: %v", err)
	}
	m, err := toStringMap("", decoded)
	if err != nil {
		return NormalizedLocation{}, err
	}
	return NormalizedLocationFromMapping(m)
}

func (l NormalizedLocation) MarshalYAML() (interface{}, error) {
	return l.ToMapping(), nil
}

func (l *NormalizedLocation) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var decoded map[interface{}]interface{}
	if err := unmarshal(&decoded); err != nil {
		return err
	}
	m, err := toStringMap("", decoded)
	if err != nil {
		return err
	}
	parsed, err := NormalizedLocationFromMapping(m)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// EncodeLines renders locations as newline delimited JSON.
func EncodeLines(locations []NormalizedLocation) ([]byte, error) {
	buf := bytes.Buffer{}
	for idx, loc := range locations {
		line, err := loc.ToText()
		if err != nil {
			return nil, fmt.Errorf("location %d (%s): %w", idx, loc.ID, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
