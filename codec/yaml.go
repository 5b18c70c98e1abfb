package codec

import (
	"gopkg.in/yaml.v3"

	kagami "github.com/reoring/kagami"
)

// EncodeValueYAML serializes a value into the tagged YAML wire form. The
// shape matches the JSON form field for field.
func EncodeValueYAML(v kagami.Value) ([]byte, error) {
	w, err := valueToWire(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(w)
}

// DecodeValueYAML parses the tagged YAML wire form back into a value.
func DecodeValueYAML(data []byte) (kagami.Value, error) {
	var w wireValue
	if err := decodeYAML(data, &w); err != nil {
		return kagami.Value{}, err
	}
	return wireToValue(w, "")
}

// EncodeTypeYAML serializes a type graph and its root id.
func EncodeTypeYAML(root kagami.TypeRoot) ([]byte, error) {
	w, err := graphToWire(root)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(w)
}

// DecodeTypeYAML parses a serialized type graph.
func DecodeTypeYAML(data []byte) (kagami.TypeRoot, error) {
	var w wireGraph
	if err := decodeYAML(data, &w); err != nil {
		return kagami.TypeRoot{}, err
	}
	return wireToGraph(w)
}

func decodeYAML(data []byte, out any) error {
	if err := yaml.Unmarshal(data, out); err != nil {
		iss := kagami.NewIssue("", kagami.CodeParseError)
		iss.Cause = err
		return kagami.Issues{iss}
	}
	return nil
}
