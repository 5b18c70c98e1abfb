package codec

import (
	"bytes"

	"github.com/goccy/go-json"

	kagami "github.com/reoring/kagami"
)

// EncodeValueJSON serializes a value into the tagged JSON wire form.
func EncodeValueJSON(v kagami.Value) ([]byte, error) {
	w, err := valueToWire(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// DecodeValueJSON parses the tagged JSON wire form back into a value.
// Numbers decode through json.Number, so 64-bit integers survive exactly.
func DecodeValueJSON(data []byte) (kagami.Value, error) {
	var w wireValue
	if err := decodeJSON(data, &w); err != nil {
		return kagami.Value{}, err
	}
	return wireToValue(w, "")
}

// EncodeTypeJSON serializes a type graph and its root id.
func EncodeTypeJSON(root kagami.TypeRoot) ([]byte, error) {
	w, err := graphToWire(root)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// DecodeTypeJSON parses a serialized type graph, validating every node
// reference before any node becomes reachable.
func DecodeTypeJSON(data []byte) (kagami.TypeRoot, error) {
	var w wireGraph
	if err := decodeJSON(data, &w); err != nil {
		return kagami.TypeRoot{}, err
	}
	return wireToGraph(w)
}

func decodeJSON(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		iss := kagami.NewIssue("", kagami.CodeParseError)
		iss.Cause = err
		return kagami.Issues{iss}
	}
	return nil
}
