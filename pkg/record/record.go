// Package record holds the flat field/value rows returned by list endpoints.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is one element of a list response. Numbers are kept as json.Number
// so they render exactly as the backend sent them.
type Record map[string]any

// Decode parses a JSON array of objects. A null body decodes to no records.
func Decode(body []byte) ([]Record, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("record: empty response body")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var out []Record
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("record: decode collection: %w", err)
	}
	return out, nil
}

// Value returns the field value, reporting false when it is absent or null.
func (r Record) Value(field string) (any, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String renders the field as plain text. Absent and null fields are "".
func (r Record) String(field string) string {
	v, ok := r.Value(field)
	if !ok {
		return ""
	}
	return Text(v)
}

// Text renders a decoded JSON value as plain text.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// Float parses a numeric field. Strings holding numbers are accepted since
// several backends serialize decimals as strings.
func (r Record) Float(field string) (float64, bool) {
	v, ok := r.Value(field)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	return 0, false
}
