package dinos

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Record is a single validated catalog entry.
type Record struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Parse turns raw text into a generic JSON value. It makes one attempt and
// does not recover partial documents.
func Parse(raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, &ParseError{Err: errors.Errorf("malformed JSON (%d bytes)", len(raw))}
	}
	return gjson.ParseBytes(raw), nil
}

// Validate accepts v only if it is an array whose every element is an object
// with string "name" and "description" fields. The first bad element fails
// the whole document.
func Validate(v gjson.Result) ([]Record, error) {
	if !v.IsArray() {
		return nil, &DataFormatError{Reason: ReasonNotArray, Index: -1}
	}
	elems := v.Array()
	out := make([]Record, 0, len(elems))
	for i, el := range elems {
		if !el.IsObject() {
			return nil, &DataFormatError{Reason: ReasonInvalidElement, Index: i}
		}
		name := el.Get("name")
		desc := el.Get("description")
		if name.Type != gjson.String || desc.Type != gjson.String {
			return nil, &DataFormatError{Reason: ReasonInvalidElement, Index: i}
		}
		out = append(out, Record{Name: name.String(), Description: desc.String()})
	}
	return out, nil
}

// Find returns the first record whose name matches name ignoring case.
func Find(records []Record, name string) (Record, error) {
	for _, rec := range records {
		if strings.EqualFold(rec.Name, name) {
			return rec, nil
		}
	}
	return Record{}, &NotFoundError{Name: name}
}
