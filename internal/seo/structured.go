package seo

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSerialization is matched by every *SerializationError.
var ErrSerialization = errors.New("seo: structured data is not serializable")

// SerializationError reports a block that could not be encoded as JSON.
type SerializationError struct {
	Type string // the block's @type, when present
	Err  error
}

func (e *SerializationError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("seo: serialize %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("seo: serialize structured data: %v", e.Err)
}

func (e *SerializationError) Unwrap() []error { return []error{ErrSerialization, e.Err} }

// Marshal encodes b as compact JSON with map keys sorted.
func Marshal(b Block) (string, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		typ, _ := b["@type"].(string)
		return "", &SerializationError{Type: typ, Err: err}
	}
	return string(raw), nil
}

// AppendStructuredData serializes b and appends it to h as a new JSON-LD
// script. Existing blocks are never touched. On error nothing is appended.
func AppendStructuredData(h Head, b Block) error {
	text, err := Marshal(b)
	if err != nil {
		return err
	}
	el := h.Create("script")
	el.SetAttr("type", StructuredDataType)
	el.SetText(text)
	h.Append(el)
	return nil
}

// ResetStructuredData removes every JSON-LD script from h and returns how
// many were removed.
func ResetStructuredData(h Head) int {
	blocks := h.FindAll(StructuredSelector)
	for _, el := range blocks {
		h.Remove(el)
	}
	return len(blocks)
}

// StructuredData returns the raw JSON of every JSON-LD block in document order.
func StructuredData(h Head) []string {
	blocks := h.FindAll(StructuredSelector)
	out := make([]string, 0, len(blocks))
	for _, el := range blocks {
		out = append(out, el.Text())
	}
	return out
}
