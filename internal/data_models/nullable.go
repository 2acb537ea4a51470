package dto

import (
	"bytes"
	"encoding/json"
)

// Nullable distinguishes a field left out of a JSON body from one sent as
// null.
type Nullable[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Null = true
		return nil
	}
	return json.Unmarshal(b, &n.Value)
}

// Column returns the value to store: nil for an explicit null.
func (n Nullable[T]) Column() any {
	if n.Null {
		return nil
	}
	return n.Value
}
