package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// ResourceName is the single collection exposed over HTTP.
const ResourceName = "shopping-list"

// Item is one shopping list entry. Name and Quantity keep whatever JSON
// value the client sent (string or number).
type Item struct {
	ID       string `json:"id"`
	Name     any    `json:"item"`
	Quantity any    `json:"quantity"`

	// extra holds any other keys of a stored entry as a JSON object, so
	// they survive a rewrite. Kept as text to leave Item comparable.
	extra string
}

// UnmarshalJSON accepts entries written by other tools: a non-string id is
// kept as its JSON text (1700000000000 becomes "1700000000000") and
// unknown keys are preserved.
func (it *Item) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode item: %w", err)
	}
	if fields == nil {
		return nil
	}

	var out Item
	if raw, ok := fields["id"]; ok {
		out.ID = decodeID(raw)
	}
	for key, dst := range map[string]*any{"item": &out.Name, "quantity": &out.Quantity} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := DecodeJSON(raw, dst); err != nil {
			return fmt.Errorf("decode item %s: %w", key, err)
		}
	}

	delete(fields, "id")
	delete(fields, "item")
	delete(fields, "quantity")
	if len(fields) > 0 {
		b, err := json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("decode item: %w", err)
		}
		out.extra = string(b)
	}

	*it = out
	return nil
}

// MarshalJSON writes id, item and quantity first, followed by any
// preserved keys.
func (it Item) MarshalJSON() ([]byte, error) {
	type plain struct {
		ID       string `json:"id"`
		Name     any    `json:"item"`
		Quantity any    `json:"quantity"`
	}
	b, err := json.Marshal(plain{ID: it.ID, Name: it.Name, Quantity: it.Quantity})
	if err != nil {
		return nil, err
	}
	if it.extra == "" || it.extra == "{}" {
		return b, nil
	}
	out := make([]byte, 0, len(b)+len(it.extra))
	out = append(out, b[:len(b)-1]...)
	out = append(out, ',')
	out = append(out, it.extra[1:]...)
	return out, nil
}

// Extra returns the preserved non-standard keys as a JSON object, or "".
func (it Item) Extra() string { return it.extra }

func decodeID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var v any
	if err := DecodeJSON(raw, &v); err != nil || v == nil {
		return ""
	}
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// ItemInput carries the client-supplied fields of a POST or PUT body.
type ItemInput struct {
	Name     any `json:"item,omitempty"`
	Quantity any `json:"quantity,omitempty"`
}

// Valid reports whether both required fields are present and truthy.
func (in ItemInput) Valid() bool {
	return Truthy(in.Name) && Truthy(in.Quantity)
}

// Merge returns a copy of it with the input fields applied. The id is kept.
func (it Item) Merge(in ItemInput) Item {
	out := it
	if in.Name != nil {
		out.Name = in.Name
	}
	if in.Quantity != nil {
		out.Quantity = in.Quantity
	}
	return out
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Truthy follows JSON-value truthiness: null, false, 0, NaN and "" are
// false, everything else (objects and arrays included) is true.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return x != ""
		}
		return f != 0 && !math.IsNaN(f)
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case int64:
		return x != 0
	}
	return true
}

// DecodeJSON unmarshals data keeping numbers as json.Number so that
// quantities round-trip with their original literal.
func DecodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

// ParseItemInput extracts the item fields from a decoded JSON body. Bodies
// that are not objects yield an empty input.
func ParseItemInput(body any) ItemInput {
	m, ok := body.(map[string]any)
	if !ok {
		return ItemInput{}
	}
	return ItemInput{Name: m["item"], Quantity: m["quantity"]}
}
