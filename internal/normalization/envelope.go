package normalization

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Shape tells which of the two backend response layouts was received.
type Shape int

const (
	// ShapeFlat is the bare payload, e.g. {"breakfast": {...}, ...}.
	ShapeFlat Shape = iota
	// ShapeWrapped is {"success": bool, "<payload key>": ..., "error": "..."}.
	ShapeWrapped
)

func (s Shape) String() string {
	if s == ShapeWrapped {
		return "wrapped"
	}
	return "flat"
}

// Envelope is the resolved response: the shape, the wrapper's success flag and
// error message (wrapped only), and the payload to normalize.
type Envelope struct {
	Shape   Shape
	Success bool
	Error   string
	Payload any
}

// Failed reports whether a wrapped response declared success=false.
func (e Envelope) Failed() bool {
	return e.Shape == ShapeWrapped && !e.Success
}

// Message returns the wrapper's error message or def.
func (e Envelope) Message(def string) string {
	if msg := strings.TrimSpace(e.Error); msg != "" {
		return msg
	}
	return def
}

var ErrNotObject = errors.New("response body is not a JSON object")

// DecodeObject parses a response body into an untyped object. Numbers are kept
// as json.Number so coercion sees exactly what the backend sent.
func DecodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return obj, nil
}

// IsWrapped is the detector for the success-flag wrapper.
func IsWrapped(obj map[string]any) bool {
	_, ok := obj["success"].(bool)
	return ok
}

// DetectEnvelope resolves obj into one Envelope. For the wrapped shape the
// payload is obj[payloadKey]; for the flat shape it is obj itself.
func DetectEnvelope(obj map[string]any, payloadKey string) Envelope {
	if IsWrapped(obj) {
		env := Envelope{
			Shape:   ShapeWrapped,
			Success: obj["success"].(bool),
			Payload: obj[payloadKey],
		}
		if msg, ok := obj["error"].(string); ok {
			env.Error = msg
		} else if obj["error"] != nil {
			env.Error, _ = Text(obj["error"])
		}
		return env
	}
	return Envelope{Shape: ShapeFlat, Success: true, Payload: obj}
}
