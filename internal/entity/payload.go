package entity

import (
	"encoding/json"
	"fmt"
)

// Payload is the structured data attached to a notification. It is stored
// as a JSON text column and must round-trip to the same structure on read.
type Payload map[string]interface{}

func (p Payload) Encode() (string, error) {
	if p == nil {
		p = Payload{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}
	return string(data), nil
}

func DecodePayload(raw string) (Payload, error) {
	if raw == "" {
		return Payload{}, nil
	}
	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return p, nil
}

// StringMap flattens the payload into the string-keyed string-valued form
// FCM requires for its data field.
func (p Payload) StringMap() map[string]string {
	out := make(map[string]string, len(p))
	for k, v := range p {
		switch val := v.(type) {
		case string:
			out[k] = val
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
