package ws

import (
	"encoding/json"
	"errors"
)

var errMissingPayload = errors.New("missing payload")

// decodePayload unmarshals an inbound payload into dst. A missing or null
// payload is an error so handlers never act on zero values by accident.
func decodePayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return errMissingPayload
	}
	return json.Unmarshal(raw, dst)
}
