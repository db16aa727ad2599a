package events

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Events travel as MessagePack on the monitor socket; the audit stream
// stores them as JSON. Decode accepts both, so recorded streams and
// live captures go through the same path.

// Encode renders an event for the monitor wire.
func Encode(ev *Event) ([]byte, error) {
	return msgpack.Marshal(ev)
}

// Decode parses an encoded event, trying MessagePack first and falling
// back to JSON. On double failure the MessagePack error is returned.
func Decode(data []byte) (*Event, error) {
	var ev Event
	if err := msgpack.Unmarshal(data, &ev); err != nil {
		if json.Unmarshal(data, &ev) != nil {
			return nil, err
		}
	}
	return &ev, nil
}
