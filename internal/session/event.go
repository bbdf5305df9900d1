package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownEvent is returned for events a preview does not handle.
var ErrUnknownEvent = errors.New("session: unknown event")

// Event is one message from the page runtime.
type Event struct {
	Type      string  `json:"type"`
	Query     string  `json:"query,omitempty"`
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Node      int     `json:"node"`
	File      int     `json:"file"`
	Mode      string  `json:"mode,omitempty"`
	ScrollTop float64 `json:"scrollTop"`
	Height    float64 `json:"height"`
	Key       string  `json:"key,omitempty"`
	Ctrl      bool    `json:"ctrl,omitempty"`
}

// DecodeEvent parses a websocket message.
func DecodeEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("decoding event: %w", err)
	}
	if ev.Type == "" {
		return Event{}, fmt.Errorf("%w: missing type", ErrUnknownEvent)
	}
	return ev, nil
}

func unknown(kind string, ev Event) error {
	return fmt.Errorf("%w: %q for %s preview", ErrUnknownEvent, ev.Type, kind)
}
