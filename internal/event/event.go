package event

import "encoding/json"

// Server-to-client event names pushed over the realtime channel. There is no
// client-to-server event vocabulary: connect/disconnect are implicit and
// message creation flows through the REST API.
const (
	EventPresenceOnline  = "presence:online"
	EventPresenceOffline = "presence:offline"
	EventMessageNew      = "message:new"
)

type WsEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type PresencePayload struct {
	UserID string `json:"userId"`
}

// New builds an event with an arbitrary JSON payload.
func New(name string, payload any) (WsEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return WsEvent{}, err
	}
	return WsEvent{Event: name, Payload: raw}, nil
}

func NewPresenceOnline(userID string) WsEvent {
	ev, _ := New(EventPresenceOnline, PresencePayload{UserID: userID})
	return ev
}

func NewPresenceOffline(userID string) WsEvent {
	ev, _ := New(EventPresenceOffline, PresencePayload{UserID: userID})
	return ev
}
