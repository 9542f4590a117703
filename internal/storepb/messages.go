package storepb

import "fmt"

type DispatchActionRequest struct {
	Action Action
}

type DispatchActionResponse struct{}

type DispatchEventRequest struct {
	Event Event
}

type DispatchEventResponse struct{}

// SubscribeEventRequest asks for a stream of events of the same variant as
// Event. The payload of Event is ignored.
type SubscribeEventRequest struct {
	Event Event
}

type SubscribeEventResponse struct {
	Event Event
}

type actionMessage struct {
	Action *actionEnvelope `cbor:"1,keyasint"`
}

type eventMessage struct {
	Event *eventEnvelope `cbor:"1,keyasint"`
}

func marshalAction(a Action) ([]byte, error) {
	env, err := wrapAction(a)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(actionMessage{Action: env})
}

func unmarshalAction(data []byte) (Action, error) {
	var m actionMessage
	if err := decMode.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Action == nil {
		return nil, fmt.Errorf("action: %w", ErrEmptyOneof)
	}
	return m.Action.unwrap()
}

func marshalEvent(e Event) ([]byte, error) {
	env, err := wrapEvent(e)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(eventMessage{Event: env})
}

func unmarshalEvent(data []byte) (Event, error) {
	var m eventMessage
	if err := decMode.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Event == nil {
		return nil, fmt.Errorf("event: %w", ErrEmptyOneof)
	}
	return m.Event.unwrap()
}

func (r DispatchActionRequest) MarshalCBOR() ([]byte, error) { return marshalAction(r.Action) }

func (r *DispatchActionRequest) UnmarshalCBOR(data []byte) (err error) {
	r.Action, err = unmarshalAction(data)
	return err
}

func (r DispatchEventRequest) MarshalCBOR() ([]byte, error) { return marshalEvent(r.Event) }

func (r *DispatchEventRequest) UnmarshalCBOR(data []byte) (err error) {
	r.Event, err = unmarshalEvent(data)
	return err
}

func (r SubscribeEventRequest) MarshalCBOR() ([]byte, error) { return marshalEvent(r.Event) }

func (r *SubscribeEventRequest) UnmarshalCBOR(data []byte) (err error) {
	r.Event, err = unmarshalEvent(data)
	return err
}

func (r SubscribeEventResponse) MarshalCBOR() ([]byte, error) { return marshalEvent(r.Event) }

func (r *SubscribeEventResponse) UnmarshalCBOR(data []byte) (err error) {
	r.Event, err = unmarshalEvent(data)
	return err
}
