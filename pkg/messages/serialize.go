package messages

import (
	"encoding/json"
	"fmt"
)

// ErrUnknownMessageType is returned by Decode for a well formed frame whose
// type is not known to this client.
type ErrUnknownMessageType struct {
	Type string
}

func (e *ErrUnknownMessageType) Error() string {
	return fmt.Sprintf("unknown message type: %s", e.Type)
}

// ErrMalformedMessage is returned by Decode for frames that are not a JSON
// object with a string type discriminator, or whose fields do not fit the type.
type ErrMalformedMessage struct {
	Reason string
}

func (e *ErrMalformedMessage) Error() string {
	return fmt.Sprintf("malformed message: %s", e.Reason)
}

func IsUnknownMessageType(err error) bool {
	_, ok := err.(*ErrUnknownMessageType)
	return ok
}

func IsMalformedMessage(err error) bool {
	_, ok := err.(*ErrMalformedMessage)
	return ok
}

// Encode serializes a command into a single text frame with its type
// discriminator beside the command fields.
func Encode(cmd Command) ([]byte, error) {
	body, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %v", cmd.CommandType(), err)
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("failed to flatten %s: %v", cmd.CommandType(), err)
	}
	typ, err := json.Marshal(cmd.CommandType())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message type: %v", err)
	}
	fields["type"] = typ

	b, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s frame: %v", cmd.CommandType(), err)
	}
	return b, nil
}

// Decode deserializes one inbound frame into its typed message.
func Decode(b []byte) (ServerMessage, error) {
	head := struct {
		Type *string `json:"type"`
	}{}
	if err := json.Unmarshal(b, &head); err != nil {
		return nil, &ErrMalformedMessage{Reason: err.Error()}
	}
	if head.Type == nil || *head.Type == "" {
		return nil, &ErrMalformedMessage{Reason: "missing type"}
	}

	newMessage, ok := inbound[*head.Type]
	if !ok {
		return nil, &ErrUnknownMessageType{Type: *head.Type}
	}

	msg := newMessage()
	if err := json.Unmarshal(b, msg); err != nil {
		return nil, &ErrMalformedMessage{Reason: fmt.Sprintf("%s: %v", *head.Type, err)}
	}
	return msg, nil
}
