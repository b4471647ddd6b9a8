package webmnt

import (
	"encoding/json"

	"github.com/kastheco/webmon/session"
)

// Credentials are the login values sent to the auth endpoint.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Env      string `json:"env"`
}

// Page is one page of the session list.
type Page struct {
	Items   []session.Record `json:"items"`
	HasNext bool             `json:"hasNext"`
}

// MessageResult is the server's answer to a message broadcast. A non-empty
// Message is something the operator has to see.
type MessageResult struct {
	Level   int             `json:"level"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type authResponse struct {
	Token string `json:"token"`
}

type errorBody struct {
	Message string `json:"message"`
}
