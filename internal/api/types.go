package api

import (
	"encoding/json"

	"pantry/internal/model"
)

// envelope is the standard response wrapper used by every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Session is the payload returned by login and refresh.
type Session struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
