package model

import "time"

// Preferences holds the user's saved display preferences.
type Preferences struct {
	Language string `json:"language"`
	Currency string `json:"currency"`
	Theme    string `json:"theme"`
}

// User is the authenticated account.
type User struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	AvatarURL   string      `json:"avatar_url,omitempty"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
