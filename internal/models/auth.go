package models

import "time"

// AuthSettings is the single administrator credential.
type AuthSettings struct {
	Username                  string     `json:"username"`
	PasswordHash              string     `json:"-"`
	EncryptedConnectionString string     `json:"-"`
	CreatedAt                 time.Time  `json:"createdAt"`
	LastLoginAt               *time.Time `json:"lastLoginAt,omitempty"`
}

// AuthStatus is the public view of the configured credential.
type AuthStatus struct {
	IsConfigured        bool       `json:"isConfigured"`
	Username            string     `json:"username,omitempty"`
	LastLoginAt         *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt           *time.Time `json:"createdAt,omitempty"`
	HasConnectionString bool       `json:"hasConnectionString"`
}

// AuthToken is returned on successful login.
type AuthToken struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}
