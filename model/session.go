// file: model/session.go

package model

import "time"

// Session holds the single refresh token currently valid for a user. An
// empty RefreshToken means the user has no active session.
type Session struct {
	UserID       int       `json:"user_id"`
	RefreshToken string    `json:"-"` // The token is not exposed in JSON responses.
	UpdatedAt    time.Time `json:"updated_at"`
}
