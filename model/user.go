package model

import "time"

type User struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Password    string    `json:"-"` // The hash is not exposed in JSON responses.
	CreatedAt   time.Time `json:"created_at"`
}
