package models

import "time"

// @Description Registered user
type User struct {
	UserID    int64     `json:"user_id" example:"1"`
	Username  string    `json:"username" example:"somchai"`
	Email     string    `json:"email" example:"user@example.com"`
	CreatedAt time.Time `json:"created_at"`
}
