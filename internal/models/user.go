package models

import (
	"time"
)

// User represents a registered account. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	Fullname  string    `json:"fullname" db:"fullname"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
