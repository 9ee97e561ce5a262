package models

import (
	"time"
)

// User represents a back-office user row.
type User struct {
	UserID       string `json:"userID" db:"user_id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	Name         string `json:"name" db:"name"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}
