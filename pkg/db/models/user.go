package models

import (
	"time"

	"github.com/renewbay/renewbay-backend/pkg/enums"
)

// User is an account row; email is the natural key used across collections.
type User struct {
	ID           uint       `gorm:"column:id;primaryKey;autoIncrement"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         enums.Role `gorm:"column:role;not null;default:customer"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}
