package models

import (
	"time"
)

// Identity is the canonical login record from the 'register' table.
// Every role profile hangs off its 9-digit primary key.
type Identity struct {
	ID         int64     `json:"id" db:"id"`
	Email      string    `json:"email" db:"email"`
	Password   string    `json:"-" db:"password"`
	Role       Role      `json:"role" db:"role"`
	CreateTime time.Time `json:"createTime" db:"create_time"`
}
