package model

import (
	"time"
)

type User struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;index:idx_users_name_wing" json:"name"`
	// Wing is nil for users not yet assigned to a wing. An unassigned user and
	// a same-named user under a wing together form a conflict, which is
	// surfaced rather than prevented.
	Wing         *string `gorm:"size:100;index:idx_users_name_wing" json:"wing"`
	PasswordHash *string `gorm:"size:255" json:"-"`
	// HasLoggedIn flips true on the first successful authentication and never
	// reverts.
	HasLoggedIn       bool       `gorm:"not null;default:false" json:"has_logged_in"`
	PasswordChangedAt *time.Time `json:"password_changed_at,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Scores []Score `gorm:"constraint:OnDelete:CASCADE" json:"scores,omitempty"`
}

// HasPassword reports whether the account has been claimed.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
