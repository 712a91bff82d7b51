package model

import "time"

const (
	ActionLogin           = "login"
	ActionLogout          = "logout"
	ActionPasswordChanged = "password_changed"
	ActionAccountDeleted  = "account_deleted"
	ActionAccountReset    = "account_reset"
	ActionAccountBanned   = "account_banned"
	ActionAccountMerged   = "account_merged"
	ActionAccountClaimed  = "account_claimed"
)

// AccountAction is an append-only audit entry. UserID, UserName and UserWing
// are all nullable snapshots so history survives user deletion.
type AccountAction struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	UserID   *uint   `gorm:"index" json:"user_id,omitempty"`
	UserName *string `gorm:"size:100" json:"user_name,omitempty"`
	UserWing *string `gorm:"size:100" json:"user_wing,omitempty"`
	Action   string  `gorm:"size:30;not null;index" json:"action"`
	Details  *string `gorm:"type:text" json:"details,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
