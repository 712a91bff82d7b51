package model

import "time"

const (
	// ReportTypeAccountConflict: the visitor found an existing
	// password-protected account under their name and suspects impersonation.
	ReportTypeAccountConflict = "ACCOUNT_CONFLICT"
	// ReportTypeNewAccountRequest: the visitor's name is absent from the roster.
	ReportTypeNewAccountRequest = "NEW_ACCOUNT_REQUEST"
)

const (
	ReportStatusPending   = "PENDING"
	ReportStatusResolved  = "RESOLVED"
	ReportStatusDismissed = "DISMISSED"
)

type Report struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Wing string `gorm:"size:100;not null" json:"wing"`
	Type string `gorm:"size:30;not null" json:"type"`
	// Password, when present, is the replacement the admin applies on approve.
	Password   *string    `gorm:"size:255" json:"-"`
	Email      *string    `gorm:"size:255" json:"email,omitempty"`
	Phone      *string    `gorm:"size:50" json:"phone,omitempty"`
	Notes      *string    `gorm:"type:text" json:"notes,omitempty"`
	Status     string     `gorm:"size:20;not null;default:PENDING" json:"status"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy *string    `gorm:"size:20" json:"resolved_by,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
