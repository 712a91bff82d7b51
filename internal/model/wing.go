package model

import "time"

type Wing struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// RosterEntry is the secondary (name, wing) index that feeds selection
// dropdowns. It tracks the User table but is not authoritative.
type RosterEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_roster_name_wing" json:"name"`
	Wing      string    `gorm:"size:100;not null;uniqueIndex:idx_roster_name_wing" json:"wing"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// SeedMarker records that first-run seeding already happened, so startup
// seeding stays idempotent across restarts.
type SeedMarker struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Key      string    `gorm:"size:50;uniqueIndex;not null" json:"key"`
	SeededAt time.Time `gorm:"autoCreateTime" json:"seeded_at"`
}
