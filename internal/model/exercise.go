package model

import "time"

const (
	ExerciseTypeRep     = "rep"
	ExerciseTypeSeconds = "seconds"
)

type Exercise struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	// Type is "rep" in practice; "seconds" is modeled but unused.
	Type      string    `gorm:"size:20;not null;default:rep" json:"type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Scores []Score `gorm:"constraint:OnDelete:CASCADE" json:"scores,omitempty"`
}
