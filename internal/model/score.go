package model

import "time"

// Score accumulates total reps per (user, exercise): repeated submissions add
// to the stored value instead of overwriting it.
type Score struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_scores_user_exercise" json:"user_id"`
	ExerciseID uint      `gorm:"not null;uniqueIndex:idx_scores_user_exercise" json:"exercise_id"`
	Value      int       `gorm:"not null" json:"value"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	User     *User     `json:"user,omitempty"`
	Exercise *Exercise `json:"exercise,omitempty"`
}
