package dto

type SubmitScoreInput struct {
	ExerciseID uint `json:"exercise_id" binding:"required"`
	Value      int  `json:"value" binding:"gte=0"`
}

type LeaderboardEntry struct {
	UserID   uint    `json:"user_id"`
	Name     string  `json:"name"`
	Wing     *string `json:"wing"`
	Value    int     `json:"value"`
	Position int     `json:"position"`
}

// SummaryEntry aggregates a user's scores across all exercises. Total takes
// the max per exercise before summing, which differs on purpose from the
// accumulate-on-write semantic of submissions.
type SummaryEntry struct {
	UserID    uint    `json:"user_id"`
	Name      string  `json:"name"`
	Wing      *string `json:"wing"`
	Total     int     `json:"total"`
	Exercises int     `json:"exercises"`
	Position  int     `json:"position"`
}
