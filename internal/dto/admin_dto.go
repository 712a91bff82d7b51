package dto

type AdminAuthInput struct {
	Password string `json:"password" binding:"required"`
}

type AdminAuthResponse struct {
	Tier string  `json:"tier"`
	Wing *string `json:"wing,omitempty"`
}

type AdminCreateUserInput struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Wing     *string `json:"wing"`
	Password *string `json:"password"`
}

type AdminUpdateUserInput struct {
	Name *string `json:"name"`
	Wing *string `json:"wing"`
	// Password semantics: nil leaves the credential alone, empty string clears
	// it without stamping PasswordChangedAt, anything else re-hashes and stamps.
	Password *string `json:"password"`
}

type ExerciseInput struct {
	Name string `json:"name" binding:"required,max=100"`
	Type string `json:"type" binding:"omitempty,oneof=rep seconds"`
}

type MergeInput struct {
	TargetUserID uint `json:"target_user_id" binding:"required"`
	SourceUserID uint `json:"source_user_id" binding:"required"`
}

type ConflictEntry struct {
	UserID      uint    `json:"user_id"`
	Name        string  `json:"name"`
	Wing        *string `json:"wing"`
	HasPassword bool    `json:"has_password"`
	// Others counts same-name rows under a different wing.
	Others int `json:"others"`
}

type RosterUploadResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}
