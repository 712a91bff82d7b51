package dto

type SubmitReportInput struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Wing     string  `json:"wing" binding:"required,max=100"`
	Type     string  `json:"type" binding:"required,oneof=ACCOUNT_CONFLICT NEW_ACCOUNT_REQUEST"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Notes    *string `json:"notes"`
}
