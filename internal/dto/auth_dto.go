package dto

import "github.com/wingops/wingscore/internal/model"

type RegisterInput struct {
	Name       string `json:"name" binding:"required,max=100"`
	Wing       string `json:"wing" binding:"required,max=100"`
	Password   string `json:"password" binding:"required,min=4"`
	RememberMe bool   `json:"remember_me"`
}

type LoginInput struct {
	Name       string `json:"name" binding:"required"`
	Wing       string `json:"wing" binding:"required"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type SetPasswordInput struct {
	UserID          uint   `json:"user_id" binding:"required"`
	Password        string `json:"password" binding:"required,min=4"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=4"`
}

type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        *model.User `json:"user"`
}

type IdentityResponse struct {
	UserID uint    `json:"user_id"`
	Name   string  `json:"name"`
	Wing   *string `json:"wing"`
}
