package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wingops/wingscore/internal/dto"
	"github.com/wingops/wingscore/internal/service"
	"github.com/wingops/wingscore/pkg/response"
	"github.com/wingops/wingscore/pkg/token"
)

type AuthHandler struct {
	accountService service.AccountService
}

func NewAuthHandler(accountService service.AccountService) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.accountService.Register(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.accountService.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Verify echoes the identity carried by a valid session token.
func (h *AuthHandler) Verify(c *gin.Context) {
	identityVal, exists := c.Get("identity")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}
	identity := identityVal.(*token.Identity)

	c.JSON(http.StatusOK, dto.IdentityResponse{
		UserID: identity.UserID,
		Name:   identity.Name,
		Wing:   identity.Wing,
	})
}

func (h *AuthHandler) SetPassword(c *gin.Context) {
	var input dto.SetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.accountService.SetPassword(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.accountService.ChangePassword(c.Request.Context(), userID, input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	h.accountService.Logout(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
