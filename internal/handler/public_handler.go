package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wingops/wingscore/internal/service"
	"github.com/wingops/wingscore/pkg/apperror"
	"github.com/wingops/wingscore/pkg/response"
)

// PublicHandler serves the unauthenticated selection data (wings, roster
// names) that login and registration forms need.
type PublicHandler struct {
	rosterService service.RosterService
}

func NewPublicHandler(rosterService service.RosterService) *PublicHandler {
	return &PublicHandler{
		rosterService: rosterService,
	}
}

func (h *PublicHandler) Wings(c *gin.Context) {
	wings, err := h.rosterService.Wings(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, wings)
}

func (h *PublicHandler) Roster(c *gin.Context) {
	wing := c.Query("wing")
	if wing == "" {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	entries, err := h.rosterService.Names(c.Request.Context(), wing)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
