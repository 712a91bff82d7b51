package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wingops/wingscore/pkg/validator"
)

func formatValidationError(err error) string {
	return validator.FormatValidationError(err)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// optionalQuery returns nil for an absent or empty query parameter.
func optionalQuery(c *gin.Context, name string) *string {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	return &value
}
