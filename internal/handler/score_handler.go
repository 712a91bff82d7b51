package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wingops/wingscore/internal/dto"
	"github.com/wingops/wingscore/internal/service"
	"github.com/wingops/wingscore/pkg/apperror"
	"github.com/wingops/wingscore/pkg/response"
)

type ScoreHandler struct {
	scoreService    service.ScoreService
	exerciseService service.ExerciseService
}

func NewScoreHandler(scoreService service.ScoreService, exerciseService service.ExerciseService) *ScoreHandler {
	return &ScoreHandler{
		scoreService:    scoreService,
		exerciseService: exerciseService,
	}
}

func (h *ScoreHandler) Submit(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.SubmitScoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.scoreService.Submit(c.Request.Context(), userID, input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ScoreHandler) MyScores(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	scores, err := h.scoreService.MyScores(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, scores)
}

func (h *ScoreHandler) Leaderboard(c *gin.Context) {
	exerciseID, err := strconv.ParseUint(c.Query("exercise_id"), 10, 64)
	if err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	entries, err := h.scoreService.Leaderboard(c.Request.Context(), uint(exerciseID), optionalQuery(c, "wing"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *ScoreHandler) Summary(c *gin.Context) {
	entries, err := h.scoreService.Summary(c.Request.Context(), optionalQuery(c, "wing"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *ScoreHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, exercises)
}
