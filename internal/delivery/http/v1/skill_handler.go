package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-jobportal-backend/internal/domain"
)

type SkillHandler struct {
	skillUC domain.SkillUsecase
}

func NewSkillHandler(protected *gin.RouterGroup, skillUC domain.SkillUsecase) {
	handler := &SkillHandler{skillUC: skillUC}
	protected.GET("/skills/suggest", handler.Suggest)
}

// Suggest godoc
// @Summary      Typeahead skill suggestions
// @Description  Matches by prefix for single-character queries, substring otherwise
// @Tags         skills
// @Produce      json
// @Param        q      query     string  false  "Search text"
// @Param        limit  query     int     false  "Max results (default 10, cap 20)"
// @Success      200    {array}   domain.SkillSuggestion
// @Router       /skills/suggest [get]
// @Security     BearerAuth
func (h *SkillHandler) Suggest(c *gin.Context) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = 0
	}
	suggestions, err := h.skillUC.Suggest(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}
