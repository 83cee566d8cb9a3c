package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-jobportal-backend/internal/delivery/http/middleware"
	"go-jobportal-backend/internal/domain"
)

type EmployerHandler struct {
	searchUC domain.SearchUsecase
}

func NewEmployerHandler(employer *gin.RouterGroup, searchLimit gin.HandlerFunc, searchUC domain.SearchUsecase) {
	handler := &EmployerHandler{searchUC: searchUC}

	candidates := employer.Group("/employer/candidates")
	{
		candidates.GET("", searchLimit, handler.Search)
		candidates.GET("/:id", handler.GetCandidate)
		candidates.GET("/:id/profile", handler.GetCandidateProfile)
	}
}

// Search godoc
// @Summary      Search searchable candidates
// @Description  All supplied criteria are OR-combined; a request with no criteria returns an empty set
// @Tags         employer
// @Produce      json
// @Param        keywords              query  string  false  "Name, summary or skill text"
// @Param        location              query  string  false  "Any location field"
// @Param        city                  query  string  false  "Current city"
// @Param        state                 query  string  false  "Current state"
// @Param        country               query  string  false  "Country"
// @Param        exp_min               query  number  false  "Minimum experience in years"
// @Param        exp_max               query  number  false  "Maximum experience in years"
// @Param        skills                query  string  false  "Comma-separated skill names"
// @Param        skill_ids             query  string  false  "Comma-separated directory skill ids"
// @Param        updated_within        query  int     false  "Days since last update"
// @Param        salary_min            query  int     false  "Minimum expected salary"
// @Param        salary_max            query  int     false  "Maximum expected salary"
// @Param        notice_period         query  int     false  "Maximum notice period in days"
// @Param        work_status           query  string  false  "FRESHER or EXPERIENCED"
// @Param        availability_to_join  query  string  false  "Availability bucket"
// @Param        education             query  string  false  "Exact degree"
// @Param        page                  query  int     false  "Page number"
// @Param        page_size             query  int     false  "Page size (default 20, cap 50)"
// @Success      200  {object}  domain.SearchResult
// @Router       /employer/candidates [get]
// @Security     BearerAuth
func (h *EmployerHandler) Search(c *gin.Context) {
	params := domain.SearchParams{
		Keywords:           c.Query("keywords"),
		Location:           c.Query("location"),
		City:               c.Query("city"),
		State:              c.Query("state"),
		Country:            c.Query("country"),
		ExpMin:             c.Query("exp_min"),
		ExpMax:             c.Query("exp_max"),
		Skills:             c.Query("skills"),
		SkillIDs:           c.Query("skill_ids"),
		UpdatedWithin:      c.Query("updated_within"),
		SalaryMin:          c.Query("salary_min"),
		SalaryMax:          c.Query("salary_max"),
		NoticePeriod:       c.Query("notice_period"),
		WorkStatus:         c.Query("work_status"),
		AvailabilityToJoin: c.Query("availability_to_join"),
		Education:          c.Query("education"),
	}
	params.Page, _ = strconv.Atoi(c.Query("page"))
	params.PageSize, _ = strconv.Atoi(c.Query("page_size"))

	result, err := h.searchUC.Search(c.Request.Context(), params)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *EmployerHandler) GetCandidate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.searchUC.GetCandidateDetail(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetCandidateProfile godoc
// @Summary      Full candidate profile for employers
// @Description  Denied across organizations when both sides have one
// @Tags         employer
// @Produce      json
// @Success      200  {object}  domain.EmployerProfileView
// @Failure      403  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /employer/candidates/{id}/profile [get]
// @Security     BearerAuth
func (h *EmployerHandler) GetCandidateProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.searchUC.GetCandidateProfile(c.Request.Context(), middleware.CurrentOrgID(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}
