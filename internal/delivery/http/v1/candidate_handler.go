package v1

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-jobportal-backend/internal/delivery/http/middleware"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
)

// maxUploadBytes caps resume and photo uploads at 10 MiB.
const maxUploadBytes = 10 << 20

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(public *gin.RouterGroup, candidate *gin.RouterGroup, uploads gin.HandlerFunc, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	public.POST("/candidates/register", handler.Register)

	profile := candidate.Group("/candidates/profile")
	{
		profile.GET("", handler.GetProfile)
		profile.PATCH("", handler.UpdateProfile)
		profile.GET("/overview", handler.GetOverview)
		profile.PATCH("/basic-details", handler.UpdateBasicDetails)
		profile.GET("/personal-details", handler.GetPersonalDetails)
		profile.PATCH("/personal-details", handler.UpdatePersonalDetails)

		profile.POST("/skills", handler.AddSkill)
		profile.PUT("/skills/bulk", handler.ReplaceSkills)
		profile.DELETE("/skills/:id", handler.DeleteSkill)

		profile.POST("/employments", handler.CreateEmployment)
		profile.PATCH("/employments/:id", handler.UpdateEmployment)
		profile.DELETE("/employments/:id", handler.DeleteEmployment)

		profile.POST("/educations", handler.CreateEducation)
		profile.PATCH("/educations/:id", handler.UpdateEducation)
		profile.DELETE("/educations/:id", handler.DeleteEducation)

		profile.POST("/projects", handler.CreateProject)
		profile.PATCH("/projects/:id", handler.UpdateProject)
		profile.DELETE("/projects/:id", handler.DeleteProject)

		profile.POST("/resume", uploads, handler.UploadResume)
		profile.DELETE("/resume", handler.DeleteResume)
		profile.POST("/photo", uploads, handler.UploadPhoto)
	}
}

// Register godoc
// @Summary      Register a new candidate
// @Description  Creates the user account and its empty profile
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        payload  body      domain.RegisterInput  true  "Registration payload"
// @Success      201      {object}  domain.ProfileEnvelope
// @Failure      400      {object}  response.ErrorBody
// @Router       /candidates/register [post]
func (h *CandidateHandler) Register(c *gin.Context) {
	var input domain.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation("REGISTER_INVALID_PAYLOAD", "Invalid registration payload.", nil))
		return
	}
	env, err := h.candidateUC.Register(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, env)
}

// GetProfile godoc
// @Summary      Get own profile
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  domain.ProfileEnvelope
// @Failure      404  {object}  response.ErrorBody
// @Router       /candidates/profile [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	env, err := h.candidateUC.GetOverview(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, env)
}

// GetOverview godoc
// @Summary      Get profile overview with completion breakdown
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  domain.ProfileEnvelope
// @Router       /candidates/profile/overview [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetOverview(c *gin.Context) {
	env, err := h.candidateUC.GetOverview(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, env)
}

// UpdateProfile godoc
// @Summary      Partially update the profile
// @Description  Merges the provided fields and re-evaluates searchability
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        payload  body      domain.ProfilePatch  true  "Fields to update"
// @Success      200      {object}  domain.ProfileEnvelope
// @Failure      400      {object}  response.ErrorBody
// @Router       /candidates/profile [patch]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	var patch domain.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.Validation("PROFILE_INVALID_PAYLOAD", "Invalid profile payload.", nil))
		return
	}
	env, err := h.candidateUC.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, env)
}

func (h *CandidateHandler) UpdateBasicDetails(c *gin.Context) {
	var patch domain.BasicDetailsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.Validation("BASIC_DETAILS_INVALID_PAYLOAD", "Invalid basic details payload.", nil))
		return
	}
	env, err := h.candidateUC.UpdateBasicDetails(c.Request.Context(), middleware.CurrentUserID(c), patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, env)
}

func (h *CandidateHandler) GetPersonalDetails(c *gin.Context) {
	view, err := h.candidateUC.GetPersonalDetails(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CandidateHandler) UpdatePersonalDetails(c *gin.Context) {
	var patch domain.PersonalDetailsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.Validation("PERSONAL_DETAILS_INVALID_PAYLOAD", "Invalid personal details payload.", nil))
		return
	}
	view, err := h.candidateUC.UpdatePersonalDetails(c.Request.Context(), middleware.CurrentUserID(c), patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ===== Skills =====

type addSkillRequest struct {
	Name string `json:"name"`
}

func (h *CandidateHandler) AddSkill(c *gin.Context) {
	var req addSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("SKILL_INVALID_PAYLOAD", "Invalid skill payload.", nil))
		return
	}
	skill, err := h.candidateUC.AddSkill(c.Request.Context(), middleware.CurrentUserID(c), req.Name)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, skill)
}

// ReplaceSkills accepts {"skills": [...]} where entries are either bare
// strings or {"name": ...} objects.
func (h *CandidateHandler) ReplaceSkills(c *gin.Context) {
	var req struct {
		Skills []json.RawMessage `json:"skills"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("SKILL_INVALID_PAYLOAD", "Skills must be a list.",
			map[string]string{"skills": "Must be a list."}))
		return
	}

	names := make([]string, 0, len(req.Skills))
	for _, raw := range req.Skills {
		var name string
		if err := json.Unmarshal(raw, &name); err == nil {
			names = append(names, name)
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil {
			names = append(names, obj.Name)
		}
	}

	skills, err := h.candidateUC.ReplaceSkills(c.Request.Context(), middleware.CurrentUserID(c), names)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

func (h *CandidateHandler) DeleteSkill(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.candidateUC.DeleteSkill(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== Employment =====

func (h *CandidateHandler) CreateEmployment(c *gin.Context) {
	var patch domain.EmploymentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.Validation("EMPLOYMENT_INVALID_PAYLOAD", "Invalid employment payload.", nil))
		return
	}
	employment, err := h.candidateUC.CreateEmployment(c.Request.Context(), middleware.CurrentUserID(c), patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, employment)
}

func (h *CandidateHandler) UpdateEmployment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch domain.EmploymentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.Validation("EMPLOYMENT_INVALID_PAYLOAD", "Invalid employment payload.", nil))
		return
	}
	employment, err := h.candidateUC.UpdateEmployment(c.Request.Context(), middleware.CurrentUserID(c), id, patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, employment)
}

func (h *CandidateHandler) DeleteEmployment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.candidateUC.DeleteEmployment(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== Education =====

func (h *CandidateHandler) CreateEducation(c *gin.Context) {
	var patch domain.EducationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.Validation("EDUCATION_INVALID_PAYLOAD", "Invalid education payload.", nil))
		return
	}
	education, err := h.candidateUC.CreateEducation(c.Request.Context(), middleware.CurrentUserID(c), patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, education)
}

func (h *CandidateHandler) UpdateEducation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch domain.EducationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.Validation("EDUCATION_INVALID_PAYLOAD", "Invalid education payload.", nil))
		return
	}
	education, err := h.candidateUC.UpdateEducation(c.Request.Context(), middleware.CurrentUserID(c), id, patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, education)
}

func (h *CandidateHandler) DeleteEducation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.candidateUC.DeleteEducation(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== Projects =====

func (h *CandidateHandler) CreateProject(c *gin.Context) {
	var patch domain.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.Validation("PROJECT_INVALID_PAYLOAD", "Invalid project payload.", nil))
		return
	}
	project, err := h.candidateUC.CreateProject(c.Request.Context(), middleware.CurrentUserID(c), patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *CandidateHandler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch domain.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.Validation("PROJECT_INVALID_PAYLOAD", "Invalid project payload.", nil))
		return
	}
	project, err := h.candidateUC.UpdateProject(c.Request.Context(), middleware.CurrentUserID(c), id, patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *CandidateHandler) DeleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.candidateUC.DeleteProject(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== Files =====

// UploadResume godoc
// @Summary      Upload a resume
// @Description  Accepts the file under "resume", "resume_file", or "file"
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  domain.ProfileEnvelope
// @Failure      400  {object}  response.ErrorBody
// @Router       /candidates/profile/resume [post]
// @Security     BearerAuth
func (h *CandidateHandler) UploadResume(c *gin.Context) {
	filename, _, data, ok := formFile(c, "resume", "resume_file", "file")
	if !ok {
		c.Error(apperror.New(http.StatusBadRequest, "RESUME_FILE_REQUIRED", "Resume file is required."))
		return
	}
	env, err := h.candidateUC.UploadResume(c.Request.Context(), middleware.CurrentUserID(c), filename, data)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, env)
}

func (h *CandidateHandler) DeleteResume(c *gin.Context) {
	env, err := h.candidateUC.DeleteResume(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, env)
}

func (h *CandidateHandler) UploadPhoto(c *gin.Context) {
	filename, contentType, data, ok := formFile(c, "photo", "photo_file", "file")
	if !ok {
		c.Error(apperror.New(http.StatusBadRequest, "PHOTO_FILE_REQUIRED", "Photo file is required."))
		return
	}
	url, err := h.candidateUC.UploadPhoto(c.Request.Context(), middleware.CurrentUserID(c), filename, contentType, data)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}

// formFile tries the accepted multipart field names in order and reads the
// first match.
func formFile(c *gin.Context, names ...string) (string, string, []byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	for _, name := range names {
		header, err := c.FormFile(name)
		if err != nil {
			continue
		}
		f, err := header.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			continue
		}
		return header.Filename, header.Header.Get("Content-Type"), data, true
	}
	return "", "", nil, false
}

// pathID parses the :id path segment, reporting 404 on malformed values to
// match lookups of ids that cannot exist.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NotFound("NOT_FOUND", "Not found."))
		return uuid.Nil, false
	}
	return id, true
}
