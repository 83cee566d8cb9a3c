package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-jobportal-backend/config"
	"go-jobportal-backend/internal/delivery/http/middleware"
	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"
)

type RouterDeps struct {
	CandidateUC domain.CandidateUsecase
	SkillUC     domain.SkillUsecase
	SearchUC    domain.SearchUsecase
	UserRepo    domain.UserRepository
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global middlewares. CORS must run first so error responses carry the
	// headers too.
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config, deps.UserRepo))

	candidate := protected.Group("")
	candidate.Use(middleware.RequireRole(domain.RoleCandidate))

	employer := protected.Group("")
	employer.Use(middleware.RequireRole(domain.RoleEmployer, domain.RoleMasterAdmin))

	uploads := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig(deps.Config.RateLimitUploadThreshold, window))
	searchLimit := middleware.RateLimitMiddleware(middleware.SearchRateLimitConfig(deps.Config.RateLimitSearchThreshold, window))

	NewCandidateHandler(v1, candidate, uploads, deps.CandidateUC)
	NewSkillHandler(protected, deps.SkillUC)
	NewEmployerHandler(employer, searchLimit, deps.SearchUC)

	return r
}
