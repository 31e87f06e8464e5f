package api

import (
	"context"
	"net/http"

	"github.com/PrayatshuMisra/hacka-nexus/internal/auth"
	"github.com/PrayatshuMisra/hacka-nexus/internal/metrics"
	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
	"github.com/PrayatshuMisra/hacka-nexus/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type TaskDispatcher interface {
	Dispatch(ctx context.Context, req *model.TaskRequest) (any, error)
}

type MembershipService interface {
	JoinClub(ctx context.Context, clubID, userID int64) (*model.Membership, error)
	ApplyToClub(ctx context.Context, clubID, userID int64, form *model.ApplicationForm) (*model.Application, error)
	CheckMembership(ctx context.Context, clubID, userID int64) (*model.MembershipCheck, error)
	ListMembers(ctx context.Context, clubID int64) ([]*model.Membership, error)
}

type Handler struct {
	tasks       TaskDispatcher
	memberships MembershipService

	signer        *auth.Signer
	healthChecker HealthChecker
	metrics       *metrics.Metrics

	taskRPS   float64
	taskBurst int

	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		logger: logger,
	}
}

func (h *Handler) WithTaskDispatcher(d TaskDispatcher) *Handler {
	h.tasks = d
	return h
}

func (h *Handler) WithMembershipService(s MembershipService) *Handler {
	h.memberships = s
	return h
}

func (h *Handler) WithSigner(s *auth.Signer) *Handler {
	h.signer = s
	return h
}

func (h *Handler) WithHealthChecker(c HealthChecker) *Handler {
	h.healthChecker = c
	return h
}

func (h *Handler) WithMetrics(m *metrics.Metrics) *Handler {
	h.metrics = m
	return h
}

// WithTaskRateLimit limits the task route per client IP; rps <= 0 disables it.
func (h *Handler) WithTaskRateLimit(rps float64, burst int) *Handler {
	h.taskRPS = rps
	h.taskBurst = burst
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(ZapLoggerMiddleware(h.logger))
	e.Use(MetricsMiddleware(h.metrics))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if h.healthChecker != nil {
		e.GET("/health", h.healthChecker.HealthCheck())
	}
	e.GET("/metrics", echo.WrapHandler(h.metrics.Handler()))

	tasks := e.Group("/api/runanywhere")
	if h.taskRPS > 0 {
		tasks.Use(TaskRateLimiter(h.taskRPS, h.taskBurst))
	}
	tasks.GET("", h.TaskInfo)
	tasks.POST("", h.RunTask)

	if h.signer == nil {
		h.logger.Warn("no token secret configured, club routes are disabled")
		return
	}

	clubs := e.Group("/clubs", AuthMiddleware(h.signer, auth.TokenTypeUser, auth.TokenTypeAdmin))

	clubs.POST("/:id/join", h.JoinClub)
	clubs.POST("/:id/apply", h.ApplyToClub)
	clubs.GET("/:id/membership", h.GetMembership)
	clubs.GET("/:id/members", h.ListMembers)
}

type errorResponse struct {
	Error *service.Error `json:"error"`
}

func (h *Handler) transportError(e echo.Context, err error) error {
	svcErr := service.AsError(err)
	response := errorResponse{Error: svcErr}

	switch svcErr.Code {
	case service.ErrorCodeNotFound:
		return e.JSON(http.StatusNotFound, response)
	case service.ErrorCodeAlreadyMember:
		return e.JSON(http.StatusConflict, response)
	case service.ErrorCodeInvalidBody:
		return e.JSON(http.StatusBadRequest, response)
	case service.ErrorCodeUnauthorized:
		return e.JSON(http.StatusUnauthorized, response)
	case service.ErrorCodeLookupFailed:
		return e.JSON(http.StatusServiceUnavailable, response)
	default:
		return e.JSON(http.StatusInternalServerError, response)
	}
}
