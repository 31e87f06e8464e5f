package api

import (
	"net/http"
	"strconv"

	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
	"github.com/PrayatshuMisra/hacka-nexus/internal/service"
	"github.com/PrayatshuMisra/hacka-nexus/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (h *Handler) JoinClub(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	clubID, userID, err := h.clubAndUser(e)
	if err != nil {
		return h.transportError(e, err)
	}

	l.Info("joining club", zap.Int64("club_id", clubID), zap.Int64("user_id", userID))

	membership, err := h.memberships.JoinClub(e.Request().Context(), clubID, userID)
	if err != nil {
		l.Error("failed to join club", zap.Int64("club_id", clubID), zap.Int64("user_id", userID), zap.Error(err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusCreated, membership)
}

func (h *Handler) ApplyToClub(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	clubID, userID, err := h.clubAndUser(e)
	if err != nil {
		return h.transportError(e, err)
	}

	form := &model.ApplicationForm{}
	if err = ProcessRequest(e, form, bindStep[model.ApplicationForm], validateStep[model.ApplicationForm]); err != nil {
		l.Error("invalid request", zap.Error(err))
		return h.transportError(e, service.NewError(service.ErrorCodeInvalidBody, err.Error()))
	}

	l.Info("applying to club", zap.Int64("club_id", clubID), zap.Int64("user_id", userID))

	app, err := h.memberships.ApplyToClub(e.Request().Context(), clubID, userID, form)
	if err != nil {
		l.Error("failed to apply to club", zap.Int64("club_id", clubID), zap.Int64("user_id", userID), zap.Error(err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusCreated, app)
}

func (h *Handler) GetMembership(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	clubID, userID, err := h.clubAndUser(e)
	if err != nil {
		return h.transportError(e, err)
	}

	check, err := h.memberships.CheckMembership(e.Request().Context(), clubID, userID)
	if err != nil {
		l.Error("membership lookup failed", zap.Int64("club_id", clubID), zap.Int64("user_id", userID), zap.Error(err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, check)
}

func (h *Handler) ListMembers(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	clubID, err := parseClubID(e)
	if err != nil {
		return h.transportError(e, err)
	}

	members, err := h.memberships.ListMembers(e.Request().Context(), clubID)
	if err != nil {
		l.Error("failed to list members", zap.Int64("club_id", clubID), zap.Error(err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, members)
}

func (h *Handler) clubAndUser(e echo.Context) (int64, int64, error) {
	clubID, err := parseClubID(e)
	if err != nil {
		return 0, 0, err
	}

	userID, ok := userIDFromContext(e)
	if !ok {
		return 0, 0, service.NewError(service.ErrorCodeUnauthorized, "missing user")
	}

	return clubID, userID, nil
}

func parseClubID(e echo.Context) (int64, error) {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.NewError(service.ErrorCodeInvalidBody, "invalid club id")
	}
	return id, nil
}
