package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/PrayatshuMisra/hacka-nexus/internal/auth"
	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerMiddleware_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	signer, err := auth.NewSigner("test-secret")
	require.NoError(t, err)
	token, err := signer.GenerateToken(auth.TokenTypeUser, testUserID, time.Hour)
	require.NoError(t, err)

	s := new(MockMembershipService)
	s.On("CheckMembership", mock.Anything, int64(4), testUserID).Return(&model.MembershipCheck{
		ClubID: 4, UserID: testUserID, Status: model.MembershipMember,
	}, nil)

	e := echo.New()
	NewHandler(zap.New(core)).
		WithTaskDispatcher(new(MockTaskDispatcher)).
		WithMembershipService(s).
		WithSigner(signer).
		RegisterRoutes(e)

	rec := doJSON(e, http.MethodGet, "/clubs/4/membership", "", map[string]string{
		echo.HeaderAuthorization: "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "/clubs/:id/membership", fields["route"])
	assert.Equal(t, testUserID, fields["user_id"])
	assert.Equal(t, "4", fields["club_id"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestZapLoggerMiddleware_AnonymousRoute(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	e := echo.New()
	NewHandler(zap.New(core)).WithTaskDispatcher(new(MockTaskDispatcher)).RegisterRoutes(e)

	rec := doJSON(e, http.MethodGet, "/api/runanywhere", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/runanywhere", fields["route"])
	assert.NotContains(t, fields, "user_id")
	assert.NotContains(t, fields, "club_id")
}
