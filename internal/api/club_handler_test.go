package api

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/PrayatshuMisra/hacka-nexus/internal/auth"
	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
	"github.com/PrayatshuMisra/hacka-nexus/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testUserID int64 = 7

func newClubServer(t *testing.T, s MembershipService) (*echo.Echo, map[string]string) {
	t.Helper()

	signer, err := auth.NewSigner("test-secret")
	require.NoError(t, err)

	token, err := signer.GenerateToken(auth.TokenTypeUser, testUserID, time.Hour)
	require.NoError(t, err)

	e := echo.New()
	NewHandler(zap.NewNop()).
		WithTaskDispatcher(new(MockTaskDispatcher)).
		WithMembershipService(s).
		WithSigner(signer).
		RegisterRoutes(e)

	return e, map[string]string{echo.HeaderAuthorization: "Bearer " + token}
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok, "error body expected, got %v", body)
	return errBody["code"].(string)
}

func TestHandler_ClubRoutesRequireToken(t *testing.T) {
	e, _ := newClubServer(t, new(MockMembershipService))

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{name: "no header", headers: nil},
		{name: "not bearer", headers: map[string]string{echo.HeaderAuthorization: "Basic abc"}},
		{name: "garbage token", headers: map[string]string{echo.HeaderAuthorization: "Bearer nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/clubs/1/join", "", tt.headers)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, string(service.ErrorCodeUnauthorized), errorCode(t, decodeBody(t, rec)))
		})
	}
}

func TestHandler_JoinClub(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMocks     func(*MockMembershipService)
		expectedStatus int
		expectedCode   service.ErrorCode
	}{
		{
			name: "success",
			path: "/clubs/1/join",
			setupMocks: func(s *MockMembershipService) {
				s.On("JoinClub", mock.Anything, int64(1), testUserID).Return(&model.Membership{
					ID: 3, ClubID: 1, UserID: testUserID, Role: model.MemberRoleMember,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "already a member",
			path: "/clubs/1/join",
			setupMocks: func(s *MockMembershipService) {
				s.On("JoinClub", mock.Anything, int64(1), testUserID).
					Return(nil, service.NewError(service.ErrorCodeAlreadyMember, "Already a member of this club"))
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   service.ErrorCodeAlreadyMember,
		},
		{
			name: "club not found",
			path: "/clubs/99/join",
			setupMocks: func(s *MockMembershipService) {
				s.On("JoinClub", mock.Anything, int64(99), testUserID).
					Return(nil, service.NewError(service.ErrorCodeNotFound, "club not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   service.ErrorCodeNotFound,
		},
		{
			name: "store failure",
			path: "/clubs/1/join",
			setupMocks: func(s *MockMembershipService) {
				s.On("JoinClub", mock.Anything, int64(1), testUserID).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   service.ErrorCodeUnspecified,
		},
		{
			name:           "invalid club id",
			path:           "/clubs/abc/join",
			setupMocks:     func(s *MockMembershipService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrorCodeInvalidBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := new(MockMembershipService)
			tt.setupMocks(s)
			e, headers := newClubServer(t, s)

			rec := doJSON(e, http.MethodPost, tt.path, "", headers)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, string(tt.expectedCode), errorCode(t, decodeBody(t, rec)))
			}
			s.AssertExpectations(t)
		})
	}
}

func TestHandler_ApplyToClub(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*MockMembershipService)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"name":"Ada","why":"robots"}`,
			setupMocks: func(s *MockMembershipService) {
				s.On("ApplyToClub", mock.Anything, int64(2), testUserID, &model.ApplicationForm{Name: "Ada", Why: "robots"}).
					Return(&model.Application{ID: 1, ClubID: 2, UserID: testUserID, Status: model.ApplicationStatusPending}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing why",
			body:           `{"name":"Ada"}`,
			setupMocks:     func(s *MockMembershipService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{"name":`,
			setupMocks:     func(s *MockMembershipService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := new(MockMembershipService)
			tt.setupMocks(s)
			e, headers := newClubServer(t, s)

			rec := doJSON(e, http.MethodPost, "/clubs/2/apply", tt.body, headers)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			s.AssertExpectations(t)
		})
	}
}

func TestHandler_GetMembership(t *testing.T) {
	tests := []struct {
		name           string
		check          *model.MembershipCheck
		err            error
		expectedStatus int
		expectedState  string
	}{
		{
			name:           "member",
			check:          &model.MembershipCheck{ClubID: 1, UserID: testUserID, Status: model.MembershipMember},
			expectedStatus: http.StatusOK,
			expectedState:  string(model.MembershipMember),
		},
		{
			name:           "not a member",
			check:          &model.MembershipCheck{ClubID: 1, UserID: testUserID, Status: model.MembershipNone},
			expectedStatus: http.StatusOK,
			expectedState:  string(model.MembershipNone),
		},
		{
			name:           "lookup failed",
			check:          &model.MembershipCheck{ClubID: 1, UserID: testUserID, Status: model.MembershipUnknown},
			err:            service.NewError(service.ErrorCodeLookupFailed, "failed to check membership"),
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := new(MockMembershipService)
			s.On("CheckMembership", mock.Anything, int64(1), testUserID).Return(tt.check, tt.err)
			e, headers := newClubServer(t, s)

			rec := doJSON(e, http.MethodGet, "/clubs/1/membership", "", headers)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedState != "" {
				assert.Equal(t, tt.expectedState, decodeBody(t, rec)["status"])
			}
		})
	}
}

func TestHandler_ListMembers(t *testing.T) {
	s := new(MockMembershipService)
	s.On("ListMembers", mock.Anything, int64(4)).Return([]*model.Membership{
		{ID: 1, ClubID: 4, UserID: 10},
		{ID: 2, ClubID: 4, UserID: 11},
	}, nil)
	e, headers := newClubServer(t, s)

	rec := doJSON(e, http.MethodGet, "/clubs/4/members", "", headers)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":11`)
}

func TestHandler_ClubRoutesDisabledWithoutSigner(t *testing.T) {
	e := echo.New()
	NewHandler(zap.NewNop()).WithTaskDispatcher(new(MockTaskDispatcher)).RegisterRoutes(e)

	rec := doJSON(e, http.MethodPost, "/clubs/1/join", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
