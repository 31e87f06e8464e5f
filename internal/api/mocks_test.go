package api

import (
	"context"

	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockTaskDispatcher struct {
	mock.Mock
}

func (m *MockTaskDispatcher) Dispatch(ctx context.Context, req *model.TaskRequest) (any, error) {
	args := m.Called(ctx, req)
	return args.Get(0), args.Error(1)
}

type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) JoinClub(ctx context.Context, clubID, userID int64) (*model.Membership, error) {
	args := m.Called(ctx, clubID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *MockMembershipService) ApplyToClub(ctx context.Context, clubID, userID int64, form *model.ApplicationForm) (*model.Application, error) {
	args := m.Called(ctx, clubID, userID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockMembershipService) CheckMembership(ctx context.Context, clubID, userID int64) (*model.MembershipCheck, error) {
	args := m.Called(ctx, clubID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MembershipCheck), args.Error(1)
}

func (m *MockMembershipService) ListMembers(ctx context.Context, clubID int64) ([]*model.Membership, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Membership), args.Error(1)
}
