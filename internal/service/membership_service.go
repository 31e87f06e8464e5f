package service

import (
	"context"
	"time"

	"github.com/PrayatshuMisra/hacka-nexus/internal/db"
	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
	"github.com/PrayatshuMisra/hacka-nexus/internal/repository"
	"github.com/PrayatshuMisra/hacka-nexus/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const applicationPosition = "member"

// MembershipService handles joining, applying to and checking membership of clubs.
type MembershipService struct {
	tx db.Transactor

	members      repository.MemberRepository
	applications repository.ApplicationRepository
	clubs        repository.ClubRepository

	now func() time.Time
}

func NewMembershipService(tx db.Transactor) *MembershipService {
	return &MembershipService{
		tx:  tx,
		now: time.Now,
	}
}

// JoinClub adds the user as a member and bumps the club's member_count in one
// transaction. A second join for the same pair fails with ALREADY_MEMBER and writes nothing.
func (s *MembershipService) JoinClub(ctx context.Context, clubID, userID int64) (*model.Membership, error) {
	l := logger.FromContext(ctx).With(zap.Int64("club_id", clubID), zap.Int64("user_id", userID))
	l.Info("joining club")

	member := &repository.Member{
		ClubID:   clubID,
		UserID:   userID,
		Role:     model.MemberRoleMember,
		JoinedAt: s.now().UTC(),
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		err := s.members.InsertIfAbsent(txCtx, member)
		switch {
		case errors.Is(err, repository.ErrAlreadyExists):
			l.Warn("user is already a member")
			return NewError(ErrorCodeAlreadyMember, "Already a member of this club")
		case errors.Is(err, repository.ErrNotFound):
			return NewError(ErrorCodeNotFound, "club not found")
		case err != nil:
			l.Error("failed to insert club member", zap.Error(err))
			return WrapError(ErrorCodeUnspecified, "failed to add club member", err)
		}

		err = s.clubs.IncrementMemberCount(txCtx, clubID, 1)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return NewError(ErrorCodeNotFound, "club not found")
		case err != nil:
			l.Error("failed to update member count", zap.Error(err))
			return WrapError(ErrorCodeUnspecified, "failed to update member count", err)
		}

		return nil
	})
	if err != nil {
		return nil, AsError(err)
	}

	l.Debug("club joined", zap.Int64("member_id", member.ID))

	return toMembership(member), nil
}

// ApplyToClub records a pending application. Repeated applications are all kept.
func (s *MembershipService) ApplyToClub(ctx context.Context, clubID, userID int64, form *model.ApplicationForm) (*model.Application, error) {
	l := logger.FromContext(ctx).With(zap.Int64("club_id", clubID), zap.Int64("user_id", userID))
	l.Info("applying to club", zap.String("applicant_name", form.Name))

	app := &repository.Application{
		ClubID:      clubID,
		UserID:      userID,
		Position:    applicationPosition,
		Text:        form.Why,
		Status:      model.ApplicationStatusPending,
		AppliedDate: s.now().UTC(),
	}

	err := s.applications.Create(ctx, app)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, NewError(ErrorCodeNotFound, "club not found")
	case err != nil:
		l.Error("failed to create application", zap.Error(err))
		return nil, WrapError(ErrorCodeUnspecified, "failed to apply to club", err)
	}

	return &model.Application{
		ID:          app.ID,
		ClubID:      app.ClubID,
		UserID:      app.UserID,
		Position:    app.Position,
		Text:        app.Text,
		Status:      app.Status,
		AppliedDate: app.AppliedDate,
	}, nil
}

// CheckMembership tells "not a member" apart from a failed lookup. The returned
// check is never nil; on failure its status is MembershipUnknown.
func (s *MembershipService) CheckMembership(ctx context.Context, clubID, userID int64) (*model.MembershipCheck, error) {
	check := &model.MembershipCheck{ClubID: clubID, UserID: userID}

	_, err := s.members.Find(ctx, clubID, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		check.Status = model.MembershipNone
	case err != nil:
		check.Status = model.MembershipUnknown
		return check, WrapError(ErrorCodeLookupFailed, "failed to check membership", err)
	default:
		check.Status = model.MembershipMember
	}

	return check, nil
}

// IsMember reports false both when there is no membership and when the lookup
// fails. Use CheckMembership where an outage must be distinguishable.
func (s *MembershipService) IsMember(ctx context.Context, clubID, userID int64) bool {
	check, err := s.CheckMembership(ctx, clubID, userID)
	if err != nil {
		logger.FromContext(ctx).Warn("membership lookup failed, reporting not a member",
			zap.Int64("club_id", clubID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		return false
	}
	return check.Status == model.MembershipMember
}

func (s *MembershipService) ListMembers(ctx context.Context, clubID int64) ([]*model.Membership, error) {
	rows, err := s.members.ListByClub(ctx, clubID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list club members", zap.Int64("club_id", clubID), zap.Error(err))
		return nil, WrapError(ErrorCodeUnspecified, "failed to list club members", err)
	}

	members := make([]*model.Membership, 0, len(rows))
	for _, m := range rows {
		members = append(members, toMembership(m))
	}
	return members, nil
}

func (s *MembershipService) WithMemberRepo(r repository.MemberRepository) *MembershipService {
	s.members = r
	return s
}

func (s *MembershipService) WithApplicationRepo(r repository.ApplicationRepository) *MembershipService {
	s.applications = r
	return s
}

func (s *MembershipService) WithClubRepo(r repository.ClubRepository) *MembershipService {
	s.clubs = r
	return s
}

func toMembership(m *repository.Member) *model.Membership {
	return &model.Membership{
		ID:       m.ID,
		ClubID:   m.ClubID,
		UserID:   m.UserID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}
