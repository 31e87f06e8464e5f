// Package diagnostics holds the one-shot store connectivity check run by `clubhub check`.
package diagnostics

import (
	"context"
	"time"

	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
	"github.com/PrayatshuMisra/hacka-nexus/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Report summarises one run.
type Report struct {
	EventCount    int64
	SeededClubID  int64
	SeededEventID int64
	Upcoming      []*model.Event
}

type Checker struct {
	db     Pinger
	clubs  repository.ClubRepository
	events repository.EventRepository

	logger *zap.Logger
	now    func() time.Time
}

func NewChecker(db Pinger, clubs repository.ClubRepository, events repository.EventRepository, logger *zap.Logger) *Checker {
	return &Checker{
		db:     db,
		clubs:  clubs,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// Run pings the store, seeds a test club and event when there are no events,
// and lists upcoming events with their club.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	c.logger.Info("testing database connection")

	if err := c.db.Ping(ctx); err != nil {
		return nil, errors.Wrap(err, "ping")
	}

	count, err := c.events.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "count events")
	}

	c.logger.Info("connected", zap.Int64("events", count))

	report := &Report{EventCount: count}

	if count == 0 {
		c.logger.Info("no events found, inserting test event")
		if err = c.seed(ctx, report); err != nil {
			return nil, err
		}
	}

	upcoming, err := c.events.ListUpcoming(ctx, c.now().UTC())
	if err != nil {
		return nil, errors.Wrap(err, "list upcoming events")
	}

	report.Upcoming = make([]*model.Event, 0, len(upcoming))
	for _, ev := range upcoming {
		report.Upcoming = append(report.Upcoming, toEvent(ev))
	}

	c.logger.Info("upcoming events", zap.Int("count", len(report.Upcoming)))

	return report, nil
}

func (c *Checker) seed(ctx context.Context, report *Report) error {
	club, err := c.clubs.First(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		club = testClub()
		if err = c.clubs.Create(ctx, club); err != nil {
			return errors.Wrap(err, "create test club")
		}
		c.logger.Info("created test club", zap.Int64("club_id", club.ID))
	case err != nil:
		return errors.Wrap(err, "check clubs")
	}
	report.SeededClubID = club.ID

	now := c.now().UTC()
	ev := &repository.Event{
		ClubID:          club.ID,
		Title:           "Test Event",
		Description:     "A test event description",
		EventType:       "Workshop",
		Venue:           "Main Hall",
		StartDate:       now.Add(7 * 24 * time.Hour),
		EndDate:         now.Add(8 * 24 * time.Hour),
		MaxParticipants: 100,
		Status:          model.EventStatusApproved,
	}
	if err = c.events.Create(ctx, ev); err != nil {
		// Upcoming events are still listed.
		c.logger.Warn("failed to create test event", zap.Int64("club_id", club.ID), zap.Error(err))
		return nil
	}
	report.SeededEventID = ev.ID

	c.logger.Info("test event created", zap.Int64("event_id", ev.ID))
	return nil
}

func testClub() *repository.Club {
	return &repository.Club{
		Name:           "Test Club",
		Slug:           "test-club",
		Category:       "Technical",
		Description:    "A test club",
		Email:          "test@club.com",
		FacultyAdvisor: "Dr. Test",
		IsActive:       true,
		Rating:         4.5,
	}
}

func toEvent(ev *repository.Event) *model.Event {
	out := &model.Event{
		ID:                  ev.ID,
		ClubID:              ev.ClubID,
		Title:               ev.Title,
		Description:         ev.Description,
		EventType:           ev.EventType,
		Venue:               ev.Venue,
		StartDate:           ev.StartDate,
		EndDate:             ev.EndDate,
		MaxParticipants:     ev.MaxParticipants,
		CurrentParticipants: ev.CurrentParticipants,
		Status:              ev.Status,
	}
	if ev.ClubName != nil {
		out.Club = &model.ClubSummary{ID: ev.ClubID, Name: *ev.ClubName, LogoURL: ev.ClubLogoURL}
	}
	return out
}
