package repository

import (
	"context"
	"time"

	"github.com/PrayatshuMisra/hacka-nexus/internal/db"
	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

type Event struct {
	ID                  int64             `db:"id"`
	ClubID              int64             `db:"club_id"`
	Title               string            `db:"title"`
	Description         string            `db:"description"`
	EventType           string            `db:"event_type"`
	Venue               string            `db:"venue"`
	StartDate           time.Time         `db:"start_date"`
	EndDate             time.Time         `db:"end_date"`
	MaxParticipants     int               `db:"max_participants"`
	CurrentParticipants int               `db:"current_participants"`
	Status              model.EventStatus `db:"status"`

	// Filled by ListUpcoming from the joined club row; nil when the club is gone.
	ClubName    *string `db:"club_name"`
	ClubLogoURL *string `db:"club_logo_url"`
}

type EventRepository interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, ev *Event) error
	ListUpcoming(ctx context.Context, since time.Time) ([]*Event, error)
}

type pgxEventRepository struct {
	pool db.Executor
}

func NewPgxEventRepository(pool db.Executor) EventRepository {
	return &pgxEventRepository{pool: pool}
}

func (p *pgxEventRepository) Count(ctx context.Context) (int64, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("count(*)"),
		sm.From("events"),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return 0, err
	}

	var n int64
	if err = e.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (p *pgxEventRepository) Create(ctx context.Context, ev *Event) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("events",
			"club_id", "title", "description", "event_type", "venue",
			"start_date", "end_date", "max_participants", "current_participants", "status",
		),
		im.Values(
			psql.Arg(ev.ClubID),
			psql.Arg(ev.Title),
			psql.Arg(ev.Description),
			psql.Arg(ev.EventType),
			psql.Arg(ev.Venue),
			psql.Arg(ev.StartDate),
			psql.Arg(ev.EndDate),
			psql.Arg(ev.MaxParticipants),
			psql.Arg(ev.CurrentParticipants),
			psql.Arg(ev.Status),
		),
		im.Returning("id"),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	return translateError(e.QueryRow(ctx, sql, args...).Scan(&ev.ID))
}

func (p *pgxEventRepository) ListUpcoming(ctx context.Context, since time.Time) ([]*Event, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns(
			"events.id", "events.club_id", "events.title", "events.description", "events.event_type",
			"events.venue", "events.start_date", "events.end_date", "events.max_participants",
			"events.current_participants", "events.status", "clubs.name", "clubs.logo_url",
		),
		sm.From("events"),
		sm.LeftJoin("clubs").On(psql.Quote("events", "club_id").EQ(psql.Quote("clubs", "id"))),
		sm.Where(psql.Quote("events", "start_date").GTE(psql.Arg(since))),
		sm.OrderBy(psql.Quote("events", "start_date")),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := e.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Event, error) {
		ev := &Event{}
		if err := row.Scan(
			&ev.ID,
			&ev.ClubID,
			&ev.Title,
			&ev.Description,
			&ev.EventType,
			&ev.Venue,
			&ev.StartDate,
			&ev.EndDate,
			&ev.MaxParticipants,
			&ev.CurrentParticipants,
			&ev.Status,
			&ev.ClubName,
			&ev.ClubLogoURL,
		); err != nil {
			return nil, err
		}
		return ev, nil
	})
}
