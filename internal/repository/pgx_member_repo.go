package repository

import (
	"context"
	"time"

	"github.com/PrayatshuMisra/hacka-nexus/internal/db"
	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

type Member struct {
	ID       int64            `db:"id"`
	ClubID   int64            `db:"club_id"`
	UserID   int64            `db:"user_id"`
	Role     model.MemberRole `db:"role_in_club"`
	JoinedAt time.Time        `db:"joined_at"`
}

type MemberRepository interface {
	// InsertIfAbsent inserts the member unless (club_id, user_id) already exists,
	// in which case it returns ErrAlreadyExists without writing.
	InsertIfAbsent(ctx context.Context, m *Member) error
	Find(ctx context.Context, clubID, userID int64) (*Member, error)
	ListByClub(ctx context.Context, clubID int64) ([]*Member, error)
}

type pgxMemberRepository struct {
	pool db.Executor
}

func NewPgxMemberRepository(pool db.Executor) MemberRepository {
	return &pgxMemberRepository{pool: pool}
}

func (p *pgxMemberRepository) InsertIfAbsent(ctx context.Context, m *Member) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("club_members", "club_id", "user_id", "role_in_club", "joined_at"),
		im.Values(psql.Arg(m.ClubID), psql.Arg(m.UserID), psql.Arg(m.Role), psql.Arg(m.JoinedAt)),
		im.OnConflict(psql.Quote("club_id"), psql.Quote("user_id")).DoNothing(),
		im.Returning("id", "joined_at"),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	err = e.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.JoinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// ON CONFLICT DO NOTHING returns no row for an existing pair.
		return ErrAlreadyExists
	}
	return translateError(err)
}

func (p *pgxMemberRepository) Find(ctx context.Context, clubID, userID int64) (*Member, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "club_id", "user_id", "role_in_club", "joined_at"),
		sm.From("club_members"),
		sm.Where(
			psql.Quote("club_id").EQ(psql.Arg(clubID)).
				And(psql.Quote("user_id").EQ(psql.Arg(userID))),
		),
		sm.Limit(1),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	m := &Member{}
	if err = e.QueryRow(ctx, sql, args...).Scan(
		&m.ID,
		&m.ClubID,
		&m.UserID,
		&m.Role,
		&m.JoinedAt,
	); err != nil {
		return nil, translateError(err)
	}
	return m, nil
}

func (p *pgxMemberRepository) ListByClub(ctx context.Context, clubID int64) ([]*Member, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "club_id", "user_id", "role_in_club", "joined_at"),
		sm.From("club_members"),
		sm.Where(psql.Quote("club_id").EQ(psql.Arg(clubID))),
		sm.OrderBy(psql.Quote("joined_at")),
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

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Member, error) {
		m := &Member{}
		if err := row.Scan(&m.ID, &m.ClubID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		return m, nil
	})
}
