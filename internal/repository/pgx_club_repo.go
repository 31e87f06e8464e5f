package repository

import (
	"context"

	"github.com/PrayatshuMisra/hacka-nexus/internal/db"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
)

type Club struct {
	ID             int64   `db:"id"`
	Name           string  `db:"name"`
	Slug           string  `db:"slug"`
	Category       string  `db:"category"`
	Description    string  `db:"description"`
	Email          string  `db:"email"`
	FacultyAdvisor string  `db:"faculty_advisor"`
	LogoURL        *string `db:"logo_url"`
	IsActive       bool    `db:"is_active"`
	MemberCount    int     `db:"member_count"`
	Rating         float64 `db:"rating"`
	TotalEvents    int     `db:"total_events"`
}

type ClubRepository interface {
	Create(ctx context.Context, club *Club) error
	First(ctx context.Context) (*Club, error)
	// IncrementMemberCount adds delta to member_count in a single statement.
	IncrementMemberCount(ctx context.Context, clubID int64, delta int) error
}

type pgxClubRepository struct {
	pool db.Executor
}

func NewPgxClubRepository(pool db.Executor) ClubRepository {
	return &pgxClubRepository{pool: pool}
}

func (p *pgxClubRepository) Create(ctx context.Context, club *Club) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("clubs",
			"name", "slug", "category", "description", "email", "faculty_advisor",
			"logo_url", "is_active", "member_count", "rating", "total_events",
		),
		im.Values(
			psql.Arg(club.Name),
			psql.Arg(club.Slug),
			psql.Arg(club.Category),
			psql.Arg(club.Description),
			psql.Arg(club.Email),
			psql.Arg(club.FacultyAdvisor),
			psql.Arg(club.LogoURL),
			psql.Arg(club.IsActive),
			psql.Arg(club.MemberCount),
			psql.Arg(club.Rating),
			psql.Arg(club.TotalEvents),
		),
		im.Returning("id"),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	return translateError(e.QueryRow(ctx, sql, args...).Scan(&club.ID))
}

func (p *pgxClubRepository) First(ctx context.Context) (*Club, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns(
			"id", "name", "slug", "category", "description", "email", "faculty_advisor",
			"logo_url", "is_active", "member_count", "rating", "total_events",
		),
		sm.From("clubs"),
		sm.OrderBy(psql.Quote("id")),
		sm.Limit(1),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	c := &Club{}
	if err = e.QueryRow(ctx, sql, args...).Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&c.Category,
		&c.Description,
		&c.Email,
		&c.FacultyAdvisor,
		&c.LogoURL,
		&c.IsActive,
		&c.MemberCount,
		&c.Rating,
		&c.TotalEvents,
	); err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

func (p *pgxClubRepository) IncrementMemberCount(ctx context.Context, clubID int64, delta int) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Update(
		um.Table("clubs"),
		um.SetCol("member_count").To(psql.Raw("member_count + ?", delta)),
		um.Where(psql.Quote("id").EQ(psql.Arg(clubID))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	tag, err := e.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
