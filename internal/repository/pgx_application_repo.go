package repository

import (
	"context"
	"time"

	"github.com/PrayatshuMisra/hacka-nexus/internal/db"
	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
)

type Application struct {
	ID          int64                   `db:"id"`
	ClubID      int64                   `db:"club_id"`
	UserID      int64                   `db:"user_id"`
	Position    string                  `db:"position"`
	Text        string                  `db:"application_text"`
	Status      model.ApplicationStatus `db:"status"`
	AppliedDate time.Time               `db:"applied_date"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *Application) error
}

type pgxApplicationRepository struct {
	pool db.Executor
}

func NewPgxApplicationRepository(pool db.Executor) ApplicationRepository {
	return &pgxApplicationRepository{pool: pool}
}

// Create inserts the application and sets a.ID. Duplicates are allowed.
func (p *pgxApplicationRepository) Create(ctx context.Context, a *Application) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("club_applications", "club_id", "user_id", "position", "application_text", "status", "applied_date"),
		im.Values(
			psql.Arg(a.ClubID),
			psql.Arg(a.UserID),
			psql.Arg(a.Position),
			psql.Arg(a.Text),
			psql.Arg(a.Status),
			psql.Arg(a.AppliedDate),
		),
		im.Returning("id"),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	return translateError(e.QueryRow(ctx, sql, args...).Scan(&a.ID))
}
