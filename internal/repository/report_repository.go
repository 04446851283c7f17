package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chart-signal/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

const createReportsTable = `
CREATE TABLE IF NOT EXISTS classification_reports (
    id              UUID        PRIMARY KEY,
    digest          TEXT        NOT NULL,
    recommendation  TEXT        NOT NULL,
    score           INTEGER     NOT NULL,
    results         JSONB       NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_classification_reports_digest_time
    ON classification_reports (digest, created_at DESC);

CREATE INDEX IF NOT EXISTS idx_classification_reports_created_at
    ON classification_reports (created_at DESC);
`

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ReportRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewReportRepository(pool PgxPool, tracer trace.Tracer) *ReportRepository {
	return &ReportRepository{pool: pool, tracer: tracer}
}

func (r *ReportRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "report-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createReportsTable)
	return err
}

func (r *ReportRepository) Insert(ctx context.Context, report domain.Report) error {
	_, span := r.tracer.Start(ctx, "report-repo.insert")
	defer span.End()

	results, err := json.Marshal(report.Results)
	if err != nil {
		return fmt.Errorf("encode report results: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO classification_reports (id, digest, recommendation, score, results, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		report.ID, report.Digest, string(report.Recommendation), report.Score, results, report.CreatedAt,
	)
	return err
}

// GetByDigest returns the newest report for an image digest, or nil when there
// is none.
func (r *ReportRepository) GetByDigest(ctx context.Context, digest string) (*domain.Report, error) {
	_, span := r.tracer.Start(ctx, "report-repo.get-by-digest")
	defer span.End()

	row := r.pool.QueryRow(ctx,
		`SELECT id::text, digest, recommendation, score, results, created_at
		 FROM classification_reports
		 WHERE digest = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		digest,
	)
	report, err := scanReport(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]domain.Report, error) {
	_, span := r.tracer.Start(ctx, "report-repo.list-recent")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT id::text, digest, recommendation, score, results, created_at
		 FROM classification_reports
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, rows.Err()
}

func (r *ReportRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	_, span := r.tracer.Start(ctx, "report-repo.delete-older-than")
	defer span.End()

	tag, err := r.pool.Exec(ctx, `DELETE FROM classification_reports WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*domain.Report, error) {
	var (
		report         domain.Report
		recommendation string
		results        []byte
		createdAt      time.Time
	)
	if err := row.Scan(&report.ID, &report.Digest, &recommendation, &report.Score, &results, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(results, &report.Results); err != nil {
		return nil, fmt.Errorf("decode report results: %w", err)
	}
	report.Recommendation = domain.Recommendation(recommendation)
	report.CreatedAt = createdAt.UTC()
	return &report, nil
}
