package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"chart-signal/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = f.values[i].(string)
		case *int:
			*p = f.values[i].(int)
		case *[]byte:
			*p = f.values[i].([]byte)
		case *time.Time:
			*p = f.values[i].(time.Time)
		}
	}
	return nil
}

type fakePool struct {
	execSQL  string
	execArgs []any
	row      pgx.Row
	tag      pgconn.CommandTag
}

func (f *fakePool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = sql
	f.execArgs = args
	return f.tag, nil
}

func (f *fakePool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return f.row
}

func sampleResults(t *testing.T) []byte {
	t.Helper()
	raw, err := json.Marshal([]domain.ModelResult{
		{Slot: 1, ModelID: "chart_patterns_1", Label: "Hammer", Probabilities: map[string]float64{"Hammer": 0.9}},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return raw
}

func TestScanReport(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	report, err := scanReport(fakeRow{values: []any{"id-1", "abc", "Buy", 1, sampleResults(t), created}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.ID != "id-1" || report.Digest != "abc" || report.Recommendation != domain.RecommendationBuy || report.Score != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Results) != 1 || report.Results[0].Label != "Hammer" {
		t.Fatalf("unexpected results: %+v", report.Results)
	}
	if report.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", report.CreatedAt)
	}
}

func TestScanReportBadJSON(t *testing.T) {
	_, err := scanReport(fakeRow{values: []any{"id-1", "abc", "Buy", 1, []byte("{"), time.Now()}})
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestGetByDigestNoRows(t *testing.T) {
	repo := NewReportRepository(&fakePool{row: fakeRow{err: pgx.ErrNoRows}}, testTracer)
	report, err := repo.GetByDigest(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report != nil {
		t.Fatalf("expected nil report, got %+v", report)
	}
}

func TestInsertEncodesResults(t *testing.T) {
	pool := &fakePool{}
	repo := NewReportRepository(pool, testTracer)
	report := domain.Report{
		ID:             "id-2",
		Digest:         "def",
		Results:        []domain.ModelResult{{Slot: 4, ModelID: "m4", Label: "Sell"}},
		Score:          -1,
		Recommendation: domain.RecommendationSell,
		CreatedAt:      time.Now().UTC(),
	}
	if err := repo.Insert(context.Background(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pool.execArgs) != 6 {
		t.Fatalf("expected 6 args, got %d", len(pool.execArgs))
	}
	if pool.execArgs[2] != "Sell" {
		t.Fatalf("expected recommendation arg, got %v", pool.execArgs[2])
	}
	var decoded []domain.ModelResult
	if err := json.Unmarshal(pool.execArgs[4].([]byte), &decoded); err != nil || decoded[0].Label != "Sell" {
		t.Fatalf("unexpected results arg: %v %+v", err, decoded)
	}
}

func TestDeleteOlderThan(t *testing.T) {
	pool := &fakePool{tag: pgconn.NewCommandTag("DELETE 3")}
	repo := NewReportRepository(pool, testTracer)
	n, err := repo.DeleteOlderThan(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 rows, got %d", n)
	}
}
