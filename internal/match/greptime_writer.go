package match

import (
	"context"
	"errors"
	"log"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// ingestClient abstracts the GreptimeDB client for testing.
type ingestClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeWriter records match progress and benchmark samples in GreptimeDB,
// so long dataset runs can be watched and compared across machines.
type GreptimeWriter struct {
	client        ingestClient
	progressTable string
	benchTable    string
}

// NewGreptimeWriter connects to a GreptimeDB endpoint.
func NewGreptimeWriter(endpoint, database, progressTable, benchTable string) (*GreptimeWriter, error) {
	cfg := greptime.NewConfig(endpoint).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if progressTable == "" {
		progressTable = "selfplay_progress"
	}
	if benchTable == "" {
		benchTable = "selfplay_bench"
	}
	return &GreptimeWriter{
		client:        client,
		progressTable: progressTable,
		benchTable:    benchTable,
	}, nil
}

// Write inserts a single progress row.
func (w *GreptimeWriter) Write(row ProgressRow) error {
	tbl, err := table.New(w.progressTable)
	if err != nil {
		return err
	}
	if err := errors.Join(
		tbl.AddTagColumn("run_id", types.STRING),
		tbl.AddFieldColumn("game", types.INT64),
		tbl.AddFieldColumn("total", types.INT64),
		tbl.AddFieldColumn("white", types.STRING),
		tbl.AddFieldColumn("black", types.STRING),
		tbl.AddFieldColumn("result", types.STRING),
		tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND),
	); err != nil {
		return err
	}
	if err := tbl.AddRow(row.RunID, int64(row.Game), int64(row.Total), row.White, row.Black, row.Result, row.Timestamp); err != nil {
		return err
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeWriter] progress write failed: %v", err)
		return err
	}
	return nil
}

// WriteBench inserts a benchmark sample.
func (w *GreptimeWriter) WriteBench(s BenchSample) error {
	tbl, err := table.New(w.benchTable)
	if err != nil {
		return err
	}
	if err := errors.Join(
		tbl.AddTagColumn("run_id", types.STRING),
		tbl.AddFieldColumn("nps", types.INT64),
		tbl.AddFieldColumn("concurrency", types.INT64),
		tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND),
	); err != nil {
		return err
	}
	if err := tbl.AddRow(s.RunID, s.NPS, int64(s.Concurrency), s.Timestamp); err != nil {
		return err
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeWriter] bench write failed: %v", err)
		return err
	}
	return nil
}
