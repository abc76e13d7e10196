// Package store persists ticket results to PostgreSQL so the KPI and
// dashboard consumers can query them. The schema uses JSONB and a primary
// key, so databases that only speak the Postgres wire protocol may reject it.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refset/ticketsim/internal/sim"
)

var columns = []string{
	"run_id",
	"ticket_id",
	"variant",
	"profile",
	"is_late",
	"current_stress",
	"response_words",
	"num_documents_consulted",
	"total_time_min",
	"total_cost_eur",
	"total_errors",
	"total_hallucinations",
	"avg_doc_complexity",
	"time_write_response_min",
	"documents_details",
	"recorded_at",
}

type Client struct {
	pool  *pgxpool.Pool
	table string
}

func NewClient(pool *pgxpool.Pool, table string) *Client {
	return &Client{pool: pool, table: table}
}

func NewClientFromConnString(ctx context.Context, connString, table string) (*Client, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to store: %w", err)
	}
	return &Client{pool: pool, table: table}, nil
}

func (c *Client) Name() string { return "store" }

func (c *Client) Close() error {
	if c.pool != nil {
		c.pool.Close()
	}
	return nil
}

// EnsureSchema creates the results table if it does not exist.
func (c *Client) EnsureSchema(ctx context.Context) error {
	if _, err := c.pool.Exec(ctx, createTableSQL(c.ident())); err != nil {
		return fmt.Errorf("create %s: %w", c.table, err)
	}
	return nil
}

// Write inserts both collections of the batch in a single round trip.
func (c *Client) Write(ctx context.Context, b *sim.Batch) error {
	if c.table == "" {
		return fmt.Errorf("table name required")
	}
	if err := c.EnsureSchema(ctx); err != nil {
		return err
	}

	sql := insertSQL(c.ident())
	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, records := range [][]sim.TicketResult{b.Human, b.AI} {
		for _, rec := range records {
			args, err := rowArgs(b.RunID, rec, now)
			if err != nil {
				return err
			}
			batch.Queue(sql, args...)
		}
	}

	results := c.pool.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("save to store: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("save to store: %w", err)
	}

	slog.Info("saved results to store",
		slog.String("run_id", b.RunID),
		slog.String("table", c.table),
		slog.Int("rows", batch.Len()))
	return nil
}

func (c *Client) ident() string {
	return pgx.Identifier(strings.Split(c.table, ".")).Sanitize()
}

func createTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	run_id TEXT NOT NULL,
	ticket_id TEXT NOT NULL,
	variant TEXT NOT NULL,
	profile TEXT NOT NULL,
	is_late BOOLEAN NOT NULL,
	current_stress DOUBLE PRECISION NOT NULL,
	response_words INTEGER NOT NULL,
	num_documents_consulted INTEGER NOT NULL,
	total_time_min DOUBLE PRECISION NOT NULL,
	total_cost_eur DOUBLE PRECISION NOT NULL,
	total_errors INTEGER NOT NULL,
	total_hallucinations INTEGER,
	avg_doc_complexity DOUBLE PRECISION NOT NULL,
	time_write_response_min DOUBLE PRECISION NOT NULL,
	documents_details JSONB NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (run_id, variant, ticket_id)
)`, table)
}

func insertSQL(table string) string {
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if col == "documents_details" {
			placeholders[i] += "::jsonb"
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

// rowArgs lays out one record in column order.
func rowArgs(runID string, rec sim.TicketResult, recordedAt time.Time) ([]any, error) {
	details := rec.DocumentsDetails
	if details == nil {
		details = []sim.DocumentVisit{}
	}
	docs, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("encode documents of %s: %w", rec.TicketID, err)
	}
	return []any{
		runID,
		rec.TicketID,
		rec.Variant,
		rec.Profile,
		rec.IsLate,
		rec.CurrentStress,
		rec.ResponseWords,
		rec.NumDocumentsConsulted,
		rec.TotalTimeMin,
		rec.TotalCostEUR,
		rec.TotalErrors,
		rec.TotalHallucinations,
		rec.AvgDocComplexity,
		rec.TimeWriteResponseMin,
		string(docs),
		recordedAt,
	}, nil
}
