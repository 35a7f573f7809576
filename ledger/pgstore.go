package ledger

import (
	"context"
	"embed"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema embed.FS

var columns = []string{"idx", "initials", "score", "played_at", "seq", "prev_hash", "hash"}

// PGStore keeps the table in PostgreSQL.
type PGStore struct{ pool *pgxpool.Pool }

func OpenPG(ctx context.Context, dsn string) (*PGStore, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, err
	}
	return &PGStore{pool: p}, nil
}

func (s *PGStore) Close() { s.pool.Close() }

// Migrate creates the high_scores table if it is missing.
func (s *PGStore) Migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, string(sqlBytes))
	return err
}

func (s *PGStore) Load(ctx context.Context) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT idx, initials, score, played_at, seq, prev_hash, hash
		  FROM high_scores
		 ORDER BY idx
	`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		err := row.Scan(&e.Index, &e.Initials, &e.Score, &e.Date, &e.Seq, &e.PrevHash, &e.Hash)
		e.Date = e.Date.UTC()
		return e, err
	})
}

// Save replaces the stored table in one transaction.
func (s *PGStore) Save(ctx context.Context, entries []Entry) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM high_scores`); err != nil {
			return err
		}
		rows := make([][]any, len(entries))
		for i, e := range entries {
			rows[i] = []any{e.Index, e.Initials, e.Score, e.Date, e.Seq, e.PrevHash, e.Hash}
		}
		_, err := tx.CopyFrom(ctx, pgx.Identifier{"high_scores"}, columns, pgx.CopyFromRows(rows))
		return err
	})
}
