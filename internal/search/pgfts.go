package search

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// PgFTS implements Searcher using PostgreSQL full-text search as a fallback.
type PgFTS struct {
	db *sql.DB
}

// NewPgFTS creates a PostgreSQL FTS searcher.
func NewPgFTS(db *sql.DB) *PgFTS {
	return &PgFTS{db: db}
}

// Healthy always returns true; if Postgres is down, the whole app is down.
func (p *PgFTS) Healthy() bool {
	return true
}

// Search runs plainto_tsquery over the history table with ts_headline
// snippets, ranked by ts_rank.
func (p *PgFTS) Search(q Query) ([]Result, int, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, 0, nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const query = `
		SELECT h.id, h.label, h.operation,
			ts_headline('english', left(h.content, 4096), plainto_tsquery('english', $1), 'MaxFragments=1,MaxWords=30') AS snippet,
			COUNT(*) OVER() AS total
		FROM history_records h
		WHERE h.user_id = $2 AND h.fts @@ plainto_tsquery('english', $1)
		ORDER BY ts_rank(h.fts, plainto_tsquery('english', $1)) DESC, h.created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := p.db.QueryContext(ctx, query, q.Text, q.UserID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgfts search: %w", err)
	}
	defer rows.Close()

	var results []Result
	total := 0
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ID, &r.Label, &r.Operation, &r.Snippet, &total); err != nil {
			return nil, 0, fmt.Errorf("pgfts scan: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgfts rows: %w", err)
	}
	return results, total, nil
}
