package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// timeLayout is fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Entry is one recorded search.
type Entry struct {
	ID        string
	Query     string
	Source    string // file the candidates came from
	Results   int
	Best      string // label of the best match, if any
	CreatedAt time.Time
}

// QueryCount is a query with how often it was searched.
type QueryCount struct {
	Query string
	Count int
	Last  time.Time
}

// Store persists search history in the searches table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore creates a new Store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Record saves e, assigning an ID and timestamp when they are missing.
// Blank queries are ignored.
func (s *Store) Record(e Entry) (Entry, error) {
	e.Query = strings.TrimSpace(e.Query)
	if e.Query == "" {
		return e, nil
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	_, err := s.db.Exec(
		`INSERT INTO searches (id, query, source, results, best, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Query, e.Source, e.Results, e.Best, e.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return e, fmt.Errorf("recording search: %w", err)
	}
	return e, nil
}

// Recent returns up to limit searches, newest first. limit <= 0 means all.
func (s *Store) Recent(limit int) ([]Entry, error) {
	q := `SELECT id, query, source, results, best, created_at FROM searches ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing searches: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Query, &e.Source, &e.Results, &e.Best, &created); err != nil {
			return nil, fmt.Errorf("scanning search: %w", err)
		}
		e.CreatedAt, _ = time.Parse(timeLayout, created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of recorded searches.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM searches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting searches: %w", err)
	}
	return n, nil
}

// Top returns the most frequent queries, case-insensitively grouped.
func (s *Store) Top(limit int) ([]QueryCount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT query, COUNT(*) AS n, MAX(created_at) AS last
		 FROM searches
		 GROUP BY lower(query)
		 ORDER BY n DESC, last DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking searches: %w", err)
	}
	defer rows.Close()

	var out []QueryCount
	for rows.Next() {
		var qc QueryCount
		var last string
		if err := rows.Scan(&qc.Query, &qc.Count, &last); err != nil {
			return nil, fmt.Errorf("scanning search count: %w", err)
		}
		qc.Last, _ = time.Parse(timeLayout, last)
		out = append(out, qc)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep searches and returns how many went.
func (s *Store) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.Exec(
		`DELETE FROM searches WHERE id NOT IN (
			SELECT id FROM searches ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning searches: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Clear deletes all history and returns how many searches were removed.
func (s *Store) Clear() (int, error) {
	res, err := s.db.Exec(`DELETE FROM searches`)
	if err != nil {
		return 0, fmt.Errorf("clearing searches: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
