// Package sqlite archives triage outcomes so past decisions can be
// inspected after the fact (the `history` command) without re-fetching or
// re-classifying anything.
package sqlite

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"triagebot/internal/domain"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS triage_history (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		issue_number     INTEGER NOT NULL,
		title            TEXT NOT NULL,
		author           TEXT DEFAULT '',
		categories       TEXT DEFAULT '',
		primary_category TEXT NOT NULL,
		severity         TEXT NOT NULL,
		complexity       TEXT NOT NULL,
		timeline         TEXT DEFAULT '',
		processed_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_th_issue ON triage_history(issue_number);
	CREATE INDEX IF NOT EXISTS idx_th_date ON triage_history(processed_at);
	`
	if _, err = db.Exec(schema); err != nil {
		return nil, err
	}

	return db, nil
}

// TriageRecord is one archived triage decision.
type TriageRecord struct {
	ID          int64
	IssueNumber int64
	Title       string
	Author      string
	Categories  string // comma-separated
	Primary     string
	Severity    string
	Complexity  string
	Timeline    string
	ProcessedAt time.Time
}

// NewTriageRecord flattens an issue and its triage result into a record.
func NewTriageRecord(issue domain.Issue, triage domain.TriageResult) TriageRecord {
	cats := make([]string, len(triage.Categories))
	for i, c := range triage.Categories {
		cats[i] = string(c)
	}
	return TriageRecord{
		IssueNumber: issue.Number,
		Title:       issue.Title,
		Author:      issue.Author,
		Categories:  strings.Join(cats, ","),
		Primary:     string(triage.Primary),
		Severity:    string(triage.Severity),
		Complexity:  string(triage.Complexity),
		Timeline:    triage.Timeline,
	}
}

// Archive adapts the database to the poller's Archiver interface.
type Archive struct {
	db *sql.DB
}

func NewArchive(db *sql.DB) *Archive {
	return &Archive{db: db}
}

func (a *Archive) ArchiveTriage(issue domain.Issue, triage domain.TriageResult) error {
	return InsertTriageRecord(a.db, NewTriageRecord(issue, triage))
}

func InsertTriageRecord(db *sql.DB, r TriageRecord) error {
	_, err := db.Exec(
		`INSERT INTO triage_history (issue_number, title, author, categories, primary_category, severity, complexity, timeline)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.IssueNumber, r.Title, r.Author, r.Categories, r.Primary, r.Severity, r.Complexity, r.Timeline,
	)
	return err
}

func GetRecentTriages(db *sql.DB, since time.Time, limit int) ([]TriageRecord, error) {
	rows, err := db.Query(
		`SELECT id, issue_number, title, author, categories, primary_category, severity, complexity, timeline, processed_at
		 FROM triage_history
		 WHERE processed_at >= ?
		 ORDER BY processed_at DESC, id DESC
		 LIMIT ?`,
		since, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TriageRecord
	for rows.Next() {
		var r TriageRecord
		if err := rows.Scan(
			&r.ID, &r.IssueNumber, &r.Title, &r.Author, &r.Categories,
			&r.Primary, &r.Severity, &r.Complexity, &r.Timeline, &r.ProcessedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// TriageStats summarizes the archive since a point in time.
type TriageStats struct {
	Total         int
	CriticalCount int
	HighCount     int
	MediumCount   int
	LowCount      int
}

func GetTriageStats(db *sql.DB, since time.Time) (TriageStats, error) {
	var s TriageStats
	err := db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN severity = 'critical' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN severity = 'high' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN severity = 'medium' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN severity = 'low' THEN 1 ELSE 0 END), 0)
		 FROM triage_history WHERE processed_at >= ?`,
		since,
	).Scan(&s.Total, &s.CriticalCount, &s.HighCount, &s.MediumCount, &s.LowCount)
	return s, err
}
