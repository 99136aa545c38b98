package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/shared"
)

// HistoryRepository stores [models.HistoryEntry] rows in the search_history table.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts entry with a generated ID and sequence, writing both back into entry.
func (r *HistoryRepository) Create(entry *models.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: validation failed: %v", shared.ErrInvalidInput, err)
	}

	sequence, err := NextSequence(r.db, "search_history")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	query := `
		INSERT INTO search_history (id, sequence, term, outcome, artist_name, searched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, entry.Term, string(entry.Outcome), entry.ArtistName, entry.SearchedAt)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	entry.ID = id
	entry.Sequence = sequence
	return nil
}

// Get retrieves an entry by ID
func (r *HistoryRepository) Get(id string) (*models.HistoryEntry, error) {
	query := `
		SELECT id, sequence, term, outcome, artist_name, searched_at
		FROM search_history
		WHERE id = ?
	`

	entry, err := r.scan(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: history entry %s", shared.ErrNotFound, id)
	}
	return entry, err
}

// List returns up to limit entries, newest first. A non-positive limit returns every entry.
func (r *HistoryRepository) List(limit int) ([]*models.HistoryEntry, error) {
	query := `
		SELECT id, sequence, term, outcome, artist_name, searched_at
		FROM search_history
		ORDER BY sequence DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		entry, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	return entries, nil
}

// Count returns the number of stored entries
func (r *HistoryRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM search_history").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

// Clear deletes every entry and returns how many were removed.
//
// The sequence counter is left alone so ordering stays monotonic across clears.
func (r *HistoryRepository) Clear() (int64, error) {
	result, err := r.db.Exec("DELETE FROM search_history")
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *HistoryRepository) scan(row scanner) (*models.HistoryEntry, error) {
	var (
		entry   models.HistoryEntry
		outcome string
	)

	err := row.Scan(&entry.ID, &entry.Sequence, &entry.Term, &outcome, &entry.ArtistName, &entry.SearchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan history entry: %w", err)
	}

	entry.Outcome = models.Outcome(outcome)
	return &entry, nil
}

// HistoryRecorder records lookups through a [HistoryRepository].
type HistoryRecorder struct {
	repo *HistoryRepository
}

// NewHistoryRecorder wraps repo as a recorder.
func NewHistoryRecorder(repo *HistoryRepository) *HistoryRecorder {
	return &HistoryRecorder{repo: repo}
}

// Record stores a copy of entry.
func (h *HistoryRecorder) Record(entry models.HistoryEntry) error {
	return h.repo.Create(&entry)
}
