package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"profix/internal/models"
)

// RequestNoteRepository — заметки лежат отдельными строками, а не одной
// склеенной колонкой: два PM (или две вкладки) не затирают друг друга.
type RequestNoteRepository struct {
	DB *sql.DB
}

func NewRequestNoteRepository(db *sql.DB) *RequestNoteRepository {
	return &RequestNoteRepository{DB: db}
}

func (r *RequestNoteRepository) Create(note *models.RequestNote) error {
	const q = `
		INSERT INTO request_notes (request_id, author_pm_id, body, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q, note.RequestID, note.AuthorPMID, note.Body).Scan(&note.ID, &note.CreatedAt); err != nil {
		return fmt.Errorf("request_note create: %w", err)
	}
	return nil
}

// ListByRequestIDs — пакетная выборка для списка заявок PM.
func (r *RequestNoteRepository) ListByRequestIDs(requestIDs []int) ([]*models.RequestNote, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	const q = `
		SELECT id, request_id, author_pm_id, body, created_at
		FROM request_notes
		WHERE request_id = ANY($1)
		ORDER BY created_at
	`
	return r.queryNotes(q, pq.Array(requestIDs))
}

func (r *RequestNoteRepository) queryNotes(q string, args ...any) ([]*models.RequestNote, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("request_note list: %w", err)
	}
	defer rows.Close()

	var notes []*models.RequestNote
	for rows.Next() {
		var n models.RequestNote
		if err := rows.Scan(&n.ID, &n.RequestID, &n.AuthorPMID, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("request_note scan: %w", err)
		}
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}
