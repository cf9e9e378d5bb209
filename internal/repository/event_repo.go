package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"accommodation_finder/internal/models"

	"github.com/google/uuid"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository { return &EventRepository{db: db} }

var _ Events = (*EventRepository)(nil)

const insertEventSQL = `
	INSERT INTO listing_events (id, occurred_at, type, message, listing_id, actor_id)
	VALUES (?, ?, ?, ?, ?, ?)
`

// sqliteTimeLayout is the TIMESTAMP text format stored in occurred_at.
// Filter bounds must be bound in the same format: the column holds text,
// so the comparison is lexical and a raw time.Time argument would miss
// rows at the boundary.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// Append inserts a new audit entry. If EventID or OccurredAt are empty, they’re set.
func (r *EventRepository) Append(ctx context.Context, e models.ListingEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt.Format(sqliteTimeLayout),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Description,
		e.ListingID,
		e.ActorID,
	)
	return err
}

// List returns events matching the filter, ordered ASC by occurrence.
func (r *EventRepository) List(ctx context.Context, f EventFilter) ([]models.ListingEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !f.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, f.From.UTC().Format(sqliteTimeLayout))
	}
	if !f.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, f.To.UTC().Format(sqliteTimeLayout))
	}
	if typ := strings.ToUpper(strings.TrimSpace(f.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if f.ListingID != 0 {
		conds = append(conds, "listing_id = ?")
		args = append(args, f.ListingID)
	}

	q := `SELECT id, occurred_at, type, message, listing_id, actor_id FROM listing_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.ListingEvent, 0, 64)
	for rows.Next() {
		var ev models.ListingEvent
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &ev.Description, &ev.ListingID, &ev.ActorID); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
