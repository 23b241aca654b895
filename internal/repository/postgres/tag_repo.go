package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conferencedirectory/internal/domain"

	"github.com/lib/pq"
)

type tagRepository struct {
	DB *sql.DB
}

// NewTagRepository returns a domain.TagRepository implemented with Postgres.
func NewTagRepository(db *sql.DB) domain.TagRepository {
	return &tagRepository{DB: db}
}

// SetConferenceTags reconciles conference_tags against names in one
// transaction. The conference row is locked first so concurrent
// reconciliations of the same conference run one after the other.
func (r *tagRepository) SetConferenceTags(ctx context.Context, conferenceID string, names []string) (*domain.TagChanges, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var locked string
	err = tx.QueryRowContext(ctx, `SELECT id FROM conferences WHERE id = $1 FOR UPDATE`, conferenceID).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConferenceNotFound
		}
		return nil, fmt.Errorf("lock conference: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tags (name) SELECT unnest($1::text[]) ON CONFLICT (name) DO NOTHING`,
		pq.Array(names)); err != nil {
		return nil, fmt.Errorf("insert tags: %w", err)
	}

	tagIDs, err := selectTagIDs(ctx, tx, names)
	if err != nil {
		return nil, fmt.Errorf("resolve tag ids: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM conference_tags WHERE conference_id = $1 AND tag_id <> ALL($2::uuid[])`,
		conferenceID, pq.Array(tagIDs))
	if err != nil {
		return nil, fmt.Errorf("delete conference tags: %w", err)
	}
	deleted, _ := result.RowsAffected()

	result, err = tx.ExecContext(ctx,
		`INSERT INTO conference_tags (conference_id, tag_id)
		 SELECT $1, unnest($2::uuid[])
		 ON CONFLICT (conference_id, tag_id) DO NOTHING`,
		conferenceID, pq.Array(tagIDs))
	if err != nil {
		return nil, fmt.Errorf("insert conference tags: %w", err)
	}
	added, _ := result.RowsAffected()

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &domain.TagChanges{AddCount: added, DeleteCount: deleted}, nil
}

func selectTagIDs(ctx context.Context, tx *sql.Tx, names []string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM tags WHERE name = ANY($1)`, pq.Array(names))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0, len(names))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
