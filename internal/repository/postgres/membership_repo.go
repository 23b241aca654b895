package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"conferencedirectory/internal/domain"
)

var membershipTables = map[domain.MembershipKind]string{
	domain.MembershipJoin:     "user_join_conferences",
	domain.MembershipFavorite: "user_favorite_conferences",
}

type membershipRepository struct {
	DB *sql.DB
}

// NewMembershipRepository returns a domain.MembershipRepository backed by the
// join and favorite junction tables.
func NewMembershipRepository(db *sql.DB) domain.MembershipRepository {
	return &membershipRepository{DB: db}
}

func membershipTable(kind domain.MembershipKind) (string, error) {
	table, ok := membershipTables[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownMembershipKind, kind)
	}
	return table, nil
}

func (r *membershipRepository) Add(ctx context.Context, kind domain.MembershipKind, userID, conferenceID string) (bool, error) {
	table, err := membershipTable(kind)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, conference_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, conference_id) DO NOTHING
	`, table)
	result, err := r.DB.ExecContext(ctx, query, userID, conferenceID)
	if err != nil {
		if violatesForeignKey(err, "conference_id") {
			return false, domain.ErrConferenceNotFound
		}
		if isForeignKeyViolation(err) {
			return false, domain.ErrUserNotFound
		}
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

func (r *membershipRepository) Remove(ctx context.Context, kind domain.MembershipKind, userID, conferenceID string) (bool, error) {
	table, err := membershipTable(kind)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND conference_id = $2`, table)
	result, err := r.DB.ExecContext(ctx, query, userID, conferenceID)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

func (r *membershipRepository) ListConferenceIDs(ctx context.Context, kind domain.MembershipKind, userID string) ([]string, error) {
	table, err := membershipTable(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT m.conference_id
		FROM %s m
		JOIN conferences c ON c.id = m.conference_id
		WHERE m.user_id = $1
		ORDER BY c.date DESC, c.id
	`, table)
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
