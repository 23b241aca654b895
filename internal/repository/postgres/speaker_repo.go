package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"conferencedirectory/internal/domain"
)

type speakerRepository struct {
	DB *sql.DB
}

// NewSpeakerRepository returns a domain.SpeakerRepository implemented with Postgres.
func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{DB: db}
}

func (r *speakerRepository) Create(ctx context.Context, s *domain.Speaker) error {
	query := `
		INSERT INTO conference_speakers (conference_id, name, title, company, bio, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, s.ConferenceID, s.Name, s.Title, s.Company, s.Bio, s.AvatarURL).Scan(&s.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConferenceNotFound
		}
		return err
	}
	return nil
}

func (r *speakerRepository) Update(ctx context.Context, conferenceID, speakerID string, upd domain.SpeakerUpdate) (*domain.Speaker, error) {
	setClauses := []string{}
	args := []interface{}{}
	set := func(column string, v string) {
		args = append(args, v)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.Title != nil {
		set("title", *upd.Title)
	}
	if upd.Company != nil {
		set("company", *upd.Company)
	}
	if upd.Bio != nil {
		set("bio", *upd.Bio)
	}
	if upd.AvatarURL != nil {
		set("avatar_url", *upd.AvatarURL)
	}
	var query string
	if len(setClauses) == 0 {
		query = `SELECT id, conference_id, name, title, company, bio, avatar_url
			FROM conference_speakers
			WHERE conference_id = $1 AND id = $2`
	} else {
		query = fmt.Sprintf(`
			UPDATE conference_speakers SET %s
			WHERE conference_id = $%d AND id = $%d
			RETURNING id, conference_id, name, title, company, bio, avatar_url
		`, strings.Join(setClauses, ", "), len(args)+1, len(args)+2)
	}
	args = append(args, conferenceID, speakerID)

	s := &domain.Speaker{}
	var avatar sql.NullString
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.ConferenceID, &s.Name, &s.Title, &s.Company, &s.Bio, &avatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSpeakerNotFound
		}
		return nil, err
	}
	if avatar.Valid {
		s.AvatarURL = &avatar.String
	}
	return s, nil
}

func (r *speakerRepository) Delete(ctx context.Context, conferenceID, speakerID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM conference_speakers WHERE conference_id = $1 AND id = $2`, conferenceID, speakerID)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrSpeakerNotFound
	}
	return nil
}
