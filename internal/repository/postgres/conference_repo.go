package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"conferencedirectory/internal/domain"
	"conferencedirectory/internal/repository/aggregate"
)

type conferenceRepository struct {
	DB *sql.DB
}

// NewConferenceRepository returns a domain.ConferenceRepository implemented with Postgres.
func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &conferenceRepository{DB: db}
}

func (r *conferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	query := `
		INSERT INTO conferences (owner_id, name, description, date, location, price, max_attendees, is_featured, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		c.OwnerID, c.Name, c.Description, c.Date, c.Location, c.Price, c.MaxAttendees, c.IsFeatured, c.ImageURL,
	).Scan(&c.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *conferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	query := `
		SELECT ` + conferenceColumns + `
		FROM conferences c
		WHERE c.id = $1
	`
	var c domain.Conference
	var imageURL sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.Date, &c.Location,
		&c.Price, &c.MaxAttendees, &c.IsFeatured, &imageURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConferenceNotFound
		}
		return nil, err
	}
	c.Date = c.Date.UTC()
	if imageURL.Valid {
		c.ImageURL = &imageURL.String
	}
	return &c, nil
}

func (r *conferenceRepository) List(ctx context.Context, filter domain.ConferenceFilter, page domain.PaginationParams) ([]*domain.ConferenceView, error) {
	query, args := listConferencesQuery(filter, page)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agg := aggregate.New()
	for rows.Next() {
		row, err := scanConferenceRow(rows)
		if err != nil {
			return nil, err
		}
		agg.Add(row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return agg.Views(), nil
}

func scanConferenceRow(rows *sql.Rows) (aggregate.Row, error) {
	var c domain.Conference
	var imageURL, tagName sql.NullString
	var spID, spName, spTitle, spCompany, spBio, spAvatar sql.NullString
	if err := rows.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.Date, &c.Location,
		&c.Price, &c.MaxAttendees, &c.IsFeatured, &imageURL,
		&spID, &spName, &spTitle, &spCompany, &spBio, &spAvatar,
		&tagName,
	); err != nil {
		return aggregate.Row{}, err
	}
	c.Date = c.Date.UTC()
	if imageURL.Valid {
		c.ImageURL = &imageURL.String
	}
	row := aggregate.Row{Conference: c}
	if spID.Valid {
		sp := &domain.Speaker{
			ID:      spID.String,
			Name:    spName.String,
			Title:   spTitle.String,
			Company: spCompany.String,
			Bio:     spBio.String,
		}
		if spAvatar.Valid {
			sp.AvatarURL = &spAvatar.String
		}
		row.Speaker = sp
	}
	if tagName.Valid {
		row.TagName = &tagName.String
	}
	return row, nil
}

func (r *conferenceRepository) Count(ctx context.Context, filter domain.ConferenceFilter) (int, error) {
	query, args := countConferencesQuery(filter)
	var n int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *conferenceRepository) Update(ctx context.Context, id string, upd domain.ConferenceUpdate) error {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	set := func(column string, v interface{}) {
		args = append(args, v)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.Date != nil {
		set("date", *upd.Date)
	}
	if upd.Location != nil {
		set("location", *upd.Location)
	}
	if upd.Price != nil {
		set("price", *upd.Price)
	}
	if upd.MaxAttendees != nil {
		set("max_attendees", *upd.MaxAttendees)
	}
	if upd.IsFeatured != nil {
		set("is_featured", *upd.IsFeatured)
	}
	if upd.ImageURL != nil {
		set("image_url", *upd.ImageURL)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE conferences SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), len(args))
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrConferenceNotFound
	}
	return nil
}

func (r *conferenceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM conferences WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrConferenceNotFound
	}
	return nil
}
