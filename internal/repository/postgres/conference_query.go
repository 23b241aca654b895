package postgres

import (
	"fmt"
	"strings"

	"conferencedirectory/internal/domain"

	"github.com/lib/pq"
)

const conferenceColumns = `c.id, c.owner_id, c.name, c.description, c.date, c.location,
		c.price, c.max_attendees, c.is_featured, c.image_url`

// whereBuilder accumulates AND-ed predicates and their positional arguments.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

// add appends arg and formats cond with its placeholder number.
func (w *whereBuilder) add(cond string, arg interface{}) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

// next appends arg and returns its placeholder.
func (w *whereBuilder) next(arg interface{}) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// buildConferenceWhere translates a filter into predicates on alias c. Only
// set fields are applied, so a zero bound is a real bound.
func buildConferenceWhere(f domain.ConferenceFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.ID != nil {
		w.add("c.id = $%d", *f.ID)
	}
	if f.Name != nil {
		w.add(`c.name ILIKE $%d ESCAPE '\'`, "%"+escapeLike(*f.Name)+"%")
	}
	if f.StartDate != nil {
		w.add("c.date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		w.add("c.date <= $%d", *f.EndDate)
	}
	if f.PriceFrom != nil {
		w.add("c.price >= $%d", *f.PriceFrom)
	}
	if f.PriceTo != nil {
		w.add("c.price <= $%d", *f.PriceTo)
	}
	if len(f.Tags) > 0 {
		w.add(`EXISTS (
			SELECT 1 FROM conference_tags ft
			JOIN tags tt ON tt.id = ft.tag_id
			WHERE ft.conference_id = c.id AND tt.name = ANY($%d)
		)`, pq.Array(f.Tags))
	}
	if f.OwnerID != nil {
		w.add("c.owner_id = $%d", *f.OwnerID)
	}
	return w
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// listConferencesQuery selects one page of conferences in a CTE and joins
// speakers and tag names against exactly that page.
func listConferencesQuery(f domain.ConferenceFilter, page domain.PaginationParams) (string, []interface{}) {
	w := buildConferenceWhere(f)
	where := w.clause()
	limit := w.next(page.Limit())
	offset := w.next(page.Offset())
	query := fmt.Sprintf(`
		WITH page AS (
			SELECT %s
			FROM conferences c
			%s
			ORDER BY c.date DESC, c.id
			LIMIT %s OFFSET %s
		)
		SELECT p.id, p.owner_id, p.name, p.description, p.date, p.location,
			p.price, p.max_attendees, p.is_featured, p.image_url,
			s.id, s.name, s.title, s.company, s.bio, s.avatar_url,
			t.name
		FROM page p
		LEFT JOIN conference_speakers s ON s.conference_id = p.id
		LEFT JOIN conference_tags ct ON ct.conference_id = p.id
		LEFT JOIN tags t ON t.id = ct.tag_id
		ORDER BY p.date DESC, p.id, s.created_at, s.id, t.name
	`, conferenceColumns, where, limit, offset)
	return query, w.args
}

func countConferencesQuery(f domain.ConferenceFilter) (string, []interface{}) {
	w := buildConferenceWhere(f)
	return "SELECT COUNT(*) FROM conferences c " + w.clause(), w.args
}
