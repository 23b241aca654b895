// Package aggregate folds joined conference rows into ConferenceView values.
//
// A conference with S speakers and T tags joined in one statement yields S×T
// rows (or one row with NULLs). The Aggregator collapses them back into one
// view per conference listing every speaker and tag name once, keeping the
// order in which conferences, speakers and tags were first seen.
package aggregate

import "conferencedirectory/internal/domain"

// Row is one row of the conference ⟕ speakers ⟕ tags join. Speaker and TagName
// are nil when the left join produced no match.
type Row struct {
	Conference domain.Conference
	Speaker    *domain.Speaker
	TagName    *string
}

type builder struct {
	view       *domain.ConferenceView
	speakerIDs map[string]struct{}
	tagNames   map[string]struct{}
}

// Aggregator accumulates rows. The zero value is not usable; call New.
type Aggregator struct {
	order    []string
	builders map[string]*builder
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{builders: make(map[string]*builder)}
}

// Add folds one joined row.
func (a *Aggregator) Add(row Row) {
	b, ok := a.builders[row.Conference.ID]
	if !ok {
		b = &builder{
			view: &domain.ConferenceView{
				Conference: row.Conference,
				Speakers:   []domain.Speaker{},
				Tags:       []string{},
			},
			speakerIDs: make(map[string]struct{}),
			tagNames:   make(map[string]struct{}),
		}
		a.builders[row.Conference.ID] = b
		a.order = append(a.order, row.Conference.ID)
	}
	if row.Speaker != nil && row.Speaker.ID != "" {
		if _, seen := b.speakerIDs[row.Speaker.ID]; !seen {
			b.speakerIDs[row.Speaker.ID] = struct{}{}
			sp := *row.Speaker
			sp.ConferenceID = ""
			b.view.Speakers = append(b.view.Speakers, sp)
		}
	}
	if row.TagName != nil && *row.TagName != "" {
		if _, seen := b.tagNames[*row.TagName]; !seen {
			b.tagNames[*row.TagName] = struct{}{}
			b.view.Tags = append(b.view.Tags, *row.TagName)
		}
	}
}

// Len returns the number of distinct conferences folded so far.
func (a *Aggregator) Len() int { return len(a.order) }

// Views returns the finished views in first-seen order. The Aggregator must
// not be used afterwards.
func (a *Aggregator) Views() []*domain.ConferenceView {
	out := make([]*domain.ConferenceView, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.builders[id].view)
	}
	a.builders = nil
	a.order = nil
	return out
}
