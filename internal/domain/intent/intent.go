// Package intent converts free text or structured filter input into a
// canonical, fully-defaulted BuildRequest. Parsing is a pure function of the
// input and the keyword tables: no I/O, no catalog access, and it never
// fails. Unparseable input resolves to an all-defaults request so a
// structured request can always be merged over it.
package intent

import (
	"strings"

	"github.com/kitforge/kitforge/internal/domain/model"
)

// Option applies a configuration option to the Parser.
type Option func(*Parser)

// WithDefaultActivity overrides the activity used when no keyword matches.
func WithDefaultActivity(a model.Activity) Option {
	return func(p *Parser) {
		if a != "" {
			p.defaultActivity = a
		}
	}
}

// WithDefaultPlaystyle overrides the playstyle used when no keyword matches.
func WithDefaultPlaystyle(ps model.Playstyle) Option {
	return func(p *Parser) {
		if ps != "" {
			p.defaultPlaystyle = ps
		}
	}
}

// Parser resolves user intent into BuildRequests.
type Parser struct {
	defaultActivity  model.Activity
	defaultPlaystyle model.Playstyle
}

// New creates a Parser with configuration options.
func New(opts ...Option) *Parser {
	p := &Parser{
		defaultActivity:  model.ActivityGeneral,
		defaultPlaystyle: model.PlaystyleBalanced,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse tokenizes text on whitespace (case-insensitive) and resolves each
// keyword category independently. Every field of the returned request is
// defaulted; FocusStats is always a valid, possibly empty, set.
func (p *Parser) Parse(text string) model.BuildRequest {
	req := p.defaults()
	req.RawText = text

	var (
		haveClass     bool
		haveElement   bool
		haveActivity  bool
		havePlaystyle bool
	)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,;:!?\"'()")
		if token == "" {
			continue
		}
		if !haveClass {
			if c, ok := classKeywords[token]; ok {
				req.Class = c
				haveClass = true
			}
		}
		if !haveElement {
			if e, ok := elementKeywords[token]; ok {
				req.Element = e
				haveElement = true
			}
		}
		if !haveActivity {
			if a, ok := activityKeywords[token]; ok {
				req.Activity = a
				haveActivity = true
			}
		}
		if !havePlaystyle {
			if ps, ok := playstyleKeywords[token]; ok {
				req.Playstyle = ps
				havePlaystyle = true
			}
		}
		// Stat focus is a many-match category: every mention counts, in
		// mention order. StatSet drops duplicates.
		if s, ok := statKeywords[token]; ok {
			req.FocusStats.Add(s)
		}
	}
	return req
}

// ParseStructured validates and defaults already-structured filter fields so
// text and form input funnel through one canonical shape. Invalid enum
// values fall back to the defaults rather than erroring.
func (p *Parser) ParseStructured(f model.Filters) model.BuildRequest {
	req := p.defaults()

	switch f.Class {
	case model.ClassTitan, model.ClassHunter, model.ClassWarlock:
		req.Class = f.Class
	}
	switch f.Element {
	case model.ElementArc, model.ElementSolar, model.ElementVoid,
		model.ElementStasis, model.ElementStrand:
		req.Element = f.Element
	}
	switch f.Activity {
	case model.ActivityGeneral, model.ActivityRaid, model.ActivityDungeon,
		model.ActivityPvP, model.ActivityNightfall, model.ActivityGambit,
		model.ActivityTrials:
		req.Activity = f.Activity
	}
	switch f.Playstyle {
	case model.PlaystyleBalanced, model.PlaystyleTank, model.PlaystyleDPS,
		model.PlaystyleSpeed:
		req.Playstyle = f.Playstyle
	}
	req.FocusStats = model.NewStatSet(f.FocusStats...)
	req.LockedExotic = f.LockedExotic
	req.Constraints = f.Constraints
	return req
}

// defaults returns the all-defaults request every parse starts from.
func (p *Parser) defaults() model.BuildRequest {
	return model.BuildRequest{
		Class:      model.ClassAny,
		Element:    model.ElementAny,
		Activity:   p.defaultActivity,
		Playstyle:  p.defaultPlaystyle,
		FocusStats: model.NewStatSet(),
	}
}
