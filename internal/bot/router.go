package bot

import "strings"

// QueryKind discriminates what a chat message asked for.
type QueryKind int

const (
	QueryStatus QueryKind = iota
	QueryToday
	QueryList
)

// Query is one parsed chat request. Bundle marks group queries whose
// per-person blocks are packaged into a single titled forward.
type Query struct {
	Kind   QueryKind
	Names  []string
	Bundle bool
}

// Route matches a chat message against the configured triggers. Matching
// is exact on the trimmed text; a person's trigger plus the today suffix
// asks for the day report instead of current status.
func (s *Service) Route(text string) (Query, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Query{}, false
	}

	cfg := s.cfg
	if text == cfg.Bot.ListTrigger {
		return Query{Kind: QueryList}, true
	}

	suffix := cfg.Bot.TodaySuffix
	if team := cfg.Team.Trigger; team != "" && len(cfg.Team.Members) > 0 {
		switch text {
		case team:
			return Query{Kind: QueryStatus, Names: cfg.Team.Members, Bundle: true}, true
		case team + suffix:
			return Query{Kind: QueryToday, Names: cfg.Team.Members, Bundle: true}, true
		}
	}

	for i := range cfg.Persons {
		p := &cfg.Persons[i]
		switch text {
		case p.Trigger:
			return Query{Kind: QueryStatus, Names: []string{p.Name}}, true
		case p.Trigger + suffix:
			return Query{Kind: QueryToday, Names: []string{p.Name}}, true
		}
	}

	return Query{}, false
}
