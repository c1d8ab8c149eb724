package bot

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hugo/presencebot/internal/aggregate"
	"github.com/hugo/presencebot/internal/cache"
	"github.com/hugo/presencebot/internal/config"
	"github.com/hugo/presencebot/internal/fetch"
	"github.com/hugo/presencebot/internal/interpret"
	"github.com/hugo/presencebot/internal/render"
)

// blockSep joins per-person blocks when a bundle reply is cached. Blocks
// never contain blank lines, so the separator round-trips.
const blockSep = "\n\n"

// Reply is one rendered answer. Blocks is non-nil for bundled group
// replies; Text carries single replies.
type Reply struct {
	Text   string
	Title  string
	Blocks []string
}

// Service answers routed queries: it fans out one fetch per person,
// classifies and renders each block, and caches whole replies for a
// fixed window.
type Service struct {
	cfg    *config.Config
	client *fetch.Client
	cache  *cache.ReplyCache
	interp *interpret.Interpreter
	agg    *aggregate.Aggregator
	log    *zap.Logger
	now    func() time.Time
}

func NewService(cfg *config.Config, client *fetch.Client, replies *cache.ReplyCache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		cfg:    cfg,
		client: client,
		cache:  replies,
		interp: interpret.New(),
		agg:    aggregate.New(),
		log:    log,
		now:    time.Now,
	}
}

// Handle routes and answers one chat message. The second return is false
// when the message matches no trigger.
func (s *Service) Handle(ctx context.Context, text string) (Reply, bool) {
	query, ok := s.Route(text)
	if !ok {
		return Reply{}, false
	}

	switch query.Kind {
	case QueryList:
		return Reply{Text: s.nameList(ctx)}, true
	case QueryToday:
		return s.answer(ctx, "today", query, s.TodayFor), true
	default:
		return s.answer(ctx, "status", query, s.StatusFor), true
	}
}

// answer produces the reply for a status or today query, consulting the
// reply cache first.
func (s *Service) answer(ctx context.Context, mode string, query Query, renderFn func(context.Context, string) string) Reply {
	key := s.cache.Key(mode, query.Names)
	if text, ok := s.cache.Get(key); ok {
		s.log.Debug("reply cache hit", zap.String("key", key))
		return s.replyFromText(text, query)
	}

	blocks := s.fanOut(ctx, query.Names, renderFn)
	joined := strings.Join(blocks, blockSep)
	s.cache.Put(key, joined)
	return s.replyFromText(joined, query)
}

func (s *Service) replyFromText(text string, query Query) Reply {
	if !query.Bundle {
		return Reply{Text: text}
	}
	return Reply{Title: s.cfg.Team.Title, Blocks: strings.Split(text, blockSep)}
}

// fanOut renders one block per person concurrently. Each lookup fails or
// succeeds on its own; one person's fetch failure degrades only that
// person's block.
func (s *Service) fanOut(ctx context.Context, names []string, renderFn func(context.Context, string) string) []string {
	blocks := make([]string, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			blocks[i] = renderFn(ctx, name)
		}(i, name)
	}
	wg.Wait()
	return blocks
}

// StatusFor renders the current-status block for one person. Fetch
// failures degrade to an error line instead of propagating.
func (s *Service) StatusFor(ctx context.Context, name string) string {
	person := s.cfg.Person(name)
	if person == nil {
		return name + ": not tracked"
	}

	client := s.client.WithBase(person.APIBase)
	events, err := client.FetchRecentEvents(ctx, name, s.cfg.Report.RecentLimit)
	if err != nil {
		s.log.Warn("status fetch failed", zap.String("person", name), zap.Error(err))
		return name + ": " + err.Error()
	}

	profile := person.Profile()
	state := s.interp.Interpret(name, events, profile)
	return render.PersonState(state, profile)
}

// TodayFor renders the same-day usage block for one person.
func (s *Service) TodayFor(ctx context.Context, name string) string {
	person := s.cfg.Person(name)
	if person == nil {
		return name + ": not tracked"
	}

	client := s.client.WithBase(person.APIBase)
	events, err := client.FetchTodayEvents(ctx, name)
	if err != nil {
		s.log.Warn("today fetch failed", zap.String("person", name), zap.Error(err))
		return name + ": " + err.Error()
	}

	now := s.now()
	report := s.agg.Aggregate(name, events, s.cfg.Report.HeartbeatSeconds, aggregate.DayStart(now), now)
	return render.DailyReport(report)
}

func (s *Service) nameList(ctx context.Context) string {
	names, err := s.client.ListTrackedNames(ctx)
	if err != nil {
		s.log.Warn("name list fetch failed", zap.Error(err))
		return "failed to fetch name list"
	}
	if len(names) == 0 {
		return "nothing to show"
	}
	return "tracked: " + strings.Join(names, ", ")
}
