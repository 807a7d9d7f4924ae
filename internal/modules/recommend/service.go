package recommend

import (
	"context"
	"log"
	"sync"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

// MaxRecommendations caps the aggregated feed.
const MaxRecommendations = 6

// perSourceLimit is how many candidates each source contributes before
// dedup; fetching a few extra keeps the feed full when sources overlap.
const perSourceLimit = 4

// Sources is the query surface the aggregator fans out over.
type Sources interface {
	MostBooked(ctx context.Context, limit int) ([]domain.Property, error)
	HighestRated(ctx context.Context, limit int) ([]domain.Property, error)
	UserSearchBased(ctx context.Context, userID int64, limit int) ([]domain.Property, error)
	AveragePrice(ctx context.Context, limit int) ([]domain.Property, error)
	Recommended(ctx context.Context, limit int) ([]domain.Property, error)
}

type Service struct {
	sources Sources
}

func NewService(sources Sources) *Service {
	return &Service{sources: sources}
}

// sourceOrder fixes merge priority: a property recommended by several
// sources keeps the tag of the highest-priority one.
var sourceOrder = []domain.RecommendationType{
	domain.RecommendMostBooked,
	domain.RecommendHighestRated,
	domain.RecommendUserSearchBased,
	domain.RecommendAveragePrice,
}

// Aggregate queries all four sources concurrently and merges their
// results. A failing source contributes nothing rather than failing the
// whole feed; when every source comes back empty the fallback source
// fills in.
func (s *Service) Aggregate(ctx context.Context, userID int64) ([]domain.RecommendationItem, error) {
	results := map[domain.RecommendationType][]domain.Property{}
	var mu sync.Mutex
	var wg sync.WaitGroup

	fetch := func(t domain.RecommendationType, query func() ([]domain.Property, error)) {
		defer wg.Done()
		props, err := query()
		if err != nil {
			log.Printf("recommendation_source_failed source=%s err=%v", t, err)
			return
		}
		mu.Lock()
		results[t] = props
		mu.Unlock()
	}

	wg.Add(4)
	go fetch(domain.RecommendMostBooked, func() ([]domain.Property, error) {
		return s.sources.MostBooked(ctx, perSourceLimit)
	})
	go fetch(domain.RecommendHighestRated, func() ([]domain.Property, error) {
		return s.sources.HighestRated(ctx, perSourceLimit)
	})
	go fetch(domain.RecommendUserSearchBased, func() ([]domain.Property, error) {
		return s.sources.UserSearchBased(ctx, userID, perSourceLimit)
	})
	go fetch(domain.RecommendAveragePrice, func() ([]domain.Property, error) {
		return s.sources.AveragePrice(ctx, perSourceLimit)
	})
	wg.Wait()

	merged := merge(results)
	if len(merged) > 0 {
		return merged, nil
	}
	return s.Fallback(ctx)
}

// Fallback serves the generic feed, for anonymous users or when the
// personalized sources have nothing.
func (s *Service) Fallback(ctx context.Context) ([]domain.RecommendationItem, error) {
	props, err := s.sources.Recommended(ctx, MaxRecommendations)
	if err != nil {
		return nil, err
	}
	out := make([]domain.RecommendationItem, 0, len(props))
	for _, p := range props {
		out = append(out, domain.NewRecommendationItem(p, domain.RecommendFallback))
	}
	return out, nil
}

// merge walks the sources in priority order, keeps the first sighting
// of each property, and stops at the cap.
func merge(results map[domain.RecommendationType][]domain.Property) []domain.RecommendationItem {
	seen := map[int64]bool{}
	out := make([]domain.RecommendationItem, 0, MaxRecommendations)

	for _, t := range sourceOrder {
		for _, p := range results[t] {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			out = append(out, domain.NewRecommendationItem(p, t))
			if len(out) == MaxRecommendations {
				return out
			}
		}
	}
	return out
}
