// ABOUTME: Scoring service ranks upstream repositories by popularity
// ABOUTME: Normalizes stars and forks, weights them, and labels recency

package scoring

import (
	"math"
	"sort"
	"time"

	"repo-search-api/core/domain"
	"repo-search-api/pkg/utils/duration"
)

const (
	// StarsWeight is the weight of normalized stars in the raw score
	StarsWeight = 0.5

	// ForksWeight is the weight of normalized forks in the raw score
	ForksWeight = 1.0

	// ScoreMin and ScoreMax bound every normalized value
	ScoreMin = 0.0
	ScoreMax = 10.0
)

// ScoringService converts upstream repositories into ranked results
type ScoringService struct {
	now func() time.Time
}

// Option configures a ScoringService
type Option func(*ScoringService)

// WithClock overrides the clock used for recency labels
func WithClock(now func() time.Time) Option {
	return func(s *ScoringService) {
		s.now = now
	}
}

// NewScoringService creates a new scoring service
func NewScoringService(opts ...Option) *ScoringService {
	s := &ScoringService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type scoredRepository struct {
	repo  domain.UpstreamRepository
	score float64
}

// Rank scores every repository against norm and returns them ordered by score descending.
// Repositories with equal scores keep their input order.
func (s *ScoringService) Rank(repos []domain.UpstreamRepository, norm domain.Normalization) []domain.RepositoryResult {
	results := make([]domain.RepositoryResult, 0, len(repos))
	if len(repos) == 0 {
		return results
	}

	scored := make([]scoredRepository, len(repos))
	minRaw, maxRaw := math.Inf(1), math.Inf(-1)
	for i, repo := range repos {
		raw := RawScore(repo, norm)
		scored[i] = scoredRepository{repo: repo, score: raw}
		minRaw = math.Min(minRaw, raw)
		maxRaw = math.Max(maxRaw, raw)
	}

	for i := range scored {
		scored[i].score = Normalize(scored[i].score, minRaw, maxRaw)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	now := s.now()
	for _, sr := range scored {
		results = append(results, toResult(sr.repo, RoundScore(sr.score), now))
	}

	return results
}

// RawScore weights the normalized star and fork counts of a repository
func RawScore(repo domain.UpstreamRepository, norm domain.Normalization) float64 {
	stars := Normalize(float64(repo.Stars), float64(norm.MinStars), float64(norm.MaxStars))
	forks := Normalize(float64(repo.Forks), float64(norm.MinForks), float64(norm.MaxForks))
	return stars*StarsWeight + forks*ForksWeight
}

// Normalize maps value linearly from [lo, hi] onto [ScoreMin, ScoreMax], clamping the result.
// A collapsed interval maps every value to ScoreMax.
func Normalize(value, lo, hi float64) float64 {
	if hi == lo {
		return ScoreMax
	}

	normalized := (value-lo)/(hi-lo)*(ScoreMax-ScoreMin) + ScoreMin
	return math.Max(ScoreMin, math.Min(ScoreMax, normalized))
}

// RoundScore rounds a score to one decimal place
func RoundScore(score float64) float64 {
	return math.Round(score*10) / 10
}

func toResult(repo domain.UpstreamRepository, score float64, now time.Time) domain.RepositoryResult {
	var created *time.Time
	if repo.CreatedAt != nil {
		y, m, d := repo.CreatedAt.UTC().Date()
		c := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		created = &c
	}

	return domain.RepositoryResult{
		Name:            repo.Name,
		URL:             repo.HTMLURL,
		Language:        repo.Language,
		Created:         created,
		Stars:           repo.Stars,
		Forks:           repo.Forks,
		Recency:         duration.Ago(created, now),
		PopularityScore: score,
	}
}
