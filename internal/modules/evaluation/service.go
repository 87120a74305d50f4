// Package evaluation orchestrates a batch of episodes against the
// environment/policy collaborators and accumulates the result set.
package evaluation

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hedgelab/hedgebench/internal/domain"
	"github.com/hedgelab/hedgebench/internal/modules/episodes"
	"github.com/hedgelab/hedgebench/internal/modules/metrics"
)

// progressLogInterval is how many episodes pass between console progress
// messages.
const progressLogInterval = 100

// Progress describes the state of a running batch.
type Progress struct {
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	LastReturn float64 `json:"last_return"`
}

// EpisodeHook observes each completed episode before its trajectory is
// discarded. Returning an error aborts the batch.
type EpisodeHook func(episode int, result episodes.Result, record metrics.EpisodeRecord) error

// Service runs evaluation batches. Episodes execute strictly sequentially:
// the environment is a single mutable collaborator reset in place.
type Service struct {
	env    domain.Environment
	policy domain.Policy
	log    zerolog.Logger

	onProgress func(Progress)
	onEpisode  EpisodeHook
}

// NewService creates an evaluation service.
func NewService(env domain.Environment, policy domain.Policy, log zerolog.Logger) *Service {
	return &Service{
		env:    env,
		policy: policy,
		log:    log.With().Str("service", "evaluation").Logger(),
	}
}

// OnProgress registers a callback invoked after every completed episode.
func (s *Service) OnProgress(fn func(Progress)) {
	s.onProgress = fn
}

// OnEpisode registers a hook that sees each episode's raw result and record.
func (s *Service) OnEpisode(hook EpisodeHook) {
	s.onEpisode = hook
}

// RunBatch executes the given number of episodes and returns the accumulated
// result set. Collaborator failures abort the batch; no partial-result
// salvage is attempted.
func (s *Service) RunBatch(count int) (*metrics.ResultSet, error) {
	if count <= 0 {
		return nil, fmt.Errorf("episode count must be positive, got %d", count)
	}

	s.log.Info().Int("episodes", count).Msg("Running test episodes")

	resultSet := metrics.NewResultSet()

	for i := 0; i < count; i++ {
		result, err := episodes.Run(s.env, s.policy)
		if err != nil {
			return nil, fmt.Errorf("episode %d: %w", i, err)
		}

		record, err := metrics.Reconstruct(result.Trajectory, result.Params, result.Bounds)
		if err != nil {
			return nil, fmt.Errorf("episode %d: %w", i, err)
		}

		resultSet.Append(record)

		if s.onEpisode != nil {
			if err := s.onEpisode(i, result, record); err != nil {
				return nil, fmt.Errorf("episode %d hook: %w", i, err)
			}
		}
		if s.onProgress != nil {
			s.onProgress(Progress{Completed: i + 1, Total: count, LastReturn: record.NormalizedReturn})
		}
		if (i+1)%progressLogInterval == 0 {
			s.log.Info().
				Int("completed", i+1).
				Int("total", count).
				Msg("Completed episodes")
		}
	}

	return resultSet, nil
}
