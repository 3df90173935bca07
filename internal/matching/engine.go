// Package matching runs the compatibility predicate over the opposite cohort and orders the
// accepted candidates same-city first.
package matching

import (
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/matchmaker/internal/filtering"
	"github.com/spigell/matchmaker/internal/profile"
)

// Engine evaluates query profiles against candidate cohorts.
type Engine struct {
	predicate *filtering.Predicate
	logger    *zap.Logger
}

// New builds an engine from conditions and mode. A nil logger is replaced with a no-op one.
func New(conditions []filtering.Condition, mode filtering.Mode, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		predicate: filtering.NewPredicate(conditions, mode),
		logger:    logger,
	}
}

func (e *Engine) Predicate() *filtering.Predicate {
	return e.predicate
}

// Match returns the compatible candidates for q. Candidates are evaluated in source order; the
// accepted ones are then stably partitioned so that candidates in the query's city come first.
func (e *Engine) Match(q *profile.Profile, candidates *profile.Profiles) *Result {
	result := &Result{
		Query:   q,
		Matches: []Match{},
		Stats: Stats{
			Candidates: candidates.Len(),
			FailedBy:   map[string]int{},
		},
	}

	if candidates != nil {
		for _, c := range candidates.Items {
			verdict := e.predicate.Evaluate(q, c)
			for _, name := range verdict.Failed {
				result.Stats.FailedBy[name]++
			}
			if !verdict.Accepted {
				result.Stats.Rejected++
				continue
			}

			result.Matches = append(result.Matches, Match{
				Profile:  c,
				Met:      verdict.Met,
				Total:    verdict.Total,
				SameCity: sameCity(q, c),
			})
		}
	}
	result.Stats.Accepted = len(result.Matches)

	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].SameCity && !result.Matches[j].SameCity
	})

	e.logger.Info("match step",
		zap.String("query", q.ID),
		zap.String("mode", e.predicate.Mode().String()),
		zap.Int("candidates", result.Stats.Candidates),
		zap.Int("accepted", result.Stats.Accepted),
		zap.Int("rejected", result.Stats.Rejected),
	)
	if len(result.Stats.FailedBy) > 0 {
		fields := make([]zap.Field, 0, len(result.Stats.FailedBy)+1)
		fields = append(fields, zap.String("query", q.ID))
		for _, condition := range e.predicate.Conditions() {
			if failed, ok := result.Stats.FailedBy[condition.Name()]; ok {
				fields = append(fields, zap.Int(condition.Name(), failed))
			}
		}
		e.logger.Debug("failed conditions", fields...)
	}

	return result
}

// sameCity compares canonical cities. An absent city on either side is never the same city.
func sameCity(q, c *profile.Profile) bool {
	qc, ok := q.City.Get()
	if !ok {
		return false
	}
	cc, ok := c.City.Get()
	return ok && qc == cc
}
