// Package session loads a profile source once and answers repeated match queries against it.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/matchmaker/internal/cohort"
	"github.com/spigell/matchmaker/internal/filtering"
	"github.com/spigell/matchmaker/internal/logger"
	"github.com/spigell/matchmaker/internal/matching"
	"github.com/spigell/matchmaker/internal/profile"
	"github.com/spigell/matchmaker/internal/source"
	"github.com/spigell/matchmaker/internal/utils"
)

const (
	maxLoggedRaw = 40
	maxLoggedIDs = 10
)

// ErrProfileNotFound is returned when a query id is in neither cohort.
var ErrProfileNotFound = errors.New("profile not found")

// Options configure how a source is loaded and matched.
type Options struct {
	// Sheet selects the spreadsheet sheet; empty means the first one.
	Sheet string
	// Schema maps canonical fields to headers. Nil means source.DefaultSchema.
	Schema source.Schema
	// Conditions is the rule set. Nil means filtering.Defaults.
	Conditions []filtering.Condition
	Mode       filtering.Mode
	Logger     *zap.Logger
	// Now is the clock used to derive ages from birth dates.
	Now func() time.Time
}

// Session holds the normalized cohorts of one source.
type Session struct {
	ID          string
	Source      string
	Records     int
	Cohorts     *cohort.Cohorts
	Diagnostics profile.Diagnostics

	engine *matching.Engine
	logger *zap.Logger
}

// Summary describes a loaded session.
type Summary struct {
	Session     string         `json:"session"`
	Source      string         `json:"source"`
	Records     int            `json:"records"`
	Female      int            `json:"female"`
	Male        int            `json:"male"`
	Dropped     int            `json:"dropped"`
	Mode        string         `json:"mode"`
	Conditions  []string       `json:"conditions"`
	Diagnostics map[string]int `json:"diagnostics,omitempty"`
}

// Open reads the source at path and prepares it for querying.
func Open(path string, opts Options) (*Session, error) {
	table, err := source.Read(path, opts.Sheet)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	return FromTable(path, table, opts)
}

// FromTable prepares an already read table for querying. name identifies the source in logs.
func FromTable(name string, table *source.Table, opts Options) (*Session, error) {
	schema := opts.Schema
	if schema == nil {
		schema = source.DefaultSchema()
	}
	conditions := opts.Conditions
	if conditions == nil {
		conditions = filtering.Defaults()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	id := uuid.NewString()
	log := logger.WithCommonFields(opts.Logger, id, name)

	raws, err := source.Decode(table, schema)
	if err != nil {
		return nil, fmt.Errorf("decoding source: %w", err)
	}

	profiles, diagnostics := profile.NormalizeAll(raws, now())
	cohorts := cohort.Split(profiles)

	s := &Session{
		ID:          id,
		Source:      name,
		Records:     len(raws),
		Cohorts:     cohorts,
		Diagnostics: diagnostics,
		engine:      matching.New(conditions, opts.Mode, log),
		logger:      log,
	}

	s.logDiagnostics()
	log.Info("source loaded",
		zap.Int("records", s.Records),
		zap.Int("female", cohorts.Female.Len()),
		zap.Int("male", cohorts.Male.Len()),
		zap.Int("dropped", cohorts.Dropped),
	)

	return s, nil
}

// Query matches the profile with the given id against the opposite cohort. The id is trimmed like
// the ids read from the source. A profile with no compatible candidates yields an empty result,
// not an error.
func (s *Session) Query(id string) (*matching.Result, error) {
	id = strings.TrimSpace(id)
	lookup := s.Cohorts.Lookup(id)
	if !lookup.Found {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	return s.engine.Match(lookup.Profile, s.Cohorts.Opposite(lookup.Cohort)), nil
}

// QueryAll matches every profile of both cohorts, female first. Results without matches are
// omitted.
func (s *Session) QueryAll() []*matching.Result {
	results := make([]*matching.Result, 0, s.Cohorts.Len())
	for _, p := range s.Cohorts.All() {
		result := s.engine.Match(p, s.Cohorts.Opposite(p.Gender))
		if result.Len() == 0 {
			continue
		}
		results = append(results, result)
	}

	s.logger.Info("all profiles matched",
		zap.Int("queries", s.Cohorts.Len()),
		zap.Int("with_matches", len(results)),
	)

	return results
}

func (s *Session) Summary() Summary {
	predicate := s.engine.Predicate()
	conditions := make([]string, 0, len(predicate.Conditions()))
	for _, condition := range predicate.Conditions() {
		conditions = append(conditions, condition.Name())
	}

	return Summary{
		Session:     s.ID,
		Source:      s.Source,
		Records:     s.Records,
		Female:      s.Cohorts.Female.Len(),
		Male:        s.Cohorts.Male.Len(),
		Dropped:     s.Cohorts.Dropped,
		Mode:        predicate.Mode().String(),
		Conditions:  conditions,
		Diagnostics: s.Diagnostics.ByField(),
	}
}

func (s *Session) Logger() *zap.Logger {
	return s.logger
}

func (s *Session) logDiagnostics() {
	if len(s.Diagnostics) == 0 {
		return
	}

	counts := s.Diagnostics.ByField()
	for _, field := range s.Diagnostics.Fields() {
		var ids []string
		for _, diag := range s.Diagnostics {
			if diag.Field == field {
				ids = append(ids, diag.RecordID)
			}
		}
		s.logger.Warn("values treated as absent",
			zap.String("field", field),
			zap.Int("count", counts[field]),
			zap.Strings("records", utils.TruncateList(ids, maxLoggedIDs)),
		)
	}

	for _, diag := range s.Diagnostics {
		s.logger.Debug("diagnostic",
			zap.String("record", diag.RecordID),
			zap.String("field", diag.Field),
			zap.String("reason", diag.Reason),
			zap.String("raw", utils.TruncateForLog(diag.Raw, maxLoggedRaw)),
		)
	}
}
