package filtering

import (
	"fmt"

	"github.com/spigell/matchmaker/internal/profile"
)

// Mode selects how many conditions a candidate has to satisfy.
//
// Strict requires all of them. Tolerance(k) counts the conditions that hold and accepts when at
// most k of them fail. Thresholds inside a condition are never widened.
type Mode struct {
	tolerance int
	relaxed   bool
}

// Strict requires every enabled condition.
func Strict() Mode {
	return Mode{}
}

// Tolerance accepts candidates failing at most k conditions. Negative k is treated as 0.
// The tally covers the enabled strict conditions (height, marital status, age, education,
// denomination, salary); city only orders results and is never counted, so Tolerance(0) equals Strict.
func Tolerance(k int) Mode {
	if k < 0 {
		k = 0
	}
	return Mode{tolerance: k, relaxed: true}
}

// ParseMode maps a configured flexibility to a mode: negative means strict.
func ParseMode(k int) Mode {
	if k < 0 {
		return Strict()
	}
	return Tolerance(k)
}

func (m Mode) IsStrict() bool { return !m.relaxed }

// Allowed returns how many conditions may fail.
func (m Mode) Allowed() int { return m.tolerance }

func (m Mode) String() string {
	if m.IsStrict() {
		return "strict"
	}
	return fmt.Sprintf("tolerance(k=%d)", m.tolerance)
}

// Verdict is the outcome of evaluating one candidate.
type Verdict struct {
	Accepted bool
	Met      int
	Total    int
	Failed   []string
}

// Predicate decides whether a candidate is compatible with a query profile.
type Predicate struct {
	conditions []Condition
	mode       Mode
}

// NewPredicate evaluates the enabled conditions among the given ones under mode.
func NewPredicate(conditions []Condition, mode Mode) *Predicate {
	return &Predicate{
		conditions: Enabled(conditions),
		mode:       mode,
	}
}

func (p *Predicate) Mode() Mode { return p.mode }

// Conditions returns the enabled conditions in evaluation order.
func (p *Predicate) Conditions() []Condition {
	return append([]Condition(nil), p.conditions...)
}

// Evaluate checks every condition for the pair. All conditions are evaluated so that the verdict
// names each failed one.
func (p *Predicate) Evaluate(q, c *profile.Profile) Verdict {
	verdict := Verdict{Total: len(p.conditions)}
	for _, condition := range p.conditions {
		if condition.Check(q, c) {
			verdict.Met++
			continue
		}
		verdict.Failed = append(verdict.Failed, condition.Name())
	}

	if p.mode.IsStrict() {
		verdict.Accepted = verdict.Met == verdict.Total
	} else {
		verdict.Accepted = verdict.Met >= verdict.Total-p.mode.Allowed()
	}

	return verdict
}

// Accepts reports whether the candidate is compatible with the query.
func (p *Predicate) Accepts(q, c *profile.Profile) bool {
	return p.Evaluate(q, c).Accepted
}
