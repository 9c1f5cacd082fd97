// Package insights aggregates a response collection into counts,
// proportions, and threshold-triggered findings for retreat planning. All
// functions are pure; no I/O happens here.
package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/utechsu/councilpulse/internal/assessment"
)

// Threshold constants for the report rules. These are fixed by design, not
// configuration.
const (
	lowSatisfactionMean = 3.0
	challengeProportion = 0.3
	focusAreaCount      = 3
)

// Finding codes produced by BuildReport.
const (
	FindingLowSatisfaction  = "low_satisfaction"
	FindingFinancialSupport = "financial_support"
	FindingAcademicBalance  = "academic_balance"
	FindingFocusAreas       = "focus_areas"
)

// Finding is one threshold-triggered recommendation.
type Finding struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Entry is one category with its count, used for ranked listings.
type Entry struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Counts accumulates category counts while remembering first-seen order,
// which is the tie-break for ranked listings.
type Counts struct {
	order  []string
	counts map[string]int
}

// NewCounts creates an empty counter.
func NewCounts() *Counts {
	return &Counts{counts: make(map[string]int)}
}

// Add increments the count for category. Empty categories are ignored.
func (c *Counts) Add(category string) {
	if c == nil || strings.TrimSpace(category) == "" {
		return
	}
	if _, seen := c.counts[category]; !seen {
		c.order = append(c.order, category)
	}
	c.counts[category]++
}

// Get returns the count for category.
func (c *Counts) Get(category string) int {
	if c == nil {
		return 0
	}
	return c.counts[category]
}

// Len returns the number of distinct categories.
func (c *Counts) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Entries returns all categories with counts in first-seen order.
func (c *Counts) Entries() []Entry {
	if c == nil {
		return nil
	}
	entries := make([]Entry, 0, len(c.order))
	for _, category := range c.order {
		entries = append(entries, Entry{Category: category, Count: c.counts[category]})
	}
	return entries
}

// CountBy tallies a single-valued categorical field across the collection.
func CountBy(rs []assessment.Response, key func(assessment.Response) string) *Counts {
	counts := NewCounts()
	for _, r := range rs {
		counts.Add(key(r))
	}
	return counts
}

// CountByMulti tallies a multi-valued field: every selected option in every
// record contributes one count.
func CountByMulti(rs []assessment.Response, key func(assessment.Response) []string) *Counts {
	counts := NewCounts()
	for _, r := range rs {
		for _, value := range key(r) {
			counts.Add(value)
		}
	}
	return counts
}

// MeanSatisfaction is the arithmetic mean of the satisfaction field, 0 for
// an empty collection.
func MeanSatisfaction(rs []assessment.Response) float64 {
	if len(rs) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rs {
		sum += r.Satisfaction
	}
	return float64(sum) / float64(len(rs))
}

// Proportion is the fraction of records satisfying pred, 0 for empty input.
func Proportion(rs []assessment.Response, pred func(assessment.Response) bool) float64 {
	if len(rs) == 0 {
		return 0
	}
	matched := 0
	for _, r := range rs {
		if pred(r) {
			matched++
		}
	}
	return float64(matched) / float64(len(rs))
}

// TopN returns the n highest-counted categories, count descending, ties
// broken by first-seen order.
func TopN(counts *Counts, n int) []Entry {
	entries := counts.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// HasFinancialChallenges reports a "Yes" on the financial challenge flag.
func HasFinancialChallenges(r assessment.Response) bool {
	return r.FinancialChallenges == assessment.AnswerYes
}

// HasAcademicChallenges reports a "Yes" on the academic difficulty flag.
func HasAcademicChallenges(r assessment.Response) bool {
	return r.AcademicChallenges == assessment.AnswerYes
}

// BuildReport applies the fixed threshold rules and returns the triggered
// findings. An empty collection yields no findings.
func BuildReport(rs []assessment.Response) []Finding {
	if len(rs) == 0 {
		return nil
	}

	var findings []Finding

	if MeanSatisfaction(rs) < lowSatisfactionMean {
		findings = append(findings, Finding{
			Code:    FindingLowSatisfaction,
			Message: "Average satisfaction is below 3. Prioritize team morale and addressing concerns at the retreat.",
		})
	}

	if Proportion(rs, HasFinancialChallenges) > challengeProportion {
		findings = append(findings, Finding{
			Code:    FindingFinancialSupport,
			Message: "Over 30% of Council members report financial challenges. Consider discussing stipends, transportation support, or flexible scheduling.",
		})
	}

	if Proportion(rs, HasAcademicChallenges) > challengeProportion {
		findings = append(findings, Finding{
			Code:    FindingAcademicBalance,
			Message: "Significant academic challenges reported. Include time management training and consider lighter Council commitments during exam periods.",
		})
	}

	priorities := CountByMulti(rs, func(r assessment.Response) []string { return r.RetreatPriorities })
	if priorities.Len() > 0 {
		top := TopN(priorities, focusAreaCount)
		names := make([]string, 0, len(top))
		for _, entry := range top {
			names = append(names, entry.Category)
		}
		findings = append(findings, Finding{
			Code:    FindingFocusAreas,
			Message: fmt.Sprintf("Most requested retreat priorities: %s. Plan retreat sessions accordingly.", strings.Join(names, "; ")),
		})
	}

	return findings
}

// Summary is the dashboard aggregate over a collection.
type Summary struct {
	TotalResponses           int            `json:"total_responses"`
	MeanSatisfaction         float64        `json:"mean_satisfaction"`
	FinancialChallengeCount  int            `json:"financial_challenge_count"`
	AcademicChallengeCount   int            `json:"academic_challenge_count"`
	SatisfactionDistribution map[string]int `json:"satisfaction_distribution"`
	SupportGaps              []Entry        `json:"support_gaps"`
	RetreatPriorities        []Entry        `json:"retreat_priorities"`
	LatestTimestamp          string         `json:"latest_timestamp,omitempty"`
	Findings                 []Finding      `json:"findings"`
}

// BuildSummary computes the full dashboard aggregate.
func BuildSummary(rs []assessment.Response) Summary {
	summary := Summary{
		TotalResponses:           len(rs),
		MeanSatisfaction:         MeanSatisfaction(rs),
		SatisfactionDistribution: make(map[string]int),
		Findings:                 BuildReport(rs),
	}

	for _, r := range rs {
		if label, ok := assessment.SatisfactionLabels[r.Satisfaction]; ok {
			summary.SatisfactionDistribution[label]++
		}
		if HasFinancialChallenges(r) {
			summary.FinancialChallengeCount++
		}
		if HasAcademicChallenges(r) {
			summary.AcademicChallengeCount++
		}
	}
	if len(rs) > 0 {
		summary.LatestTimestamp = rs[len(rs)-1].Timestamp
	}

	gaps := CountByMulti(rs, func(r assessment.Response) []string { return r.SupportGaps })
	summary.SupportGaps = TopN(gaps, gaps.Len())
	priorities := CountByMulti(rs, func(r assessment.Response) []string { return r.RetreatPriorities })
	summary.RetreatPriorities = TopN(priorities, priorities.Len())

	return summary
}
