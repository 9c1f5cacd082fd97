package insights

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/utechsu/councilpulse/internal/assessment"
)

func responsesWithSatisfaction(values ...int) []assessment.Response {
	rs := make([]assessment.Response, len(values))
	for i, v := range values {
		rs[i] = assessment.Response{Satisfaction: v}
	}
	return rs
}

func TestMeanSatisfaction(t *testing.T) {
	rs := responsesWithSatisfaction(5, 4, 3, 2, 1)
	if got := MeanSatisfaction(rs); got != 3.0 {
		t.Fatalf("expected mean 3.0, got %v", got)
	}
}

func TestMeanSatisfactionEmpty(t *testing.T) {
	if got := MeanSatisfaction(nil); got != 0 {
		t.Fatalf("expected 0 for empty collection, got %v", got)
	}
}

func TestProportionEmpty(t *testing.T) {
	got := Proportion(nil, HasFinancialChallenges)
	if got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
}

func TestCountByMulti(t *testing.T) {
	rs := []assessment.Response{
		{RetreatPriorities: []string{"Team building", "Skills training"}},
		{RetreatPriorities: []string{"Team building"}},
	}
	counts := CountByMulti(rs, func(r assessment.Response) []string { return r.RetreatPriorities })

	if got := counts.Get("Team building"); got != 2 {
		t.Fatalf("expected Team building count 2, got %d", got)
	}
	if got := counts.Get("Skills training"); got != 1 {
		t.Fatalf("expected Skills training count 1, got %d", got)
	}
	if counts.Len() != 2 {
		t.Fatalf("expected 2 categories, got %d", counts.Len())
	}
}

func TestCountBySatisfactionLevels(t *testing.T) {
	rs := responsesWithSatisfaction(5, 5, 3)
	counts := CountBy(rs, func(r assessment.Response) string {
		return assessment.SatisfactionLabels[r.Satisfaction]
	})
	if got := counts.Get("Very Satisfied"); got != 2 {
		t.Fatalf("expected 2 very satisfied, got %d", got)
	}
	if got := counts.Get("Neutral"); got != 1 {
		t.Fatalf("expected 1 neutral, got %d", got)
	}
}

func TestTopNOrdersByCountThenFirstSeen(t *testing.T) {
	counts := NewCounts()
	for _, category := range []string{"b", "a", "c", "a", "c", "b", "d"} {
		counts.Add(category)
	}
	// b, a, c all have 2; d has 1. First-seen order breaks the tie.
	got := TopN(counts, 3)
	want := []Entry{
		{Category: "b", Count: 2},
		{Category: "a", Count: 2},
		{Category: "c", Count: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("topN mismatch (-want +got):\n%s", diff)
	}
}

func TestTopNBeyondLength(t *testing.T) {
	counts := NewCounts()
	counts.Add("only")
	if got := TopN(counts, 5); len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
}

func findingCodes(findings []Finding) []string {
	codes := make([]string, 0, len(findings))
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	return codes
}

func hasCode(findings []Finding, code string) bool {
	for _, f := range findings {
		if f.Code == code {
			return true
		}
	}
	return false
}

func TestBuildReportFinancialThreshold(t *testing.T) {
	rs := make([]assessment.Response, 10)
	for i := range rs {
		rs[i].Satisfaction = 4
		if i < 4 {
			rs[i].FinancialChallenges = assessment.AnswerYes
		} else {
			rs[i].FinancialChallenges = assessment.AnswerNo
		}
	}

	findings := BuildReport(rs)
	if !hasCode(findings, FindingFinancialSupport) {
		t.Fatalf("expected financial finding at 4/10, got %v", findingCodes(findings))
	}

	// Drop to 2/10; the finding must disappear.
	rs[2].FinancialChallenges = assessment.AnswerNo
	rs[3].FinancialChallenges = assessment.AnswerNo
	findings = BuildReport(rs)
	if hasCode(findings, FindingFinancialSupport) {
		t.Fatalf("unexpected financial finding at 2/10: %v", findingCodes(findings))
	}
}

func TestBuildReportLowSatisfaction(t *testing.T) {
	low := responsesWithSatisfaction(1, 2, 3)
	if !hasCode(BuildReport(low), FindingLowSatisfaction) {
		t.Fatal("expected low satisfaction finding for mean 2.0")
	}

	high := responsesWithSatisfaction(3, 4, 5)
	if hasCode(BuildReport(high), FindingLowSatisfaction) {
		t.Fatal("unexpected low satisfaction finding for mean 4.0")
	}
}

func TestBuildReportAcademicThreshold(t *testing.T) {
	rs := make([]assessment.Response, 5)
	for i := range rs {
		rs[i].Satisfaction = 4
		if i < 2 {
			rs[i].AcademicChallenges = assessment.AnswerYes
		}
	}
	if !hasCode(BuildReport(rs), FindingAcademicBalance) {
		t.Fatal("expected academic finding at 2/5")
	}
}

func TestBuildReportFocusAreas(t *testing.T) {
	rs := []assessment.Response{
		{Satisfaction: 4, RetreatPriorities: []string{"Team building and Council unity", "Skills training and workshops"}},
		{Satisfaction: 4, RetreatPriorities: []string{"Team building and Council unity", "Strategic planning for the year"}},
		{Satisfaction: 4, RetreatPriorities: []string{"Team building and Council unity", "Skills training and workshops", "Council member wellness and self-care"}},
	}

	findings := BuildReport(rs)
	var focus *Finding
	for i := range findings {
		if findings[i].Code == FindingFocusAreas {
			focus = &findings[i]
		}
	}
	if focus == nil {
		t.Fatalf("expected focus areas finding, got %v", findingCodes(findings))
	}
	if !strings.Contains(focus.Message, "Team building and Council unity") {
		t.Fatalf("expected top priority named in message, got %q", focus.Message)
	}
	if !strings.Contains(focus.Message, "Skills training and workshops") {
		t.Fatalf("expected second priority named in message, got %q", focus.Message)
	}
}

func TestBuildReportEmptyCollection(t *testing.T) {
	if findings := BuildReport(nil); len(findings) != 0 {
		t.Fatalf("expected no findings for empty collection, got %v", findingCodes(findings))
	}
}

func TestBuildSummary(t *testing.T) {
	rs := []assessment.Response{
		{Timestamp: "2026-08-20T10:00:00Z", Satisfaction: 5, FinancialChallenges: assessment.AnswerYes, SupportGaps: []string{"Training and professional development"}},
		{Timestamp: "2026-08-21T10:00:00Z", Satisfaction: 3, AcademicChallenges: assessment.AnswerYes},
	}

	summary := BuildSummary(rs)
	if summary.TotalResponses != 2 {
		t.Fatalf("expected 2 responses, got %d", summary.TotalResponses)
	}
	if summary.MeanSatisfaction != 4.0 {
		t.Fatalf("expected mean 4.0, got %v", summary.MeanSatisfaction)
	}
	if summary.FinancialChallengeCount != 1 || summary.AcademicChallengeCount != 1 {
		t.Fatalf("unexpected challenge counts: %d, %d", summary.FinancialChallengeCount, summary.AcademicChallengeCount)
	}
	if summary.SatisfactionDistribution["Very Satisfied"] != 1 {
		t.Fatalf("unexpected distribution: %v", summary.SatisfactionDistribution)
	}
	if summary.LatestTimestamp != "2026-08-21T10:00:00Z" {
		t.Fatalf("unexpected latest timestamp: %s", summary.LatestTimestamp)
	}
	if len(summary.SupportGaps) != 1 {
		t.Fatalf("expected 1 support gap entry, got %v", summary.SupportGaps)
	}
}
