// Package assessment defines the council pre-retreat response record, its
// fixed field schema, and the codecs between the structured record and its
// flat row form used by the tabular remote backend.
package assessment

import (
	"strings"
	"time"
)

// NumFields is the number of columns in the encoded row form. Column
// position is field identity; the order of FieldNames is a contract shared
// with the remote spreadsheet layout and the CSV export.
const NumFields = 29

// Satisfaction bounds and the neutral default used when a stored value is
// absent or unparseable.
const (
	SatisfactionMin     = 1
	SatisfactionMax     = 5
	SatisfactionNeutral = 3
)

// cellDelimiter joins multi-valued fields into a single spreadsheet cell.
const cellDelimiter = ", "

// FieldNames lists the encoded-row columns in order.
var FieldNames = []string{
	"timestamp",
	"name",
	"email",
	"position",
	"tenure",
	"satisfaction",
	"role_dislikes",
	"executive_concerns",
	"council_dynamics",
	"student_body_challenges",
	"achievements",
	"weaknesses",
	"skills_needed",
	"constitution_knowledge",
	"support_gaps",
	"support_details",
	"code_of_conduct",
	"financial_challenges",
	"financial_impact",
	"financial_details",
	"academic_challenges",
	"academic_impact",
	"academic_details",
	"support_needs",
	"retreat_goals",
	"training_topics",
	"retreat_priorities",
	"previous_retreats",
	"additional_comments",
}

// Response is one submitted assessment. Records are immutable once created;
// corrections are modeled as new records, never in-place edits.
type Response struct {
	Timestamp             string   `json:"timestamp"`
	Name                  string   `json:"name"`
	Email                 string   `json:"email"`
	Position              string   `json:"position"`
	Tenure                string   `json:"tenure"`
	Satisfaction          int      `json:"satisfaction"`
	RoleDislikes          string   `json:"role_dislikes"`
	ExecutiveConcerns     string   `json:"executive_concerns"`
	CouncilDynamics       string   `json:"council_dynamics"`
	StudentBodyChallenges string   `json:"student_body_challenges"`
	Achievements          string   `json:"achievements"`
	Weaknesses            string   `json:"weaknesses"`
	SkillsNeeded          string   `json:"skills_needed"`
	ConstitutionKnowledge string   `json:"constitution_knowledge"`
	SupportGaps           []string `json:"support_gaps"`
	SupportDetails        string   `json:"support_details"`
	CodeOfConduct         string   `json:"code_of_conduct"`
	FinancialChallenges   string   `json:"financial_challenges"`
	FinancialImpact       []string `json:"financial_impact"`
	FinancialDetails      string   `json:"financial_details"`
	AcademicChallenges    string   `json:"academic_challenges"`
	AcademicImpact        []string `json:"academic_impact"`
	AcademicDetails       string   `json:"academic_details"`
	SupportNeeds          []string `json:"support_needs"`
	RetreatGoals          string   `json:"retreat_goals"`
	TrainingTopics        string   `json:"training_topics"`
	RetreatPriorities     []string `json:"retreat_priorities"`
	PreviousRetreats      string   `json:"previous_retreats"`
	AdditionalComments    string   `json:"additional_comments"`
}

// Stamp assigns a server-side submission timestamp when none is set.
func (r *Response) Stamp(now time.Time) {
	if r == nil {
		return
	}
	if strings.TrimSpace(r.Timestamp) == "" {
		r.Timestamp = now.UTC().Format(time.RFC3339)
	}
}

// Normalize clamps the satisfaction value into its bounds and sanitizes
// multi-valued selections so that no single value embeds the cell delimiter.
// A zero satisfaction (unset) resolves to the neutral default.
func (r *Response) Normalize() {
	if r == nil {
		return
	}
	r.Satisfaction = clampSatisfaction(r.Satisfaction)
	r.SupportGaps = sanitizeValues(r.SupportGaps)
	r.FinancialImpact = sanitizeValues(r.FinancialImpact)
	r.AcademicImpact = sanitizeValues(r.AcademicImpact)
	r.SupportNeeds = sanitizeValues(r.SupportNeeds)
	r.RetreatPriorities = sanitizeValues(r.RetreatPriorities)
}

func clampSatisfaction(v int) int {
	if v == 0 {
		return SatisfactionNeutral
	}
	if v < SatisfactionMin {
		return SatisfactionMin
	}
	if v > SatisfactionMax {
		return SatisfactionMax
	}
	return v
}

// sanitizeValues collapses the cell delimiter inside individual selections.
// Selections come from fixed option sets, so this is a guard against free
// text leaking into a multi-valued field, not a wire-format change.
func sanitizeValues(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, strings.ReplaceAll(v, cellDelimiter, ","))
	}
	return out
}
