package assessment

import (
	"strconv"
	"strings"
)

// EncodeRow flattens a response into its 29-column row form. Scalars pass
// through as-is, satisfaction is stringified, multi-valued fields are joined
// into a single delimited cell.
func EncodeRow(r Response) []string {
	return []string{
		r.Timestamp,
		r.Name,
		r.Email,
		r.Position,
		r.Tenure,
		strconv.Itoa(r.Satisfaction),
		r.RoleDislikes,
		r.ExecutiveConcerns,
		r.CouncilDynamics,
		r.StudentBodyChallenges,
		r.Achievements,
		r.Weaknesses,
		r.SkillsNeeded,
		r.ConstitutionKnowledge,
		joinCell(r.SupportGaps),
		r.SupportDetails,
		r.CodeOfConduct,
		r.FinancialChallenges,
		joinCell(r.FinancialImpact),
		r.FinancialDetails,
		r.AcademicChallenges,
		joinCell(r.AcademicImpact),
		r.AcademicDetails,
		joinCell(r.SupportNeeds),
		r.RetreatGoals,
		r.TrainingTopics,
		joinCell(r.RetreatPriorities),
		r.PreviousRetreats,
		r.AdditionalComments,
	}
}

// DecodeRow rebuilds a response from a flat row. Decoding never fails: short
// rows are padded with empty cells (legacy data tolerance), an empty or
// unparseable satisfaction cell resolves to the neutral default, and empty
// multi-valued cells decode to empty sequences. A single corrupt cell must
// not block access to the rest of the collection.
func DecodeRow(row []string) Response {
	if len(row) < NumFields {
		padded := make([]string, NumFields)
		copy(padded, row)
		row = padded
	}

	return Response{
		Timestamp:             row[0],
		Name:                  row[1],
		Email:                 row[2],
		Position:              row[3],
		Tenure:                row[4],
		Satisfaction:          parseSatisfaction(row[5]),
		RoleDislikes:          row[6],
		ExecutiveConcerns:     row[7],
		CouncilDynamics:       row[8],
		StudentBodyChallenges: row[9],
		Achievements:          row[10],
		Weaknesses:            row[11],
		SkillsNeeded:          row[12],
		ConstitutionKnowledge: row[13],
		SupportGaps:           splitCell(row[14]),
		SupportDetails:        row[15],
		CodeOfConduct:         row[16],
		FinancialChallenges:   row[17],
		FinancialImpact:       splitCell(row[18]),
		FinancialDetails:      row[19],
		AcademicChallenges:    row[20],
		AcademicImpact:        splitCell(row[21]),
		AcademicDetails:       row[22],
		SupportNeeds:          splitCell(row[23]),
		RetreatGoals:          row[24],
		TrainingTopics:        row[25],
		RetreatPriorities:     splitCell(row[26]),
		PreviousRetreats:      row[27],
		AdditionalComments:    row[28],
	}
}

func joinCell(values []string) string {
	return strings.Join(values, cellDelimiter)
}

// splitCell returns a non-nil slice so decoded records serialize
// multi-valued fields as JSON arrays, never null.
func splitCell(cell string) []string {
	if cell == "" {
		return []string{}
	}
	return strings.Split(cell, cellDelimiter)
}

func parseSatisfaction(cell string) int {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return SatisfactionNeutral
	}
	v, err := strconv.Atoi(cell)
	if err != nil {
		return SatisfactionNeutral
	}
	return clampSatisfaction(v)
}
