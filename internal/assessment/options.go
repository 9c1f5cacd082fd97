package assessment

// Fixed option sets for the selection fields. These mirror the assessment
// form; multi-valued answers are drawn from them.

// YesNo values for the financial and academic challenge flags.
const (
	AnswerYes = "Yes"
	AnswerNo  = "No"
)

// SatisfactionLabels maps the bounded satisfaction scale to display labels.
var SatisfactionLabels = map[int]string{
	1: "Very Dissatisfied",
	2: "Dissatisfied",
	3: "Neutral",
	4: "Satisfied",
	5: "Very Satisfied",
}

// Tenures are the council tenure choices.
var Tenures = []string{
	"First year on Council",
	"Second year on Council",
	"Third year or more on Council",
}

// ConstitutionKnowledgeLevels rank self-assessed constitutional literacy.
var ConstitutionKnowledgeLevels = []string{
	"Very limited understanding",
	"Basic understanding",
	"Moderate understanding",
	"Strong understanding",
	"Expert understanding",
}

// SupportGapOptions are the areas where members may report lacking support.
var SupportGapOptions = []string{
	"Executive Board guidance and mentorship",
	"Fellow Council members collaboration",
	"University Administration support",
	"Financial resources for portfolio activities",
	"Students' Union Office resources and facilities",
	"Training and professional development",
	"Time management and workload balance",
	"Communication channels and information flow",
}

// FinancialImpactOptions describe what reported financial challenges affect.
var FinancialImpactOptions = []string{
	"My personal life and well-being",
	"My ability to fulfill my Council role",
	"My ability to maintain my academics",
}

// AcademicImpactOptions describe what reported academic difficulties affect.
var AcademicImpactOptions = []string{
	"My personal stress and well-being",
	"My ability to fulfill my Council role",
	"My GPA and academic standing",
}

// SupportNeedOptions are the offered support interventions.
var SupportNeedOptions = []string{
	"Time management and study skills workshop",
	"Financial literacy and budgeting resources",
	"Academic or leadership mentorship",
	"Access to counseling or wellness services",
	"More flexible Council meeting schedules",
}

// RetreatPriorityOptions are the selectable retreat focus areas.
var RetreatPriorityOptions = []string{
	"Team building and Council unity",
	"Strategic planning for the year",
	"Skills training and workshops",
	"Addressing conflicts and improving communication",
	"Constitution review and governance",
	"Improving student engagement strategies",
	"Council member wellness and self-care",
}

// Positions lists the council positions on the form.
var Positions = []string{
	"President",
	"1st Vice President Academic Affairs",
	"Vice President, Finance",
	"Vice President, Student Services",
	"Vice President, Public Relations",
	"Executive Secretary",
	"Faculty of Science and Sport Rep",
	"College of Health Sciences Rep",
	"Faculty of Education and Liberal Studies Rep",
	"School of Engineering Rep",
	"School of Computing and IT Rep",
	"School of Business Administration/JDSEEL Rep",
	"School of Building and Land Management Rep",
	"Caribbean School of Architecture Rep",
	"Faculty of Law Rep",
	"Western Campus Rep",
	"Resident Students' Rep",
	"Graduate Students' Rep",
	"International Students' Rep",
	"Joint Colleges of Medicine, Oral Health, and Veterinary Sciences Rep",
	"Director of Elections and Regulatory Affairs",
	"Director of Community Service",
	"Director of Health and Safety",
	"Director of Entertainment and Cultural Activities",
	"Director of Sport",
	"Director of Spiritual Development",
	"Director of Special Projects",
	"Editor in Chief",
	"Advisor to the President",
	"Advisor to the 1st Vice President",
	"Executive Assistant",
	"Special Advisor to VP Student Services",
	"President's Assistant",
}
