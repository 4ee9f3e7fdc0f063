package model

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldOption   FieldType = "option"
	FieldDocument FieldType = "document"
)

type FormField struct {
	Name     string
	Type     FieldType
	Required bool
	Options  []string
}

const (
	CategoryOnlineCourses       = "ONLINE_COURSES"
	CategoryOutreachPrograms    = "OUTREACH_PROGRAMS"
	CategoryEventParticipation  = "EVENT_PARTICIPATION"
	CategoryAwards              = "AWARDS"
	CategoryScholarships        = "SCHOLARSHIPS"
	CategoryResearchPublication = "RESEARCH_PUBLICATION"
	CategoryAchievements        = "ACHIEVEMENTS"
	CategoryInternships         = "INTERNSHIPS"
	CategoryStartups            = "STARTUPS"
	CategoryInnovations         = "INNOVATIONS"
	CategoryBusinessExams       = "BUSINESS_EXAMS"
)

// Categories in display order.
var Categories = []string{
	CategoryOnlineCourses,
	CategoryOutreachPrograms,
	CategoryEventParticipation,
	CategoryAwards,
	CategoryScholarships,
	CategoryResearchPublication,
	CategoryAchievements,
	CategoryInternships,
	CategoryStartups,
	CategoryInnovations,
	CategoryBusinessExams,
}

func text(name string) FormField { return FormField{Name: name, Type: FieldText, Required: true} }
func doc(name string) FormField  { return FormField{Name: name, Type: FieldDocument, Required: true} }

var summaryFields = []FormField{text("title"), text("description")}

func withSummary(fields ...FormField) []FormField {
	return append(fields, summaryFields...)
}

// CategoryFields lists the category-specific fields a submission must carry.
var CategoryFields = map[string][]FormField{
	CategoryOnlineCourses: withSummary(
		text("courseName"), text("courseCode"), text("startDate"), text("endDate"),
		text("duration"), text("platform"), doc("certificatePDF"),
	),
	CategoryOutreachPrograms: withSummary(
		text("activityName"), text("organizingUnit"), text("schemeName"), text("date"), doc("reportPDF"),
	),
	CategoryEventParticipation: withSummary(
		text("eventName"),
		FormField{Name: "eventType", Type: FieldOption, Required: true,
			Options: []string{"Workshop", "Seminar", "Competition", "Conference", "Hackathon", "Other"}},
		text("date"), doc("certificatePDF"),
	),
	CategoryAwards: withSummary(
		text("awardName"), text("organization"), text("level"), text("date"), text("amount"), doc("awardPdf"),
	),
	CategoryScholarships: withSummary(
		text("scholarshipName"), text("issuingAuthority"), text("amount"), doc("proofPDF"),
	),
	CategoryResearchPublication: withSummary(
		text("publicationTitle"), text("journalName"), text("publicationType"), text("date"), doc("proofPDF"),
	),
	CategoryAchievements: withSummary(
		text("achievementName"), text("date"), doc("proofPDF"),
	),
	CategoryInternships: withSummary(
		text("organization"), text("startDate"), text("endDate"), text("stipend"), doc("internshipCertificatePdf"),
	),
	CategoryStartups: withSummary(
		text("startupName"), text("nature"), text("yearCommenced"), text("certificate"), doc("registrationLetterPdf"),
	),
	CategoryInnovations: withSummary(
		text("innovationName"), text("nature"), text("sanctionedAmount"), text("receivedAmount"),
		text("letterDate"), doc("commercializationLetterPdf"),
	),
	CategoryBusinessExams: withSummary(
		text("examName"), text("type"), text("activityName"), doc("proofPDF"),
	),
}

// DateFields must be YYYY-MM-DD when present.
var DateFields = map[string]bool{
	"date":       true,
	"startDate":  true,
	"endDate":    true,
	"letterDate": true,
}

func IsCategory(name string) bool {
	_, ok := CategoryFields[name]
	return ok
}
