package model

import "strings"

// ProjectedFields lists the stored field names a projection may reference.
var ProjectedFields = []string{
	"fullName", "registrationNumber", "mobileNumber", "studentMail", "achievementCategory",
	"title", "description", "userImage", "certificateProof", "details", "submissionDate",
	"approved", "overAllTop10", "archived", "order", "professorEmail", "professorName", "remarks",
}

// ResolveProjection merges a whitelist and a blacklist into the set of fields kept.
// With a whitelist only listed fields survive; the blacklist then removes from what is left.
// The id is always kept.
func ResolveProjection(whitelist, blacklist []string) map[string]bool {
	keep := make(map[string]bool, len(ProjectedFields))
	if len(clean(whitelist)) > 0 {
		for _, f := range clean(whitelist) {
			keep[f] = true
		}
	} else {
		for _, f := range ProjectedFields {
			keep[f] = true
		}
	}
	for _, f := range clean(blacklist) {
		delete(keep, f)
	}
	return keep
}

func clean(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" && f != "_id" {
			out = append(out, f)
		}
	}
	return out
}

// Project zeroes every field not kept by the projection.
func Project(a Achievement, whitelist, blacklist []string) Achievement {
	if len(clean(whitelist)) == 0 && len(clean(blacklist)) == 0 {
		return a
	}
	keep := ResolveProjection(whitelist, blacklist)
	p := Achievement{ID: a.ID}
	if keep["fullName"] {
		p.FullName = a.FullName
	}
	if keep["registrationNumber"] {
		p.RegistrationNumber = a.RegistrationNumber
	}
	if keep["mobileNumber"] {
		p.MobileNumber = a.MobileNumber
	}
	if keep["studentMail"] {
		p.StudentMail = a.StudentMail
	}
	if keep["achievementCategory"] {
		p.AchievementCategory = a.AchievementCategory
	}
	if keep["title"] {
		p.Title = a.Title
	}
	if keep["description"] {
		p.Description = a.Description
	}
	if keep["userImage"] {
		p.UserImage = a.UserImage
	}
	if keep["certificateProof"] {
		p.CertificateProof = a.CertificateProof
	}
	if keep["details"] {
		p.Details = a.Details
	}
	if keep["submissionDate"] {
		p.SubmissionDate = a.SubmissionDate
	}
	if keep["approved"] {
		p.Approved = a.Approved
	}
	if keep["overAllTop10"] {
		p.OverAllTop10 = a.OverAllTop10
	}
	if keep["archived"] {
		p.Archived = a.Archived
	}
	if keep["order"] {
		p.Order = a.Order
	}
	if keep["professorEmail"] {
		p.ProfessorEmail = a.ProfessorEmail
	}
	if keep["professorName"] {
		p.ProfessorName = a.ProfessorName
	}
	if keep["remarks"] {
		p.Remarks = a.Remarks
	}
	return p
}
