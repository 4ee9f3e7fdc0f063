package notify

import (
	"bytes"
	"html/template"
	"time"

	"github.com/pkg/errors"
)

var templates = template.Must(template.New("mail").Parse(`
{{define "submission"}}
<p>Dear {{.ProfessorName}},</p>
<p>A new achievement has been submitted to the Wall of Fame and is waiting for your approval.</p>
<ul>
  <li><strong>Student:</strong> {{.FullName}}</li>
  <li><strong>Registration number:</strong> {{.RegistrationNumber}}</li>
  <li><strong>Phone:</strong> {{.MobileNumber}}</li>
  <li><strong>Category:</strong> {{.Category}}</li>
  <li><strong>Submitted:</strong> {{.SubmissionDate.Format "02 Jan 2006 15:04"}}</li>
</ul>
<p>Review it on the <a href="{{.DashboardURL}}">dashboard</a>.</p>
{{end}}

{{define "status"}}
<p>Dear {{.FullName}},</p>
{{if .Approved}}
<p>Your achievement titled <strong>{{.Title}}</strong> has been approved.</p>
<p><strong>Description:</strong> {{.Description}}</p>
{{else}}
<p>Your achievement has been rejected.</p>
{{end}}
<p>If you have any questions, feel free to contact your professor at <a href="mailto:{{.ProfessorEmail}}">{{.ProfessorEmail}}</a>.</p>
<p>Best regards,<br/>{{.ProfessorName}}</p>
{{end}}

{{define "forward"}}
<p>Dear Professor,</p>
<p>We have received an achievement submission from the student <strong>{{.FullName}}</strong>.</p>
<p>Achievement Title: <strong>{{.Title}}</strong></p>
<p>This achievement has been transferred to you from <strong>{{.FromProfessor}}</strong>.</p>
{{if .Message}}<p>Message: {{.Message}}</p>{{end}}
<p>Please review and approve this achievement at your earliest convenience on the <a href="{{.DashboardURL}}">dashboard</a>.</p>
<p>Thank you!</p>
{{end}}

{{define "remarks"}}
<p>Dear {{.FullName}},</p>
<p>You have received a new remark regarding your achievement submission:</p>
<p><strong>Remarks:</strong> {{.Remarks}}</p>
<p>If you have any questions, feel free to contact your professor at <a href="mailto:{{.ProfessorEmail}}">{{.ProfessorEmail}}</a>.</p>
<p>Best regards,</p>
{{end}}

{{define "otp"}}
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Verification Code</h2>
  <p>Your verification code is:</p>
  <div style="background-color: #f4f4f4; padding: 20px; text-align: center; font-size: 24px; letter-spacing: 5px; margin: 20px 0;">
    <strong>{{.Code}}</strong>
  </div>
  <p>This code will expire in {{.Minutes}} minutes.</p>
  <p>If you didn't request this code, please ignore this email.</p>
</div>
{{end}}
`))

type SubmissionData struct {
	ProfessorName      string
	FullName           string
	RegistrationNumber string
	MobileNumber       string
	Category           string
	SubmissionDate     time.Time
	DashboardURL       string
}

type StatusData struct {
	FullName       string
	Approved       bool
	Title          string
	Description    string
	ProfessorEmail string
	ProfessorName  string
}

type ForwardData struct {
	FullName      string
	Title         string
	FromProfessor string
	Message       string
	DashboardURL  string
}

type RemarksData struct {
	FullName       string
	Remarks        string
	ProfessorEmail string
}

type OTPData struct {
	Code    string
	Minutes int
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, "rendering %s mail", name)
	}
	return buf.String(), nil
}

func SubmissionMail(to string, d SubmissionData) (Message, error) {
	html, err := render("submission", d)
	return Message{To: to, Subject: "Approval Request for Achievement of " + d.FullName, HTML: html}, err
}

func StatusMail(to string, d StatusData) (Message, error) {
	html, err := render("status", d)
	return Message{To: to, Subject: "Achievement Status", HTML: html}, err
}

func ForwardMail(to string, d ForwardData) (Message, error) {
	html, err := render("forward", d)
	return Message{To: to, Subject: "Approval Request for Achievement (Transferred from " + d.FromProfessor + ")", HTML: html}, err
}

func RemarksMail(to string, d RemarksData) (Message, error) {
	html, err := render("remarks", d)
	return Message{To: to, Subject: "New Remark regarding your Wall Of Fame Submission", HTML: html}, err
}

func OTPMail(to string, d OTPData) (Message, error) {
	html, err := render("otp", d)
	return Message{To: to, Subject: "Your Verification Code", HTML: html}, err
}
