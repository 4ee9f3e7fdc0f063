package model

// Admin view query parameters. Axis values are "yes", "no" or empty.
type AdminViewQuery struct {
	Category string `query:"category"`
	Search   string `query:"q"`
	Pending  string `query:"pending" validate:"omitempty,oneof=yes no"`
	Rejected string `query:"rejected" validate:"omitempty,oneof=yes no"`
	Top10    string `query:"top10" validate:"omitempty,oneof=yes no"`
	Refresh  bool   `query:"refresh"`
}

type ReorderRequest struct {
	Section  string   `json:"section" validate:"required,oneof=top10 unarchived archived"`
	Category string   `json:"category"`
	IDs      []string `json:"ids" validate:"required,min=1,dive,required"`
}

type MoveRequest struct {
	Section  string `json:"section" validate:"required,oneof=top10 unarchived archived"`
	Category string `json:"category"`
	FromID   string `json:"fromId" validate:"required"`
	ToID     string `json:"toId" validate:"required"`
}

type StatusChangeRequest struct {
	Status      string `json:"status" validate:"required,oneof=approved rejected pending"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Silent      bool   `json:"silent"`
}

type ForwardRequest struct {
	ProfessorEmail string `json:"professorEmail" validate:"required,email"`
	ProfessorName  string `json:"professorName"`
	Message        string `json:"message"`
}

type RemarksRequest struct {
	Remarks string `json:"remarks" validate:"required"`
}

type SendMailRequest struct {
	Email   string `json:"email" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	HTML    string `json:"html" validate:"required"`
}

type GenerateOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

type CheckAdminRequest struct {
	Email string `json:"email" validate:"required"`
}

type DecryptRequest struct {
	Token string `json:"token" validate:"required"`
}

type DashboardQuery struct {
	Status   string `query:"status" validate:"omitempty,oneof=all pending approved rejected"`
	Category string `query:"category"`
	Search   string `query:"q"`
	From     string `query:"from"`
	To       string `query:"to"`
}
