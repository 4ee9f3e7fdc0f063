package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultOrder is the placeholder rank a fresh submission gets before an admin places it.
const DefaultOrder = 20

// Top10Capacity is the maximum number of records flagged overAllTop10.
const Top10Capacity = 10

type Media struct {
	Data        []byte `bson:"data" json:"data"`
	ContentType string `bson:"contentType" json:"contentType"`
}

type Achievement struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName            string             `bson:"fullName" json:"fullName"`
	RegistrationNumber  string             `bson:"registrationNumber" json:"registrationNumber"`
	MobileNumber        string             `bson:"mobileNumber" json:"mobileNumber"`
	StudentMail         string             `bson:"studentMail" json:"studentMail"`
	AchievementCategory string             `bson:"achievementCategory" json:"achievementCategory"`
	Title               string             `bson:"title" json:"title"`
	Description         string             `bson:"description" json:"description"`
	UserImage           *Media             `bson:"userImage,omitempty" json:"userImage,omitempty"`
	CertificateProof    *Media             `bson:"certificateProof,omitempty" json:"certificateProof,omitempty"`
	Details             map[string]any     `bson:"details,omitempty" json:"details,omitempty"`
	SubmissionDate      time.Time          `bson:"submissionDate" json:"submissionDate"`
	Approved            *time.Time         `bson:"approved" json:"approved"`
	OverAllTop10        bool               `bson:"overAllTop10" json:"overAllTop10"`
	Archived            bool               `bson:"archived" json:"archived"`
	Order               *int               `bson:"order,omitempty" json:"order,omitempty"`
	ProfessorEmail      string             `bson:"professorEmail" json:"professorEmail"`
	ProfessorName       string             `bson:"professorName" json:"professorName"`
	Remarks             string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

// Status classifies the record through its approval timestamp.
func (a *Achievement) Status() ApprovalStatus {
	if a == nil {
		return StatusPending
	}
	return DeriveStatus(a.Approved)
}

// OrderValue returns the stored rank and whether one is set.
func (a *Achievement) OrderValue() (int, bool) {
	if a.Order == nil {
		return 0, false
	}
	return *a.Order, true
}

// Clone copies the record so the copy can be mutated without touching the original.
func (a Achievement) Clone() Achievement {
	c := a
	if a.Approved != nil {
		t := *a.Approved
		c.Approved = &t
	}
	if a.Order != nil {
		o := *a.Order
		c.Order = &o
	}
	if a.Details != nil {
		c.Details = make(map[string]any, len(a.Details))
		for k, v := range a.Details {
			c.Details[k] = v
		}
	}
	return c
}

// HexID is the string form of the record id used on the wire.
func (a *Achievement) HexID() string {
	return a.ID.Hex()
}

func IntPtr(v int) *int {
	return &v
}

func BoolPtr(v bool) *bool {
	return &v
}

// AchievementFilter is the equality/lower-bound filter accepted by the record store.
type AchievementFilter struct {
	ID             string
	Category       string
	ProfessorEmail string
	ApprovedFrom   *time.Time
	Archived       *bool
	Whitelist      []string
	Blacklist      []string
}

// Fields is a partial update keyed by the stored (bson/json) field name.
type Fields map[string]any

type PatchItem struct {
	ID     string
	Fields Fields
}

type BatchResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// MediaFields are excluded from list reads that do not need the blobs.
var MediaFields = []string{"userImage", "certificateProof"}
