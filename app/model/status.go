package model

import (
	"strings"
	"time"
)

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// RejectionSentinel is the instant stored in `approved` to mean rejected.
// It is local midnight 2000-01-01 in IST, which is how the dashboard has always written it.
var RejectionSentinel = time.Date(1999, 12, 31, 18, 30, 0, 0, time.UTC)

// RejectionTolerance is the window around RejectionSentinel still read as rejected.
const RejectionTolerance = 10 * time.Second

// PublicApprovedFloor is the lower bound the public wall uses; it skips the sentinel.
var PublicApprovedFloor = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

// DeriveStatus maps an approval timestamp to its status. An approval that lands
// within RejectionTolerance of the sentinel is read as rejected.
func DeriveStatus(approved *time.Time) ApprovalStatus {
	if approved == nil {
		return StatusPending
	}
	diff := approved.Sub(RejectionSentinel)
	if diff < 0 {
		diff = -diff
	}
	if diff < RejectionTolerance {
		return StatusRejected
	}
	return StatusApproved
}

// ApprovedValue is the timestamp a status change writes.
func ApprovedValue(status ApprovalStatus, now time.Time) *time.Time {
	switch status {
	case StatusApproved:
		return &now
	case StatusRejected:
		t := RejectionSentinel
		return &t
	default:
		return nil
	}
}

func ParseStatus(s string) (ApprovalStatus, bool) {
	switch ApprovalStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	}
	return "", false
}

var approvedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02",
}

// ParseApproved coerces a wire value for `approved` into a timestamp.
// nil means pending; strings are parsed; anything else is a ValidationError.
func ParseApproved(v any) (*time.Time, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &t, nil
	case *time.Time:
		return t, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, nil
		}
		for _, layout := range approvedLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return &parsed, nil
			}
		}
		return nil, NewValidationError("approved", "invalid date: "+t)
	}
	return nil, NewValidationError("approved", "must be a date string or null")
}
