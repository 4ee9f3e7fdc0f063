package model

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"time"
)

var stringFields = map[string]bool{
	"fullName": true, "registrationNumber": true, "mobileNumber": true, "studentMail": true,
	"achievementCategory": true, "title": true, "description": true,
	"professorEmail": true, "professorName": true, "remarks": true,
}

var boolFields = map[string]bool{"overAllTop10": true, "archived": true}

// NormalizeFields coerces a decoded JSON patch into store-ready values.
// Fields that cannot be patched (id, media, submission date, client-only keys) are dropped.
// An empty result is a ValidationError.
func NormalizeFields(in map[string]any) (Fields, error) {
	out := make(Fields, len(in))
	for name, raw := range in {
		switch {
		case stringFields[name]:
			s, ok := raw.(string)
			if !ok && raw != nil {
				return nil, NewValidationError(name, "must be a string")
			}
			if name == "achievementCategory" && !IsCategory(s) {
				return nil, NewValidationError(name, "invalid achievement type: "+s)
			}
			out[name] = s
		case boolFields[name]:
			b, ok := raw.(bool)
			if !ok {
				return nil, NewValidationError(name, "must be a boolean")
			}
			out[name] = b
		case name == "order":
			o, err := toOrder(raw)
			if err != nil {
				return nil, err
			}
			out[name] = o
		case name == "approved":
			t, err := ParseApproved(raw)
			if err != nil {
				return nil, err
			}
			if t == nil {
				out[name] = nil
			} else {
				out[name] = t.UTC()
			}
		case name == "details":
			d, ok := raw.(map[string]any)
			if !ok {
				return nil, NewValidationError(name, "must be an object")
			}
			out[name] = d
		}
	}
	if len(out) == 0 {
		return nil, NewValidationError("", "no update fields provided")
	}
	return out, nil
}

func toOrder(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, NewValidationError("order", "must be an integer")
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, NewValidationError("order", "must be an integer")
		}
		return int(n), nil
	}
	return 0, NewValidationError("order", "must be an integer")
}

// ApplyFields merges normalized fields into the record and reports whether anything changed.
func ApplyFields(a *Achievement, f Fields) bool {
	before := a.Clone()
	for name, v := range f {
		switch name {
		case "fullName":
			a.FullName = asString(v)
		case "registrationNumber":
			a.RegistrationNumber = asString(v)
		case "mobileNumber":
			a.MobileNumber = asString(v)
		case "studentMail":
			a.StudentMail = asString(v)
		case "achievementCategory":
			a.AchievementCategory = asString(v)
		case "title":
			a.Title = asString(v)
		case "description":
			a.Description = asString(v)
		case "professorEmail":
			a.ProfessorEmail = asString(v)
		case "professorName":
			a.ProfessorName = asString(v)
		case "remarks":
			a.Remarks = asString(v)
		case "overAllTop10":
			a.OverAllTop10, _ = v.(bool)
		case "archived":
			a.Archived, _ = v.(bool)
		case "order":
			if o, ok := v.(int); ok {
				a.Order = IntPtr(o)
			}
		case "approved":
			switch t := v.(type) {
			case time.Time:
				a.Approved = &t
			case *time.Time:
				a.Approved = t
			default:
				a.Approved = nil
			}
		case "details":
			if d, ok := v.(map[string]any); ok {
				a.Details = d
			}
		}
	}
	return !reflect.DeepEqual(before, a.Clone())
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
