// Package resume validates resume builder submissions.
package resume

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Resume is the payload produced by the multi-step resume form.
type Resume struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Summary      string       `json:"summary,omitempty"`
	Experiences  []Experience `json:"experiences" validate:"dive"`
	Education    []Education  `json:"education" validate:"dive"`
	Skills       []string     `json:"skills"`
}

type PersonalInfo struct {
	FullName  string `json:"fullName" validate:"min=2"`
	Email     string `json:"email" validate:"email"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,min=10"`
	Location  string `json:"location,omitempty"`
	Portfolio string `json:"portfolio,omitempty" validate:"omitempty,url"`
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`
}

type Experience struct {
	Company     string `json:"company" validate:"required"`
	Position    string `json:"position" validate:"required"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current,omitempty"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	Institution  string `json:"institution" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
	StartDate    string `json:"startDate" validate:"required"`
	EndDate      string `json:"endDate,omitempty"`
	Current      bool   `json:"current,omitempty"`
}

// FieldError is one failed rule, addressed by its JSON path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var messages = map[string]string{
	"FullName":    "Name must be at least 2 characters.",
	"Email":       "Invalid email address.",
	"Phone":       "Phone number must be at least 10 digits.",
	"Portfolio":   "Invalid URL.",
	"LinkedIn":    "Invalid LinkedIn URL.",
	"Company":     "Company name is required",
	"Position":    "Position is required",
	"StartDate":   "Start date is required",
	"Institution": "Institution name is required",
	"Degree":      "Degree is required",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks r and returns every failing field in declaration order.
// A nil result means the resume is valid.
func Validate(r Resume) []FieldError {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.StructField()]
		if !ok {
			msg = fe.Error()
		}
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return out
}
