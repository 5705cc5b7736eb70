// Package forms validates registration and event forms and turns validator
// failures into the messages shown next to each field.
package forms

import (
	"reflect"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joshua-takyi/enquiry/internal/models"
)

const Other = "Other"

var (
	BHKOptions = []string{"1 BHK", "2 BHK", "Shop", "Garage", Other}

	ServiceOptions = []string{
		"Packers and Movers",
		"CCTV",
		"Pest Control",
		"AC Servicing and Installation",
		"Wall Paper and Flooring",
		Other,
	}

	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

var validate = newValidator()

// Errors maps a json field name to a display message. Empty means valid.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

func (e Errors) Valid() bool {
	return len(e) == 0
}

// Registration is the public and admin lead form.
type Registration struct {
	Name         string `json:"name" validate:"notblank"`
	Phone        string `json:"phone" validate:"required,phone10"`
	BHK          string `json:"bhk" validate:"required,bhk"`
	OtherBHK     string `json:"otherBhk"`
	Services     string `json:"services" validate:"required,service"`
	OtherService string `json:"otherService"`
	Comment      string `json:"comment"`
}

// ResolvedBHK returns the free text override when "Other" is selected.
func (r *Registration) ResolvedBHK() string {
	if r.BHK == Other {
		return strings.TrimSpace(r.OtherBHK)
	}
	return r.BHK
}

func (r *Registration) ResolvedService() string {
	if r.Services == Other {
		return strings.TrimSpace(r.OtherService)
	}
	return r.Services
}

// EventForm is used by both create and edit. EndDate is optional.
type EventForm struct {
	EventName string `json:"eventName" validate:"notblank"`
	StartDate string `json:"startDate" validate:"required,date"`
	EndDate   string `json:"endDate" validate:"omitempty,date"`
}

var messages = map[string]map[string]string{
	"name": {
		"notblank": "Full name is required",
	},
	"phone": {
		"required": "Phone number is required",
		"phone10":  "Enter valid 10 digit phone number",
	},
	"bhk": {
		"required": "Please select BHK",
		"bhk":      "Please select a valid option",
	},
	"otherBhk": {
		"other": "Please specify BHK",
	},
	"services": {
		"required": "Please select service",
		"service":  "Please select a valid option",
	},
	"otherService": {
		"other": "Please specify service",
	},
	"eventName": {
		"notblank": "Event name is required",
	},
	"startDate": {
		"required": "Start date is required",
		"date":     "Enter a valid date",
	},
	"endDate": {
		"date":  "Enter a valid date",
		"after": "End time must be after start time.",
	},
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("bhk", func(fl validator.FieldLevel) bool {
		return slices.Contains(BHKOptions, fl.Field().String())
	})
	_ = v.RegisterValidation("service", func(fl validator.FieldLevel) bool {
		return slices.Contains(ServiceOptions, fl.Field().String())
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})
	v.RegisterStructValidation(registrationRules, Registration{})
	v.RegisterStructValidation(eventRules, EventForm{})
	return v
}

func registrationRules(sl validator.StructLevel) {
	r := sl.Current().Interface().(Registration)
	if r.BHK == Other && strings.TrimSpace(r.OtherBHK) == "" {
		sl.ReportError(r.OtherBHK, "otherBhk", "OtherBHK", "other", "")
	}
	if r.Services == Other && strings.TrimSpace(r.OtherService) == "" {
		sl.ReportError(r.OtherService, "otherService", "OtherService", "other", "")
	}
}

func eventRules(sl validator.StructLevel) {
	e := sl.Current().Interface().(EventForm)
	if e.EndDate == "" {
		return
	}
	start, err := models.ParseDate(e.StartDate)
	if err != nil {
		return
	}
	end, err := models.ParseDate(e.EndDate)
	if err != nil {
		return
	}
	if !end.After(start) {
		sl.ReportError(e.EndDate, "endDate", "EndDate", "after", "")
	}
}

// ValidateRegistration returns every failing field of r.
func ValidateRegistration(r Registration) Errors {
	return translate(validate.Struct(r))
}

// RegistrationFields are the json names ValidateField accepts.
var RegistrationFields = []string{"name", "phone", "bhk", "otherBhk", "services", "otherService", "comment"}

// ValidateField returns the message for one field of r, "" when it passes.
func ValidateField(r Registration, field string) string {
	return ValidateRegistration(r)[field]
}

func ValidateEvent(e EventForm) Errors {
	return translate(validate.Struct(e))
}

func translate(err error) Errors {
	errs := Errors{}
	if err == nil {
		return errs
	}
	vErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = err.Error()
		return errs
	}
	for _, fe := range vErrors {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		msg := messages[field][fe.Tag()]
		if msg == "" {
			msg = "Invalid value"
		}
		errs[field] = msg
	}
	return errs
}
