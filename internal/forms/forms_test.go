package forms

import (
	"strings"
	"testing"
)

func validRegistration() Registration {
	return Registration{
		Name:     "Asha Rao",
		Phone:    "9876543210",
		BHK:      "2 BHK",
		Services: "CCTV",
	}
}

func TestValidRegistrationHasNoErrors(t *testing.T) {
	if errs := ValidateRegistration(validRegistration()); !errs.Valid() {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestPhoneAcceptedOnlyWhenTenDigits(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{"9876543210", ""},
		{"0000000000", ""},
		{"", "Phone number is required"},
		{"987654321", "Enter valid 10 digit phone number"},
		{"98765432100", "Enter valid 10 digit phone number"},
		{" 9876543210", "Enter valid 10 digit phone number"},
		{"9876543210 ", "Enter valid 10 digit phone number"},
		{"+919876543", "Enter valid 10 digit phone number"},
		{"98765-4321", "Enter valid 10 digit phone number"},
		{"987654321a", "Enter valid 10 digit phone number"},
		{"٩٨٧٦٥٤٣٢١٠", "Enter valid 10 digit phone number"},
	}
	for _, tt := range tests {
		r := validRegistration()
		r.Phone = tt.phone
		if got := ValidateField(r, "phone"); got != tt.want {
			t.Errorf("phone %q: got %q, want %q", tt.phone, got, tt.want)
		}
	}
}

func TestNameRequiredAfterTrim(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		r := validRegistration()
		r.Name = name
		if got := ValidateField(r, "name"); got != "Full name is required" {
			t.Errorf("name %q: got %q", name, got)
		}
	}
}

func TestBHKRules(t *testing.T) {
	tests := []struct {
		name     string
		bhk      string
		other    string
		field    string
		wantMsg  string
		resolved string
	}{
		{"missing", "", "", "bhk", "Please select BHK", ""},
		{"unknown option", "3 BHK", "", "bhk", "Please select a valid option", ""},
		{"other without text", "Other", "  ", "otherBhk", "Please specify BHK", ""},
		{"other with text", "Other", " Villa ", "otherBhk", "", "Villa"},
		{"fixed option", "Garage", "", "bhk", "", "Garage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			r.BHK = tt.bhk
			r.OtherBHK = tt.other
			if got := ValidateField(r, tt.field); got != tt.wantMsg {
				t.Errorf("got %q, want %q", got, tt.wantMsg)
			}
			if tt.resolved != "" && r.ResolvedBHK() != tt.resolved {
				t.Errorf("resolved = %q, want %q", r.ResolvedBHK(), tt.resolved)
			}
		})
	}
}

func TestServiceRules(t *testing.T) {
	r := validRegistration()
	r.Services = ""
	if got := ValidateField(r, "services"); got != "Please select service" {
		t.Errorf("missing service: %q", got)
	}

	r.Services = Other
	if got := ValidateField(r, "otherService"); got != "Please specify service" {
		t.Errorf("other without text: %q", got)
	}

	r.OtherService = "Painting"
	if errs := ValidateRegistration(r); !errs.Valid() {
		t.Errorf("unexpected errors: %v", errs)
	}
	if r.ResolvedService() != "Painting" {
		t.Errorf("resolved service = %q", r.ResolvedService())
	}
}

func TestCommentIsUnconstrained(t *testing.T) {
	r := validRegistration()
	r.Comment = strings.Repeat("x", 5000)
	if errs := ValidateRegistration(r); !errs.Valid() {
		t.Errorf("comment rejected: %v", errs)
	}
}

func TestAllErrorsReportedTogether(t *testing.T) {
	errs := ValidateRegistration(Registration{})
	for _, field := range []string{"name", "phone", "bhk", "services"} {
		if errs[field] == "" {
			t.Errorf("missing error for %s in %v", field, errs)
		}
	}
}

func TestValidateEvent(t *testing.T) {
	tests := []struct {
		name  string
		form  EventForm
		field string
		want  string
	}{
		{"ok date only", EventForm{EventName: "Spring Fest", StartDate: "2025-05-01"}, "", ""},
		{"ok with end", EventForm{EventName: "Fest", StartDate: "2025-05-01T10:00", EndDate: "2025-05-01T18:00"}, "", ""},
		{"blank name", EventForm{EventName: " ", StartDate: "2025-05-01"}, "eventName", "Event name is required"},
		{"missing start", EventForm{EventName: "Fest"}, "startDate", "Start date is required"},
		{"bad start", EventForm{EventName: "Fest", StartDate: "May 1"}, "startDate", "Enter a valid date"},
		{"end before start", EventForm{EventName: "Fest", StartDate: "2025-05-02", EndDate: "2025-05-01"}, "endDate", "End time must be after start time."},
		{"end equals start", EventForm{EventName: "Fest", StartDate: "2025-05-02T10:00", EndDate: "2025-05-02T10:00"}, "endDate", "End time must be after start time."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateEvent(tt.form)
			if tt.field == "" {
				if !errs.Valid() {
					t.Fatalf("unexpected errors %v", errs)
				}
				return
			}
			if errs[tt.field] != tt.want {
				t.Errorf("got %q, want %q (all: %v)", errs[tt.field], tt.want, errs)
			}
		})
	}
}
