package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	EnquiryCollection         = "Enquiry"
	RegisteredUsersCollection = "registeredUsers"
	DefaultUsersCollection    = "Users"
)

// Accepted start/end date layouts. Older records hold date-only values.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

type Event struct {
	ID        string     `json:"id"`
	EventName string     `json:"eventName"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	UniqueID  string     `json:"uniqueId"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	QRCodeURL string     `json:"qrCodeUrl,omitempty"`
}

func (e *Event) HasQRCode() bool {
	return strings.TrimSpace(e.QRCodeURL) != ""
}

func (e *Event) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"eventName": e.EventName,
		"uniqueId":  e.UniqueID,
	}
	if e.StartDate != nil {
		fields["startDate"] = *e.StartDate
	}
	if e.EndDate != nil {
		fields["endDate"] = *e.EndDate
	}
	if e.CreatedAt != nil {
		fields["createdAt"] = *e.CreatedAt
	}
	if e.QRCodeURL != "" {
		fields["qrCodeUrl"] = e.QRCodeURL
	}
	return fields
}

func EventFromDocument(doc *Document) *Event {
	return &Event{
		ID:        doc.ID,
		EventName: fieldString(doc.Fields, "eventName"),
		StartDate: fieldTime(doc.Fields, "startDate"),
		EndDate:   fieldTime(doc.Fields, "endDate"),
		UniqueID:  fieldString(doc.Fields, "uniqueId"),
		CreatedAt: fieldTime(doc.Fields, "createdAt"),
		QRCodeURL: fieldString(doc.Fields, "qrCodeUrl"),
	}
}

// RegisteredUser is a lead captured against an event, keyed by phone number.
type RegisteredUser struct {
	Name         string     `json:"name"`
	PhoneNumber  string     `json:"phoneNumber"`
	BHK          string     `json:"bhk"`
	Services     string     `json:"services"`
	Comment      string     `json:"comment"`
	EnquiryType  string     `json:"enquiryType"`
	Source       string     `json:"source,omitempty"`
	RegisteredAt *time.Time `json:"registeredAt,omitempty"`
}

func (u *RegisteredUser) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"name":        u.Name,
		"phoneNumber": u.PhoneNumber,
		"bhk":         u.BHK,
		"services":    u.Services,
		"comment":     u.Comment,
		"enquiryType": u.EnquiryType,
	}
	if u.Source != "" {
		fields["source"] = u.Source
	}
	if u.RegisteredAt != nil {
		fields["registeredAt"] = *u.RegisteredAt
	}
	return fields
}

func RegisteredUserFromDocument(doc *Document) *RegisteredUser {
	u := &RegisteredUser{
		Name:         fieldString(doc.Fields, "name"),
		PhoneNumber:  fieldString(doc.Fields, "phoneNumber"),
		BHK:          fieldString(doc.Fields, "bhk"),
		Services:     fieldString(doc.Fields, "services"),
		Comment:      fieldString(doc.Fields, "comment"),
		EnquiryType:  fieldString(doc.Fields, "enquiryType"),
		Source:       fieldString(doc.Fields, "source"),
		RegisteredAt: fieldTime(doc.Fields, "registeredAt"),
	}
	if u.PhoneNumber == "" {
		u.PhoneNumber = doc.ID
	}
	return u
}

// ExternalUser is a row of the externally owned contact list used for broadcasts.
type ExternalUser struct {
	ID        string `json:"id"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
}

func ExternalUserFromDocument(doc *Document) *ExternalUser {
	return &ExternalUser{
		ID:        doc.ID,
		Phone:     fieldString(doc.Fields, "phone"),
		FirstName: fieldString(doc.Fields, "firstName"),
	}
}

// ParseDate accepts the date and date-time layouts used across event records.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func fieldString(fields map[string]interface{}, key string) string {
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, p := range v {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}

func fieldTime(fields map[string]interface{}, key string) *time.Time {
	switch v := fields[key].(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	case string:
		if t, err := ParseDate(v); err == nil {
			return &t
		}
	case int64:
		t := time.UnixMilli(v).UTC()
		return &t
	}
	return nil
}
