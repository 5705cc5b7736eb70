package services

import (
	"errors"
	"time"
)

var (
	ErrNoRegistrations = errors.New("no registered users for event")
	ErrFetchUsers      = errors.New("failed to fetch broadcast users")
)

// Settings carries the deployment values the services render into links,
// labels and timestamps.
type Settings struct {
	PublicBaseURL   string
	QRPDFBaseURL    string
	EnquiryType     string
	UsersCollection string
	Location        *time.Location
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
