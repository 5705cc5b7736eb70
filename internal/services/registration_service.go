package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/joshua-takyi/enquiry/internal/artifacts"
	"github.com/joshua-takyi/enquiry/internal/forms"
	"github.com/joshua-takyi/enquiry/internal/helpers"
	"github.com/joshua-takyi/enquiry/internal/models"
)

const (
	SourcePublic = "public"
	SourceAdmin  = "admin"
)

type RegistrationService struct {
	repo     models.EnquiryRepo
	settings Settings
	logger   *slog.Logger
	now      func() time.Time
}

func NewRegistrationService(repo models.EnquiryRepo, settings Settings, logger *slog.Logger) *RegistrationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegistrationService{
		repo:     repo,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// RegistrationView is a registered user as shown in the admin table.
type RegistrationView struct {
	Name         string `json:"name"`
	PhoneNumber  string `json:"phoneNumber"`
	BHK          string `json:"bhk"`
	Services     string `json:"services"`
	Comment      string `json:"comment"`
	EnquiryType  string `json:"enquiryType"`
	Source       string `json:"source,omitempty"`
	RegisteredAt string `json:"registeredAt"`
}

type RegistrationList struct {
	EventID   string             `json:"eventId"`
	EventName string             `json:"eventName"`
	Total     int                `json:"total"`
	Users     []RegistrationView `json:"users"`
}

// Register validates the form and stores it under the event keyed by phone.
// A phone already present for the event yields models.ErrAlreadyRegistered.
func (rs *RegistrationService) Register(ctx context.Context, eventID string, form forms.Registration, source string) (*models.RegisteredUser, error) {
	if errs := forms.ValidateRegistration(form); !errs.Valid() {
		return nil, errs
	}
	if _, err := rs.repo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	now := rs.now()
	user := &models.RegisteredUser{
		Name:         strings.TrimSpace(form.Name),
		PhoneNumber:  form.Phone,
		BHK:          form.ResolvedBHK(),
		Services:     form.ResolvedService(),
		Comment:      form.Comment,
		EnquiryType:  rs.settings.EnquiryType,
		Source:       source,
		RegisteredAt: &now,
	}
	if err := rs.repo.AddRegisteredUser(ctx, eventID, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (rs *RegistrationService) ListRegistrations(ctx context.Context, eventID string) (*RegistrationList, error) {
	event, err := rs.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	users, err := rs.repo.ListRegisteredUsers(ctx, eventID)
	if err != nil {
		return nil, err
	}

	list := &RegistrationList{
		EventID:   event.ID,
		EventName: event.EventName,
		Total:     len(users),
		Users:     make([]RegistrationView, 0, len(users)),
	}
	for _, u := range users {
		list.Users = append(list.Users, RegistrationView{
			Name:         helpers.OrNA(u.Name),
			PhoneNumber:  helpers.OrNA(u.PhoneNumber),
			BHK:          helpers.OrNA(u.BHK),
			Services:     helpers.OrNA(u.Services),
			Comment:      helpers.OrNA(u.Comment),
			EnquiryType:  helpers.OrNA(u.EnquiryType),
			Source:       u.Source,
			RegisteredAt: helpers.FormatDate(u.RegisteredAt, helpers.RegisteredAtLayout, rs.settings.location(), helpers.NotAvailable),
		})
	}
	return list, nil
}

// Export builds the registrations workbook and its download name. A missing
// event exports under the name "Event".
func (rs *RegistrationService) Export(ctx context.Context, eventID string) ([]byte, string, error) {
	eventName := ""
	event, err := rs.repo.GetEvent(ctx, eventID)
	switch {
	case err == nil:
		eventName = event.EventName
	case !errors.Is(err, models.ErrEventNotFound):
		return nil, "", err
	}

	users, err := rs.repo.ListRegisteredUsers(ctx, eventID)
	if err != nil {
		return nil, "", err
	}
	if len(users) == 0 {
		return nil, "", ErrNoRegistrations
	}

	rows := artifacts.ExportRows(users, rs.settings.location())
	data, err := artifacts.RegistrationsWorkbook(rows)
	if err != nil {
		return nil, "", err
	}
	return data, artifacts.ExportFileName(eventName, rs.now().In(rs.settings.location())), nil
}
