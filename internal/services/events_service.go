package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joshua-takyi/enquiry/internal/artifacts"
	"github.com/joshua-takyi/enquiry/internal/forms"
	"github.com/joshua-takyi/enquiry/internal/helpers"
	"github.com/joshua-takyi/enquiry/internal/models"
)

const storedDateLayout = "2006-01-02T15:04:05"

type EventService struct {
	repo     models.EnquiryRepo
	uploader helpers.ImageUploader
	settings Settings
	logger   *slog.Logger
}

func NewEventService(repo models.EnquiryRepo, uploader helpers.ImageUploader, settings Settings, logger *slog.Logger) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{
		repo:     repo,
		uploader: uploader,
		settings: settings,
		logger:   logger,
	}
}

// EventListItem is one row of the admin events table.
type EventListItem struct {
	SrNo      int    `json:"srNo"`
	ID        string `json:"id"`
	EventName string `json:"eventName"`
	StartDate string `json:"startDate"`
	Link      string `json:"link"`
	HasQR     bool   `json:"hasQr"`
	QR        string `json:"qr"`
	QRCodeURL string `json:"qrCodeUrl,omitempty"`
	QRPath    string `json:"qrPath,omitempty"`
}

type PublicEventView struct {
	ID              string   `json:"id"`
	EventName       string   `json:"eventName"`
	StartDate       string   `json:"startDate"`
	RegisteredCount int      `json:"registeredCount"`
	EnquiryType     string   `json:"enquiryType"`
	BHKOptions      []string `json:"bhkOptions"`
	ServiceOptions  []string `json:"serviceOptions"`
}

type QRView struct {
	ID        string `json:"id"`
	EventName string `json:"eventName"`
	StartDate string `json:"startDate"`
	QRCodeURL string `json:"qrCodeUrl,omitempty"`
	Message   string `json:"message,omitempty"`
	PDFPath   string `json:"pdfPath"`
}

// EventPatch holds the edited fields. Nil fields keep their stored value.
type EventPatch struct {
	EventName *string `json:"eventName"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := models.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (es *EventService) Link(id string) string {
	return artifacts.EventLink(es.settings.PublicBaseURL, id)
}

// CreateEvent writes the event, then renders the QR for its public link,
// uploads it to qrcodes/{id}.png and merges the URL back into the event.
func (es *EventService) CreateEvent(ctx context.Context, form forms.EventForm) (*models.Event, error) {
	if errs := forms.ValidateEvent(form); !errs.Valid() {
		return nil, errs
	}
	start, _ := parseOptionalDate(form.StartDate)
	end, _ := parseOptionalDate(form.EndDate)

	event, err := es.repo.CreateEvent(ctx, &models.Event{
		EventName: strings.TrimSpace(form.EventName),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, err
	}

	png, err := artifacts.QRCode(es.Link(event.ID))
	if err != nil {
		return event, err
	}
	url, err := es.uploader.UploadPNG(ctx, helpers.QRFolder, event.ID, png)
	if err != nil {
		return event, fmt.Errorf("failed to store qr code: %w", err)
	}
	if err := es.repo.UpdateEvent(ctx, event.ID, map[string]interface{}{"qrCodeUrl": url}); err != nil {
		return event, err
	}
	event.QRCodeURL = url
	return event, nil
}

func (es *EventService) ListEvents(ctx context.Context) ([]EventListItem, error) {
	events, err := es.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]EventListItem, 0, len(events))
	for i, e := range events {
		item := EventListItem{
			SrNo:      i + 1,
			ID:        e.ID,
			EventName: e.EventName,
			StartDate: helpers.FormatDate(e.StartDate, helpers.DisplayDateLayout, time.UTC, helpers.MissingDate),
			Link:      es.Link(e.ID),
			QR:        "No QR",
		}
		if e.HasQRCode() {
			item.HasQR = true
			item.QR = "View QR"
			item.QRCodeURL = e.QRCodeURL
			item.QRPath = "/api/v1/admin/events/" + e.ID + "/qr"
		}
		items = append(items, item)
	}
	return items, nil
}

func (es *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return es.repo.GetEvent(ctx, id)
}

// UpdateEvent validates the merged result of the stored event and patch, then
// writes only the patched fields.
func (es *EventService) UpdateEvent(ctx context.Context, id string, patch EventPatch) (*models.Event, error) {
	current, err := es.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	form := forms.EventForm{EventName: current.EventName}
	if current.StartDate != nil {
		form.StartDate = current.StartDate.Format(storedDateLayout)
	}
	if current.EndDate != nil {
		form.EndDate = current.EndDate.Format(storedDateLayout)
	}
	if patch.EventName != nil {
		form.EventName = *patch.EventName
	}
	if patch.StartDate != nil {
		form.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		form.EndDate = *patch.EndDate
	}
	if errs := forms.ValidateEvent(form); !errs.Valid() {
		return nil, errs
	}

	fields := map[string]interface{}{}
	if patch.EventName != nil {
		fields["eventName"] = strings.TrimSpace(*patch.EventName)
	}
	if patch.StartDate != nil {
		start, _ := parseOptionalDate(*patch.StartDate)
		fields["startDate"] = *start
	}
	if patch.EndDate != nil {
		end, _ := parseOptionalDate(*patch.EndDate)
		if end == nil {
			fields["endDate"] = nil
		} else {
			fields["endDate"] = *end
		}
	}
	if len(fields) == 0 {
		return current, nil
	}
	if err := es.repo.UpdateEvent(ctx, id, fields); err != nil {
		return nil, err
	}
	return es.repo.GetEvent(ctx, id)
}

func (es *EventService) DeleteEvent(ctx context.Context, id string) error {
	if _, err := es.repo.GetEvent(ctx, id); err != nil {
		return err
	}
	return es.repo.DeleteEvent(ctx, id)
}

func (es *EventService) PublicEvent(ctx context.Context, id string) (*PublicEventView, error) {
	event, err := es.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := es.repo.CountRegisteredUsers(ctx, id)
	if err != nil {
		es.logger.Warn("Failed to count registrations", "event_id", id, "error", err)
	}
	return &PublicEventView{
		ID:              event.ID,
		EventName:       event.EventName,
		StartDate:       helpers.FormatDate(event.StartDate, helpers.PublicDateLayout, time.UTC, ""),
		RegisteredCount: count,
		EnquiryType:     es.settings.EnquiryType,
		BHKOptions:      forms.BHKOptions,
		ServiceOptions:  forms.ServiceOptions,
	}, nil
}

func (es *EventService) QRView(ctx context.Context, id string) (*QRView, error) {
	event, err := es.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &QRView{
		ID:        event.ID,
		EventName: event.EventName,
		StartDate: helpers.FormatDate(event.StartDate, helpers.DisplayDateLayout, time.UTC, helpers.MissingDate),
		QRCodeURL: event.QRCodeURL,
		PDFPath:   "/api/v1/admin/events/" + event.ID + "/qr/pdf",
	}
	if !event.HasQRCode() {
		view.Message = "No QR Available"
	}
	return view, nil
}

// QRPDF regenerates the QR from QRPDFBaseURL rather than the stored image.
func (es *EventService) QRPDF(ctx context.Context, id string) ([]byte, string, error) {
	event, err := es.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, "", err
	}
	png, err := artifacts.QRCode(artifacts.EventLink(es.settings.QRPDFBaseURL, event.ID))
	if err != nil {
		return nil, "", err
	}
	date := helpers.FormatDate(event.StartDate, helpers.DisplayDateLayout, time.UTC, helpers.MissingDate)
	pdf, err := artifacts.EventPDF(event.EventName, date, png)
	if err != nil {
		return nil, "", err
	}
	return pdf, artifacts.PDFFileName(event.EventName), nil
}
