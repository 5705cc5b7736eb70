package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joshua-takyi/enquiry/internal/models"
	"github.com/joshua-takyi/enquiry/internal/whatsapp"
)

// Messenger sends one templated message addressed to name.
type Messenger interface {
	SendTemplate(ctx context.Context, to, name string) error
}

type BroadcastService struct {
	repo      models.EnquiryRepo
	messenger Messenger
	settings  Settings
	region    string
	logger    *slog.Logger
}

func NewBroadcastService(repo models.EnquiryRepo, messenger Messenger, settings Settings, region string, logger *slog.Logger) *BroadcastService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BroadcastService{
		repo:      repo,
		messenger: messenger,
		settings:  settings,
		region:    region,
		logger:    logger,
	}
}

type BroadcastResult struct {
	Total   int      `json:"total"`
	Sent    int      `json:"sent"`
	Failed  int      `json:"failed"`
	Skipped int      `json:"skipped"`
	Log     []string `json:"log"`
}

func (r *BroadcastResult) add(line string) {
	r.Log = append(r.Log, line)
}

// Run messages every user of the external list one after another. A failed
// send is logged and the loop moves on.
func (bs *BroadcastService) Run(ctx context.Context) (*BroadcastResult, error) {
	result := &BroadcastResult{Log: []string{}}

	users, err := bs.repo.ListExternalUsers(ctx, bs.settings.UsersCollection)
	if err != nil {
		bs.logger.Error("Error fetching users", "error", err)
		result.add("Error fetching user data")
		return result, fmt.Errorf("%w: %v", ErrFetchUsers, err)
	}
	result.Total = len(users)

	for _, u := range users {
		raw := strings.TrimSpace(u.Phone)
		name := u.FirstName
		if name == "" {
			name = "there"
		}

		phone := whatsapp.NormalizePhone(raw)
		if phone == "" || len(phone) < whatsapp.MinPhoneLength {
			result.Skipped++
			result.add("Skipped invalid number: " + raw)
			bs.logger.Warn("Skipped invalid number", "phone", raw, "user_id", u.ID)
			continue
		}

		to := whatsapp.Recipient(phone, bs.region)
		if err := bs.messenger.SendTemplate(ctx, to, name); err != nil {
			result.Failed++
			// transport detail stays in the server log
			shown := &whatsapp.APIError{}
			errors.As(err, &shown)
			result.add(fmt.Sprintf("Failed for %s: %s", phone, shown.Error()))
			bs.logger.Error("Message send failed", "phone", phone, "error", err)
			continue
		}
		result.Sent++
		result.add(fmt.Sprintf("Message sent to %s (Check delivery in WhatsApp)", phone))
		bs.logger.Info("Message sent", "phone", phone)
	}
	return result, nil
}
