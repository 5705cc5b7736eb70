package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrAlreadyRegistered = errors.New("phone number already registered")
)

type EnquiryRepo interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	UpdateEvent(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteEvent(ctx context.Context, id string) error
	AddRegisteredUser(ctx context.Context, eventID string, user *RegisteredUser) error
	ListRegisteredUsers(ctx context.Context, eventID string) ([]*RegisteredUser, error)
	CountRegisteredUsers(ctx context.Context, eventID string) (int, error)
	ListExternalUsers(ctx context.Context, collection string) ([]*ExternalUser, error)
}

// EnquiryGateway maps events and their registered users onto a DocumentStore:
// Enquiry/{eventId} and Enquiry/{eventId}/registeredUsers/{phone}.
type EnquiryGateway struct {
	store DocumentStore
	now   func() time.Time
}

func NewEnquiryGateway(store DocumentStore) *EnquiryGateway {
	return &EnquiryGateway{store: store, now: time.Now}
}

func eventPath(id string) string {
	return JoinPath(EnquiryCollection, id)
}

func registeredUsersPath(eventID string) string {
	return JoinPath(EnquiryCollection, eventID, RegisteredUsersCollection)
}

func RegisteredUserPath(eventID, phone string) string {
	return JoinPath(EnquiryCollection, eventID, RegisteredUsersCollection, phone)
}

func (g *EnquiryGateway) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	id := g.store.NewID(EnquiryCollection)
	now := g.now()
	created := *event
	created.ID = id
	created.UniqueID = id
	created.CreatedAt = &now

	if err := g.store.Set(ctx, eventPath(id), created.Fields(), false); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &created, nil
}

func (g *EnquiryGateway) ListEvents(ctx context.Context) ([]*Event, error) {
	docs, err := g.store.List(ctx, EnquiryCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	events := make([]*Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, EventFromDocument(doc))
	}
	return events, nil
}

func (g *EnquiryGateway) GetEvent(ctx context.Context, id string) (*Event, error) {
	if id == "" || strings.Contains(id, "/") {
		return nil, ErrEventNotFound
	}
	doc, err := g.store.Get(ctx, eventPath(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return EventFromDocument(doc), nil
}

// UpdateEvent merges fields into the event document.
func (g *EnquiryGateway) UpdateEvent(ctx context.Context, id string, fields map[string]interface{}) error {
	if err := g.store.Set(ctx, eventPath(id), fields, true); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// DeleteEvent removes the event document only. Its registered users stay
// reachable by direct path.
func (g *EnquiryGateway) DeleteEvent(ctx context.Context, id string) error {
	if err := g.store.Delete(ctx, eventPath(id)); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// AddRegisteredUser checks for an existing document at the phone number and
// then writes. The check and the write are separate calls; two concurrent
// submissions for the same phone can both pass the check.
func (g *EnquiryGateway) AddRegisteredUser(ctx context.Context, eventID string, user *RegisteredUser) error {
	path := RegisteredUserPath(eventID, user.PhoneNumber)

	_, err := g.store.Get(ctx, path)
	switch {
	case err == nil:
		return ErrAlreadyRegistered
	case !errors.Is(err, ErrNotFound):
		return fmt.Errorf("failed to check registration: %w", err)
	}

	if user.RegisteredAt == nil {
		now := g.now()
		user.RegisteredAt = &now
	}
	if err := g.store.Set(ctx, path, user.Fields(), false); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

func (g *EnquiryGateway) ListRegisteredUsers(ctx context.Context, eventID string) ([]*RegisteredUser, error) {
	docs, err := g.store.List(ctx, registeredUsersPath(eventID))
	if err != nil {
		return nil, fmt.Errorf("failed to list registered users: %w", err)
	}
	users := make([]*RegisteredUser, 0, len(docs))
	for _, doc := range docs {
		users = append(users, RegisteredUserFromDocument(doc))
	}
	return users, nil
}

func (g *EnquiryGateway) CountRegisteredUsers(ctx context.Context, eventID string) (int, error) {
	docs, err := g.store.List(ctx, registeredUsersPath(eventID))
	if err != nil {
		return 0, fmt.Errorf("failed to count registered users: %w", err)
	}
	return len(docs), nil
}

func (g *EnquiryGateway) ListExternalUsers(ctx context.Context, collection string) ([]*ExternalUser, error) {
	if collection == "" {
		collection = DefaultUsersCollection
	}
	docs, err := g.store.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	users := make([]*ExternalUser, 0, len(docs))
	for _, doc := range docs {
		users = append(users, ExternalUserFromDocument(doc))
	}
	return users, nil
}
