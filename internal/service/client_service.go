package service

import (
	"context"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/notify"
)

const clientEntity = "client"

// ClientInput carries the fields of a create or partial update.
type ClientInput struct {
	Name        *string
	LogoURL     *string
	WebsiteURL  *string
	Description *string
}

// ClientService manages the ordered client list.
type ClientService struct {
	*OrderedCollection[db.Client]
}

// NewClientService creates the clients accessor.
func NewClientService(store Store[db.Client], opts ...CollectionOption) *ClientService {
	return &ClientService{OrderedCollection: NewOrderedCollection(clientEntity, store, opts...)}
}

// Create appends a client at the end of the list.
func (s *ClientService) Create(ctx context.Context, input ClientInput) (db.Client, error) {
	if err := validateClientInput(input, true); err != nil {
		return db.Client{}, s.Reject("create", err)
	}

	return s.Add(ctx, db.Client{
		Name:        deref(input.Name),
		LogoURL:     deref(input.LogoURL),
		WebsiteURL:  deref(input.WebsiteURL),
		Description: deref(input.Description),
	})
}

// Update applies a partial edit.
func (s *ClientService) Update(ctx context.Context, id uint, input ClientInput) (db.Client, error) {
	if err := validateClientInput(input, false); err != nil {
		return db.Client{}, s.Reject("update", err)
	}

	fields := patch{}
	fields.text("name", input.Name)
	fields.text("logo_url", input.LogoURL)
	fields.text("website_url", input.WebsiteURL)
	fields.text("description", input.Description)
	return s.Patch(ctx, id, fields, notify.ActionUpdated)
}

func validateClientInput(input ClientInput, creating bool) error {
	return firstError(
		requireText(clientEntity, "name", input.Name, creating),
		checkURL(clientEntity, "logoUrl", input.LogoURL),
		checkURL(clientEntity, "websiteUrl", input.WebsiteURL),
	)
}
