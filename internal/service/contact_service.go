package service

import (
	"context"
	"net/mail"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/defaults"
)

const contactEntity = "contact section"

// ContactInput carries the contact section fields.
type ContactInput struct {
	Title       *string
	Subtitle    *string
	Email       *string
	Phone       *string
	Address     *string
	OfficeHours *string
	MapEmbedURL *string
}

// ContactService manages the single contact section.
type ContactService struct {
	*Singleton[db.ContactContent]
	content *defaults.Provider
}

// NewContactService creates the contact accessor.
func NewContactService(store Store[db.ContactContent], content *defaults.Provider, opts ...CollectionOption) *ContactService {
	return &ContactService{
		Singleton: NewSingleton(contactEntity, store, opts...),
		content:   content,
	}
}

// Get returns the stored section, or the configured fallback.
func (s *ContactService) Get() db.ContactContent {
	if contact, ok := s.Current(); ok {
		return contact
	}
	fallback := defaults.Builtin().Contact
	if s.content != nil {
		fallback = s.content.Current().Contact
	}
	return db.ContactContent{
		Title:       fallback.Title,
		Subtitle:    fallback.Subtitle,
		Email:       fallback.Email,
		Phone:       fallback.Phone,
		Address:     fallback.Address,
		OfficeHours: fallback.OfficeHours,
	}
}

// Save creates or updates the contact section.
func (s *ContactService) Save(ctx context.Context, input ContactInput) (db.ContactContent, error) {
	if err := s.EnsureLoaded(ctx); err != nil {
		return db.ContactContent{}, err
	}
	_, exists := s.Current()
	if err := validateContactInput(input, !exists); err != nil {
		return db.ContactContent{}, s.Reject("update", err)
	}

	fields := patch{}
	fields.text("title", input.Title)
	fields.text("subtitle", input.Subtitle)
	fields.text("email", input.Email)
	fields.text("phone", input.Phone)
	fields.text("address", input.Address)
	fields.text("office_hours", input.OfficeHours)
	fields.text("map_embed_url", input.MapEmbedURL)

	return s.Singleton.Save(ctx, db.ContactContent{
		Title:       deref(input.Title),
		Subtitle:    deref(input.Subtitle),
		Email:       deref(input.Email),
		Phone:       deref(input.Phone),
		Address:     deref(input.Address),
		OfficeHours: deref(input.OfficeHours),
		MapEmbedURL: deref(input.MapEmbedURL),
	}, fields)
}

func validateContactInput(input ContactInput, creating bool) error {
	if err := requireText(contactEntity, "title", input.Title, creating); err != nil {
		return err
	}
	if email := deref(input.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return invalid(contactEntity, "email", "email %q is not a valid address", email)
		}
	}
	return checkURL(contactEntity, "mapEmbedUrl", input.MapEmbedURL)
}
