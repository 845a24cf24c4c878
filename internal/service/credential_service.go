package service

import (
	"context"
	"time"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/notify"
)

const credentialEntity = "credential"

// CredentialInput carries the fields of a create or partial update.
type CredentialInput struct {
	Title       *string
	Issuer      *string
	Year        *int
	Description *string
	IconURL     *string
}

// CredentialService manages licences, certifications and awards.
type CredentialService struct {
	*OrderedCollection[db.Credential]
	now func() time.Time
}

// NewCredentialService creates the credentials accessor.
func NewCredentialService(store Store[db.Credential], opts ...CollectionOption) *CredentialService {
	return &CredentialService{
		OrderedCollection: NewOrderedCollection(credentialEntity, store, opts...),
		now:               time.Now,
	}
}

// Create appends a credential at the end of the list.
func (s *CredentialService) Create(ctx context.Context, input CredentialInput) (db.Credential, error) {
	if err := s.validate(input, true); err != nil {
		return db.Credential{}, s.Reject("create", err)
	}

	return s.Add(ctx, db.Credential{
		Title:       deref(input.Title),
		Issuer:      deref(input.Issuer),
		Year:        derefInt(input.Year),
		Description: deref(input.Description),
		IconURL:     deref(input.IconURL),
	})
}

// Update applies a partial edit.
func (s *CredentialService) Update(ctx context.Context, id uint, input CredentialInput) (db.Credential, error) {
	if err := s.validate(input, false); err != nil {
		return db.Credential{}, s.Reject("update", err)
	}

	fields := patch{}
	fields.text("title", input.Title)
	fields.text("issuer", input.Issuer)
	fields.number("year", input.Year)
	fields.text("description", input.Description)
	fields.text("icon_url", input.IconURL)
	return s.Patch(ctx, id, fields, notify.ActionUpdated)
}

func (s *CredentialService) validate(input CredentialInput, creating bool) error {
	if err := requireText(credentialEntity, "title", input.Title, creating); err != nil {
		return err
	}
	// 0 表示未填写年份。
	if input.Year != nil && *input.Year != 0 {
		if *input.Year < 1900 || *input.Year > s.now().Year()+1 {
			return invalid(credentialEntity, "year", "year %d is out of range", *input.Year)
		}
	}
	return checkURL(credentialEntity, "iconUrl", input.IconURL)
}
