package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/notify"
)

const teamEntity = "team member"

// TeamMemberInput carries the fields of a create or partial update.
type TeamMemberInput struct {
	Name        *string
	Position    *string
	Bio         *string
	ImageURL    *string
	LinkedInURL *string
	Email       *string
}

// TeamService manages the ordered team list.
type TeamService struct {
	*OrderedCollection[db.TeamMember]
}

// NewTeamService creates the team accessor.
func NewTeamService(store Store[db.TeamMember], opts ...CollectionOption) *TeamService {
	return &TeamService{OrderedCollection: NewOrderedCollection(teamEntity, store, opts...)}
}

// Create appends a member at the end of the list.
func (s *TeamService) Create(ctx context.Context, input TeamMemberInput) (db.TeamMember, error) {
	if err := validateTeamMemberInput(input, true); err != nil {
		return db.TeamMember{}, s.Reject("create", err)
	}

	return s.Add(ctx, db.TeamMember{
		Name:        deref(input.Name),
		Position:    deref(input.Position),
		Bio:         deref(input.Bio),
		ImageURL:    deref(input.ImageURL),
		LinkedInURL: deref(input.LinkedInURL),
		Email:       deref(input.Email),
	})
}

// Update applies a partial edit.
func (s *TeamService) Update(ctx context.Context, id uint, input TeamMemberInput) (db.TeamMember, error) {
	if err := validateTeamMemberInput(input, false); err != nil {
		return db.TeamMember{}, s.Reject("update", err)
	}

	fields := patch{}
	fields.text("name", input.Name)
	fields.text("position", input.Position)
	fields.text("bio", input.Bio)
	fields.text("image_url", input.ImageURL)
	fields.text("linked_in_url", input.LinkedInURL)
	fields.text("email", input.Email)
	return s.Patch(ctx, id, fields, notify.ActionUpdated)
}

func validateTeamMemberInput(input TeamMemberInput, creating bool) error {
	if err := requireText(teamEntity, "name", input.Name, creating); err != nil {
		return err
	}
	if email := deref(input.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil || strings.ContainsAny(email, " <>") {
			return invalid(teamEntity, "email", "email %q is not a valid address", email)
		}
	}
	return firstError(
		checkURL(teamEntity, "imageUrl", input.ImageURL),
		checkURL(teamEntity, "linkedinUrl", input.LinkedInURL),
	)
}
