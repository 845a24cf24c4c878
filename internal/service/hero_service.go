package service

import (
	"context"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/defaults"
	"github.com/advisorsite/internal/notify"
)

const heroEntity = "hero section"

// HeroInput carries the fields of a create or partial update. Nil fields
// are left untouched on update.
type HeroInput struct {
	Title       *string
	Subtitle    *string
	Description *string
	TrustedText *string
	Status      *string
	Colors      *db.HeroColors
}

// HeroService manages hero sections and their draft/published lifecycle.
type HeroService struct {
	*Collection[db.HeroSection]
	content *defaults.Provider
}

// NewHeroService creates the hero accessor.
func NewHeroService(store Store[db.HeroSection], content *defaults.Provider, opts ...CollectionOption) *HeroService {
	return &HeroService{
		Collection: NewCollection(heroEntity, store, opts...),
		content:    content,
	}
}

// Create inserts a new section. New sections always start as drafts; a
// status in the input is ignored.
func (s *HeroService) Create(ctx context.Context, input HeroInput) (db.HeroSection, error) {
	if err := validateHeroInput(input, true); err != nil {
		return db.HeroSection{}, s.Reject("create", err)
	}

	section := db.HeroSection{
		Title:       deref(input.Title),
		Subtitle:    deref(input.Subtitle),
		Description: deref(input.Description),
		TrustedText: deref(input.TrustedText),
		Status:      db.StatusDraft,
	}
	if input.Colors != nil {
		section.Colors = *input.Colors
	} else if s.content != nil {
		section.Colors = s.content.Current().Hero.Colors
	}

	return s.Collection.Create(ctx, section)
}

// Update applies a partial edit. Status changes only when Status is set.
func (s *HeroService) Update(ctx context.Context, id uint, input HeroInput) (db.HeroSection, error) {
	if err := validateHeroInput(input, false); err != nil {
		return db.HeroSection{}, s.Reject("update", err)
	}

	fields := patch{}
	fields.text("title", input.Title)
	fields.text("subtitle", input.Subtitle)
	fields.text("description", input.Description)
	fields.text("trusted_text", input.TrustedText)
	if input.Colors != nil {
		fields["colors"] = *input.Colors
	}
	if input.Status != nil {
		status, _ := ParseStatus(heroEntity, *input.Status)
		fields["status"] = status
	}

	return s.Patch(ctx, id, fields, notify.ActionUpdated)
}

// Publish makes the section visible. Publishing again moves it to the top.
func (s *HeroService) Publish(ctx context.Context, id uint) (db.HeroSection, error) {
	return transition(ctx, s.Collection, id, db.StatusPublished)
}

// Unpublish returns the section to draft.
func (s *HeroService) Unpublish(ctx context.Context, id uint) (db.HeroSection, error) {
	return transition(ctx, s.Collection, id, db.StatusDraft)
}

// Current returns the hero shown on the public site. When nothing is
// published the placeholder copy is returned with ok=false.
func (s *HeroService) Current() (db.HeroSection, bool) {
	if section, ok := SelectCurrentHero(s.Snapshot()); ok {
		return section, true
	}
	return PlaceholderHero(s.content), false
}

// PlaceholderHero builds the hero used before anything is published.
func PlaceholderHero(content *defaults.Provider) db.HeroSection {
	hero := defaults.Builtin().Hero
	if content != nil {
		hero = content.Current().Hero
	}
	return db.HeroSection{
		Title:       hero.Title,
		Subtitle:    hero.Subtitle,
		Description: hero.Description,
		TrustedText: hero.TrustedText,
		Status:      db.StatusPublished,
		Colors:      hero.Colors,
	}
}

func validateHeroInput(input HeroInput, creating bool) error {
	if err := requireText(heroEntity, "title", input.Title, creating); err != nil {
		return err
	}
	if input.Status != nil {
		if _, err := ParseStatus(heroEntity, *input.Status); err != nil {
			return err
		}
	}
	if input.Colors != nil {
		return validateHeroColors(*input.Colors)
	}
	return nil
}

func validateHeroColors(colors db.HeroColors) error {
	return firstError(
		checkColor(heroEntity, "titleColor", colors.TitleColor),
		checkColor(heroEntity, "subtitleColor", colors.SubtitleColor),
		checkColor(heroEntity, "descriptionColor", colors.DescriptionColor),
		checkColor(heroEntity, "trustedBadgeTextColor", colors.TrustedBadgeTextColor),
		checkColor(heroEntity, "trustedBadgeBgColor", colors.TrustedBadgeBgColor),
	)
}
