package service

import (
	"context"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/defaults"
	"github.com/advisorsite/internal/notify"
)

const slideEntity = "hero slide"

// SlideInput carries the fields of a create or partial update.
type SlideInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	Status      *string
}

// SlideService manages the ordered hero slider.
type SlideService struct {
	*OrderedCollection[db.HeroSlide]
	content *defaults.Provider
}

// NewSlideService creates the slide accessor.
func NewSlideService(store Store[db.HeroSlide], content *defaults.Provider, opts ...CollectionOption) *SlideService {
	return &SlideService{
		OrderedCollection: NewOrderedCollection(slideEntity, store, opts...),
		content:           content,
	}
}

// Create appends a draft slide at the end of the slider.
func (s *SlideService) Create(ctx context.Context, input SlideInput) (db.HeroSlide, error) {
	if err := validateSlideInput(input, true); err != nil {
		return db.HeroSlide{}, s.Reject("create", err)
	}

	return s.Add(ctx, db.HeroSlide{
		Title:       deref(input.Title),
		Description: deref(input.Description),
		ImageURL:    deref(input.ImageURL),
		Status:      db.StatusDraft,
	})
}

// Update applies a partial edit. Status changes only when Status is set.
func (s *SlideService) Update(ctx context.Context, id uint, input SlideInput) (db.HeroSlide, error) {
	if err := validateSlideInput(input, false); err != nil {
		return db.HeroSlide{}, s.Reject("update", err)
	}

	fields := patch{}
	fields.text("title", input.Title)
	fields.text("description", input.Description)
	fields.text("image_url", input.ImageURL)
	if input.Status != nil {
		status, _ := ParseStatus(slideEntity, *input.Status)
		fields["status"] = status
	}

	return s.Patch(ctx, id, fields, notify.ActionUpdated)
}

// Publish makes the slide visible in the public slider.
func (s *SlideService) Publish(ctx context.Context, id uint) (db.HeroSlide, error) {
	return transition(ctx, s.Collection, id, db.StatusPublished)
}

// Unpublish hides the slide; its position is kept.
func (s *SlideService) Unpublish(ctx context.Context, id uint) (db.HeroSlide, error) {
	return transition(ctx, s.Collection, id, db.StatusDraft)
}

// Public returns the published slides in order, or the default set when
// none are published.
func (s *SlideService) Public() []db.HeroSlide {
	if published := FilterPublished(s.Snapshot()); len(published) > 0 {
		return published
	}
	return DefaultSlides(s.content)
}

// DefaultSlides converts the configured fallback slides into rows.
func DefaultSlides(content *defaults.Provider) []db.HeroSlide {
	slides := defaults.Builtin().Slides
	if content != nil {
		slides = content.Current().Slides
	}

	out := make([]db.HeroSlide, len(slides))
	for i, slide := range slides {
		out[i] = db.HeroSlide{
			Title:       slide.Title,
			Description: slide.Description,
			ImageURL:    slide.ImageURL,
			OrderIndex:  i,
			Status:      db.StatusPublished,
		}
	}
	return out
}

func validateSlideInput(input SlideInput, creating bool) error {
	if err := requireText(slideEntity, "title", input.Title, creating); err != nil {
		return err
	}
	if err := checkURL(slideEntity, "imageUrl", input.ImageURL); err != nil {
		return err
	}
	if input.Status != nil {
		if _, err := ParseStatus(slideEntity, *input.Status); err != nil {
			return err
		}
	}
	return nil
}
