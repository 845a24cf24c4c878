package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/defaults"
)

const aboutEntity = "about section"

// AboutInput carries the about section fields. Nil fields keep their value.
type AboutInput struct {
	Title             *string
	Subtitle          *string
	Body              *string
	ImageURL          *string
	Mission           *string
	Vision            *string
	YearsExperience   *int
	ClientsServed     *int
	AssetsUnderAdvice *string
}

// AboutService provides access to the single about section.
type AboutService struct {
	*Singleton[db.AboutContent]
	content *defaults.Provider
}

// NewAboutService returns a new AboutService instance.
func NewAboutService(store Store[db.AboutContent], content *defaults.Provider, opts ...CollectionOption) *AboutService {
	return &AboutService{
		Singleton: NewSingleton(aboutEntity, store, opts...),
		content:   content,
	}
}

// Get returns the stored section, or the configured fallback copy.
func (s *AboutService) Get() db.AboutContent {
	if about, ok := s.Current(); ok {
		return about
	}
	fallback := defaults.Builtin().About
	if s.content != nil {
		fallback = s.content.Current().About
	}
	return db.AboutContent{
		Title:    fallback.Title,
		Subtitle: fallback.Subtitle,
		Body:     fallback.Body,
		Mission:  fallback.Mission,
		Vision:   fallback.Vision,
	}
}

// Save creates or updates the about section.
func (s *AboutService) Save(ctx context.Context, input AboutInput) (db.AboutContent, error) {
	if err := s.EnsureLoaded(ctx); err != nil {
		return db.AboutContent{}, err
	}
	_, exists := s.Current()
	if err := validateAboutInput(input, !exists); err != nil {
		return db.AboutContent{}, s.Reject("update", err)
	}

	fields := patch{}
	fields.text("title", input.Title)
	fields.text("subtitle", input.Subtitle)
	fields.text("body", input.Body)
	fields.text("image_url", input.ImageURL)
	fields.text("mission", input.Mission)
	fields.text("vision", input.Vision)
	fields.number("years_experience", input.YearsExperience)
	fields.number("clients_served", input.ClientsServed)
	fields.text("assets_under_advice", input.AssetsUnderAdvice)

	fresh := db.AboutContent{
		Title:             deref(input.Title),
		Subtitle:          deref(input.Subtitle),
		Body:              deref(input.Body),
		ImageURL:          deref(input.ImageURL),
		Mission:           deref(input.Mission),
		Vision:            deref(input.Vision),
		YearsExperience:   derefInt(input.YearsExperience),
		ClientsServed:     derefInt(input.ClientsServed),
		AssetsUnderAdvice: deref(input.AssetsUnderAdvice),
	}
	return s.Singleton.Save(ctx, fresh, fields)
}

func validateAboutInput(input AboutInput, creating bool) error {
	if err := requireText(aboutEntity, "title", input.Title, creating); err != nil {
		return err
	}
	if derefInt(input.YearsExperience) < 0 || derefInt(input.ClientsServed) < 0 {
		return invalid(aboutEntity, "yearsExperience", "figures must not be negative")
	}
	return checkURL(aboutEntity, "imageUrl", input.ImageURL)
}

// Summarize 将 markdown 压缩成一行纯文本，用作 meta description。
func Summarize(markdown string, limit int) string {
	replacer := strings.NewReplacer(
		"#", " ",
		"*", " ",
		"`", " ",
		"_", " ",
		">", " ",
		"[", " ",
		"]", " ",
		"(", " ",
		")", " ",
	)
	plain := strings.Join(strings.Fields(replacer.Replace(markdown)), " ")
	if plain == "" || limit <= 0 {
		return plain
	}
	if utf8.RuneCountInString(plain) <= limit {
		return plain
	}

	runes := []rune(plain)
	return string(runes[:limit]) + "…"
}
