package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/defaults"
	"github.com/advisorsite/internal/notify"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Site bundles every content accessor.
type Site struct {
	Hero        *HeroService
	Slides      *SlideService
	Team        *TeamService
	Offerings   *OfferingService
	Clients     *ClientService
	Credentials *CredentialService
	Gallery     *GalleryService
	About       *AboutService
	Contact     *ContactService
	Settings    *SettingsService

	Content *defaults.Provider
}

// NewSite wires the accessors over gdb.
func NewSite(gdb *gorm.DB, content *defaults.Provider, events notify.Publisher, logger *zap.Logger) *Site {
	if content == nil {
		content = defaults.Static(defaults.Builtin())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []CollectionOption{WithLogger(logger)}
	if events != nil {
		opts = append(opts, WithEvents(events))
	}

	return &Site{
		Hero: NewHeroService(NewGormStore[db.HeroSection](gdb, TableSpec{
			Entity: heroEntity, Table: "hero_sections", OrderBy: "updated_at desc, id desc",
		}), content, opts...),
		Slides: NewSlideService(NewGormStore[db.HeroSlide](gdb, orderedSpec(slideEntity, "hero_slides")), content, opts...),
		Team:   NewTeamService(NewGormStore[db.TeamMember](gdb, orderedSpec(teamEntity, "team_members")), opts...),
		Offerings: NewOfferingService(
			NewGormStore[db.ServiceOffering](gdb, orderedSpec(offeringEntity, "service_offerings")), opts...),
		Clients: NewClientService(NewGormStore[db.Client](gdb, orderedSpec(clientEntity, "clients")), opts...),
		Credentials: NewCredentialService(
			NewGormStore[db.Credential](gdb, orderedSpec(credentialEntity, "credentials")), opts...),
		Gallery: NewGalleryService(NewGormStore[db.GalleryItem](gdb, orderedSpec(galleryEntity, "gallery_items")), opts...),
		About: NewAboutService(NewGormStore[db.AboutContent](gdb, TableSpec{
			Entity: aboutEntity, Table: "about_contents",
		}), content, opts...),
		Contact: NewContactService(NewGormStore[db.ContactContent](gdb, TableSpec{
			Entity: contactEntity, Table: "contact_contents",
		}), content, opts...),
		Settings: NewSettingsService(gdb, content, opts...),
		Content:  content,
	}
}

func orderedSpec(entity, table string) TableSpec {
	return TableSpec{
		Entity:      entity,
		Table:       table,
		OrderBy:     "order_index asc, id asc",
		OrderColumn: "order_index",
	}
}

// Loaders returns every cache in load order.
func (s *Site) Loaders() []Loader {
	return []Loader{
		s.Hero, s.Slides, s.Team, s.Offerings, s.Clients,
		s.Credentials, s.Gallery, s.About, s.Contact, s.Settings,
	}
}

// Polled returns the caches refreshed on a schedule.
func (s *Site) Polled() []Refreshable {
	return []Refreshable{s.Team, s.Offerings}
}

// LoadAll fills every cache. A failing section does not stop the others.
func (s *Site) LoadAll(ctx context.Context) error {
	var errs []error
	for _, loader := range s.Loaders() {
		if err := loader.Load(ctx); err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", loader.Entity(), err))
		}
	}
	return errors.Join(errs...)
}

// PublicContent is everything the public home page renders.
type PublicContent struct {
	Hero            db.HeroSection       `json:"hero"`
	HeroPlaceholder bool                 `json:"heroPlaceholder"`
	Slides          []db.HeroSlide       `json:"slides"`
	About           db.AboutContent      `json:"about"`
	Services        []db.ServiceOffering `json:"services"`
	Team            []db.TeamMember      `json:"team"`
	Credentials     []db.Credential      `json:"credentials"`
	Clients         []db.Client          `json:"clients"`
	Gallery         []db.GalleryItem     `json:"gallery"`
	Contact         db.ContactContent    `json:"contact"`
	Settings        db.CompanySettings   `json:"settings"`
}

// Public assembles the public view from the caches.
func (s *Site) Public() PublicContent {
	hero, published := s.Hero.Current()
	return PublicContent{
		Hero:            hero,
		HeroPlaceholder: !published,
		Slides:          s.Slides.Public(),
		About:           s.About.Get(),
		Services:        s.Offerings.Snapshot(),
		Team:            s.Team.Snapshot(),
		Credentials:     s.Credentials.Snapshot(),
		Clients:         s.Clients.Snapshot(),
		Gallery:         s.Gallery.Snapshot(),
		Contact:         s.Contact.Get(),
		Settings:        s.Settings.Get(),
	}
}
