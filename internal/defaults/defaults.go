// Package defaults holds the fallback copy shown while the admin has not
// published content yet. One Content value is shared by the public site and
// the admin screens.
package defaults

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/advisorsite/internal/db"
	"gopkg.in/yaml.v3"
)

// Hero is the placeholder copy used when no hero section is published.
type Hero struct {
	Title       string        `yaml:"title"`
	Subtitle    string        `yaml:"subtitle"`
	Description string        `yaml:"description"`
	TrustedText string        `yaml:"trustedText"`
	Colors      db.HeroColors `yaml:"colors"`
}

// Slide is one entry of the built-in slider.
type Slide struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"imageUrl"`
}

// About is the fallback about section.
type About struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Body     string `yaml:"body"`
	Mission  string `yaml:"mission"`
	Vision   string `yaml:"vision"`
}

// Contact is the fallback contact section.
type Contact struct {
	Title       string `yaml:"title"`
	Subtitle    string `yaml:"subtitle"`
	Email       string `yaml:"email"`
	Phone       string `yaml:"phone"`
	Address     string `yaml:"address"`
	OfficeHours string `yaml:"officeHours"`
}

// Settings is the fallback branding.
type Settings struct {
	CompanyName    string         `yaml:"companyName"`
	Tagline        string         `yaml:"tagline"`
	SEOTitle       string         `yaml:"seoTitle"`
	SEODescription string         `yaml:"seoDescription"`
	SEOKeywords    []string       `yaml:"seoKeywords"`
	Theme          db.ThemeColors `yaml:"theme"`
}

// Content bundles every fallback value.
type Content struct {
	Hero     Hero     `yaml:"hero"`
	Slides   []Slide  `yaml:"slides"`
	About    About    `yaml:"about"`
	Contact  Contact  `yaml:"contact"`
	Settings Settings `yaml:"settings"`
}

// Builtin returns the compiled-in defaults.
func Builtin() Content {
	return Content{
		Hero: Hero{
			Title:       "Independent advice for lasting wealth",
			Subtitle:    "Investment advisory for families, founders and institutions",
			Description: "We build disciplined portfolios around your goals, with transparent fees and a fiduciary duty to you.",
			TrustedText: "Trusted by 200+ clients",
			Colors: db.HeroColors{
				TitleColor:            "#FFFFFF",
				SubtitleColor:         "#E2E8F0",
				DescriptionColor:      "#CBD5E1",
				TrustedBadgeTextColor: "#0F172A",
				TrustedBadgeBgColor:   "#FACC15",
			},
		},
		Slides: []Slide{
			{
				Title:       "Wealth management",
				Description: "Goal-based portfolios reviewed every quarter.",
				ImageURL:    "/static/img/slides/wealth.jpg",
			},
			{
				Title:       "Retirement planning",
				Description: "Income strategies that last as long as you do.",
				ImageURL:    "/static/img/slides/retirement.jpg",
			},
			{
				Title:       "Corporate advisory",
				Description: "Treasury, M&A and capital-raising support.",
				ImageURL:    "/static/img/slides/corporate.jpg",
			},
			{
				Title:       "Tax-efficient investing",
				Description: "Structures that keep more of your returns working.",
				ImageURL:    "/static/img/slides/tax.jpg",
			},
			{
				Title:       "Estate & legacy",
				Description: "Pass on wealth and values across generations.",
				ImageURL:    "/static/img/slides/legacy.jpg",
			},
		},
		About: About{
			Title:    "About us",
			Subtitle: "A fiduciary firm built on research and long-term relationships",
			Body:     "Our advisors combine institutional research with personal service.",
			Mission:  "Help every client make confident financial decisions.",
			Vision:   "Be the most trusted independent advisor in the region.",
		},
		Contact: Contact{
			Title:       "Get in touch",
			Subtitle:    "Book an introductory meeting with an advisor",
			Email:       "info@example.com",
			OfficeHours: "Mon-Fri 9:00-18:00",
		},
		Settings: Settings{
			CompanyName:    "Advisory Partners",
			Tagline:        "Independent investment advice",
			SEOTitle:       "Advisory Partners | Investment Advisory",
			SEODescription: "Independent investment advisory for individuals and institutions.",
			SEOKeywords:    []string{"investment advisory", "wealth management", "financial planning"},
			Theme: db.ThemeColors{
				PrimaryColor:    "#0F172A",
				SecondaryColor:  "#1E3A8A",
				AccentColor:     "#FACC15",
				BackgroundColor: "#FFFFFF",
				TextColor:       "#0F172A",
			},
		},
	}
}

// LoadFile reads a YAML override on top of the builtin defaults. Keys
// missing from the file keep their builtin value; an empty slide list keeps
// the builtin slides so the slider never renders empty.
func LoadFile(path string) (Content, error) {
	content := Builtin()

	raw, err := os.ReadFile(path)
	if err != nil {
		return content, fmt.Errorf("read default content %s: %w", path, err)
	}

	override := content
	override.Slides = nil
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return content, fmt.Errorf("parse default content %s: %w", path, err)
	}
	if len(override.Slides) == 0 {
		override.Slides = content.Slides
	}
	for i, slide := range override.Slides {
		if strings.TrimSpace(slide.Title) == "" {
			return content, fmt.Errorf("default slide %d: title is required", i)
		}
	}

	return override, nil
}

// Provider hands out the current defaults and swaps them atomically when
// the YAML file changes.
type Provider struct {
	current atomic.Pointer[Content]
	path    string
}

// NewProvider loads path (if set) and falls back to Builtin.
func NewProvider(path string) (*Provider, error) {
	p := &Provider{path: strings.TrimSpace(path)}
	content := Builtin()
	if p.path != "" {
		loaded, err := LoadFile(p.path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err == nil {
			content = loaded
		}
	}
	p.current.Store(&content)
	return p, nil
}

// Static returns a provider that always serves content.
func Static(content Content) *Provider {
	p := &Provider{}
	p.current.Store(&content)
	return p
}

// Current returns a copy of the active defaults.
func (p *Provider) Current() Content {
	if p == nil {
		return Builtin()
	}
	content := p.current.Load()
	if content == nil {
		return Builtin()
	}
	copied := *content
	copied.Slides = append([]Slide(nil), content.Slides...)
	copied.Settings.SEOKeywords = append([]string(nil), content.Settings.SEOKeywords...)
	return copied
}

// Path returns the YAML file backing the provider, if any.
func (p *Provider) Path() string {
	return p.path
}

// Reload re-reads the YAML file. The previous value is kept on error.
func (p *Provider) Reload() error {
	if p.path == "" {
		return nil
	}
	content, err := LoadFile(p.path)
	if err != nil {
		return err
	}
	p.current.Store(&content)
	return nil
}
