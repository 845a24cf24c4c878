package view

import (
	"html/template"
	"strings"
)

// IconOption describes a selectable icon for the admin UI.
type IconOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type iconAsset struct {
	Key   string
	SVG   string
	Label string
}

type iconSet struct {
	definitions []iconAsset
	fallback    iconAsset
	lookup      map[string]iconAsset
}

func newIconSet(fallback iconAsset, definitions ...iconAsset) iconSet {
	lookup := make(map[string]iconAsset, len(definitions)+1)
	for _, icon := range definitions {
		lookup[icon.Key] = icon
	}
	lookup[fallback.Key] = fallback
	return iconSet{definitions: definitions, fallback: fallback, lookup: lookup}
}

func (s iconSet) options() []IconOption {
	options := make([]IconOption, 0, len(s.definitions))
	for _, icon := range s.definitions {
		options = append(options, IconOption{Key: icon.Key, Label: icon.Label})
	}
	return options
}

func (s iconSet) svg(key string) template.HTML {
	trimmed := strings.ToLower(strings.TrimSpace(key))
	if icon, ok := s.lookup[trimmed]; ok {
		return template.HTML(icon.SVG)
	}
	return template.HTML(s.fallback.SVG)
}

func (s iconSet) has(key string) bool {
	_, ok := s.lookup[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

var (
	socialIcons = newIconSet(
		iconAsset{Key: "website", Label: "Website", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><circle cx="12" cy="12" r="9"/><path d="M3 12h18M12 3c2.5 2.7 3.75 5.7 3.75 9S14.5 18.3 12 21M12 3c-2.5 2.7-3.75 5.7-3.75 9S9.5 18.3 12 21"/></svg>`},
		iconAsset{Key: "linkedin", Label: "LinkedIn", SVG: `<svg viewBox="0 0 24 24" fill="currentColor" aria-hidden="true"><path d="M20.45 20.45h-3.55v-5.57c0-1.33-.03-3.04-1.85-3.04-1.86 0-2.14 1.45-2.14 2.94v5.67H9.35V9h3.41v1.56h.05c.48-.9 1.64-1.85 3.37-1.85 3.6 0 4.27 2.37 4.27 5.46v6.28zM5.34 7.43a2.06 2.06 0 1 1 0-4.12 2.06 2.06 0 0 1 0 4.12zM7.12 20.45H3.56V9h3.56v11.45zM22.22 0H1.77C.79 0 0 .77 0 1.73v20.54C0 23.23.79 24 1.77 24h20.45c.98 0 1.78-.77 1.78-1.73V1.73C24 .77 23.2 0 22.22 0z"/></svg>`},
		iconAsset{Key: "twitter", Label: "X / Twitter", SVG: `<svg viewBox="0 0 24 24" fill="currentColor" aria-hidden="true"><path d="M18.901 1.153h3.68l-8.04 9.19L24 22.846h-7.406l-5.8-7.584-6.638 7.584H.474l8.6-9.83L0 1.154h7.594l5.243 6.932ZM17.61 20.644h2.039L6.486 3.24H4.298Z"/></svg>`},
		iconAsset{Key: "facebook", Label: "Facebook", SVG: `<svg viewBox="0 0 24 24" fill="currentColor" aria-hidden="true"><path d="M24 12.07C24 5.41 18.63 0 12 0S0 5.4 0 12.07C0 18.1 4.39 23.1 10.13 24v-8.44H7.08v-3.49h3.04V9.41c0-3.02 1.8-4.7 4.54-4.7 1.31 0 2.68.24 2.68.24v2.97h-1.5c-1.5 0-1.96.93-1.96 1.89v2.26h3.32l-.53 3.5h-2.8V24C19.62 23.1 24 18.1 24 12.07"/></svg>`},
		iconAsset{Key: "instagram", Label: "Instagram", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><rect x="3" y="3" width="18" height="18" rx="5"/><circle cx="12" cy="12" r="4"/><circle cx="17.5" cy="6.5" r=".75" fill="currentColor"/></svg>`},
		iconAsset{Key: "email", Label: "Email", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M21.75 6.75v10.5a2.25 2.25 0 0 1-2.25 2.25h-15A2.25 2.25 0 0 1 2.25 17.25V6.75M21.75 6.75A2.25 2.25 0 0 0 19.5 4.5h-15A2.25 2.25 0 0 0 2.25 6.75v.243c0 .781.405 1.506 1.071 1.916l7.5 4.615a2.25 2.25 0 0 0 2.157 0l7.5-4.615a2.25 2.25 0 0 0 1.072-1.916V6.75"/></svg>`},
	)

	serviceIcons = newIconSet(
		iconAsset{Key: "default", Label: "Default", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><circle cx="12" cy="12" r="9"/><path d="M8.25 12.75 10.5 15l5.25-6"/></svg>`},
		iconAsset{Key: "chart-line", Label: "Growth chart", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M3 3v18h18"/><path d="m6.75 15 4.5-4.5 3 3 5.25-6"/></svg>`},
		iconAsset{Key: "umbrella", Label: "Umbrella", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M12 3a9 9 0 0 1 9 9H3a9 9 0 0 1 9-9Z"/><path d="M12 12v6.75a2.25 2.25 0 0 1-4.5 0"/></svg>`},
		iconAsset{Key: "briefcase", Label: "Briefcase", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><rect x="3" y="7.5" width="18" height="12" rx="2"/><path d="M8.25 7.5V6a2.25 2.25 0 0 1 2.25-2.25h3A2.25 2.25 0 0 1 15.75 6v1.5M3 12.75h18"/></svg>`},
		iconAsset{Key: "shield", Label: "Shield", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M12 3 4.5 6v5.25c0 4.5 3.2 8.3 7.5 9.75 4.3-1.45 7.5-5.25 7.5-9.75V6L12 3Z"/></svg>`},
		iconAsset{Key: "calculator", Label: "Calculator", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><rect x="5.25" y="3" width="13.5" height="18" rx="2"/><path d="M8.25 6.75h7.5M8.25 11.25h.01M12 11.25h.01M15.75 11.25h.01M8.25 15h.01M12 15h.01M15.75 15h.01M8.25 18h7.5"/></svg>`},
		iconAsset{Key: "home", Label: "Home", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="m3 11.25 9-7.5 9 7.5"/><path d="M5.25 9.75V20.25h13.5V9.75"/></svg>`},
	)
)

// SocialIcon returns the inline SVG for a social network key. Unknown keys
// fall back to the generic website globe.
func SocialIcon(key string) template.HTML {
	return socialIcons.svg(key)
}

// SocialIconOptions lists the supported social networks.
func SocialIconOptions() []IconOption {
	return socialIcons.options()
}

// ServiceIcon returns the inline SVG for a service offering icon key.
func ServiceIcon(key string) template.HTML {
	return serviceIcons.svg(key)
}

// ServiceIconOptions lists the icons an offering can use.
func ServiceIconOptions() []IconOption {
	return serviceIcons.options()
}

// IsServiceIcon reports whether key names a known service icon.
func IsServiceIcon(key string) bool {
	return serviceIcons.has(key)
}
