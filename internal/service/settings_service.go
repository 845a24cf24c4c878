package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/defaults"
	"github.com/advisorsite/internal/metrics"
	"github.com/advisorsite/internal/notify"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const settingsEntity = "company settings"

// SettingsInput 用于保存公司设置。保存总是写入完整的一版。
type SettingsInput struct {
	CompanyName    string
	Tagline        string
	LogoURL        string
	FaviconURL     string
	SEOTitle       string
	SEODescription string
	SEOKeywords    []string
	Social         db.SocialLinks
	Theme          db.ThemeColors
}

// SettingsService 提供公司设置的读取与更新。每次保存插入新的一行并停用旧行，
// 历史版本保留在表中。
type SettingsService struct {
	db      *gorm.DB
	content *defaults.Provider
	events  notify.Publisher
	logger  *zap.Logger

	writeMu sync.Mutex

	mu      sync.RWMutex
	active  *db.CompanySettings
	loaded  bool
	loading bool
	lastErr string
}

// NewSettingsService 构造 SettingsService。
func NewSettingsService(gdb *gorm.DB, content *defaults.Provider, opts ...CollectionOption) *SettingsService {
	options := collectionOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = zap.NewNop()
	}
	return &SettingsService{
		db:      gdb,
		content: content,
		events:  options.events,
		logger:  options.logger.With(zap.String("entity", settingsEntity)),
	}
}

// Entity returns the accessor's name.
func (s *SettingsService) Entity() string {
	return settingsEntity
}

// Load reads the active row: the newest by created_at among is_active rows.
func (s *SettingsService) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var rows []db.CompanySettings
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at desc").Order("id desc").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		err = &StoreError{Op: "load " + settingsEntity, Err: err}
	}
	metrics.ObserveReload(settingsEntity, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = Message(err)
		s.logger.Warn("load failed", zap.Error(err))
		return err
	}
	s.active = nil
	if len(rows) > 0 {
		active := rows[0]
		s.active = &active
	}
	s.loaded = true
	s.lastErr = ""
	return nil
}

// EnsureLoaded loads the settings on first use.
func (s *SettingsService) EnsureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Load(ctx)
}

// Current returns the active settings row, if any.
func (s *SettingsService) Current() (db.CompanySettings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return db.CompanySettings{}, false
	}
	return *s.active, true
}

// Get returns the active settings, falling back to the configured branding.
func (s *SettingsService) Get() db.CompanySettings {
	if active, ok := s.Current(); ok {
		return active
	}
	fallback := defaults.Builtin().Settings
	if s.content != nil {
		fallback = s.content.Current().Settings
	}
	return db.CompanySettings{
		CompanyName:    fallback.CompanyName,
		Tagline:        fallback.Tagline,
		SEOTitle:       fallback.SEOTitle,
		SEODescription: fallback.SEODescription,
		SEOKeywords:    db.StringList(append([]string(nil), fallback.SEOKeywords...)),
		Theme:          fallback.Theme,
	}
}

// Loading reports whether a Load is in flight.
func (s *SettingsService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the message of the most recent failure.
func (s *SettingsService) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Save 写入新的一版设置并在同一事务中停用其他版本。
func (s *SettingsService) Save(ctx context.Context, input SettingsInput) (db.CompanySettings, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	row, err := sanitizeSettings(input)
	if err != nil {
		return db.CompanySettings{}, s.fail(err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.CompanySettings{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("deactivate settings: %w", err)
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("insert settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return db.CompanySettings{}, s.fail(&StoreError{Op: "save " + settingsEntity, Err: err})
	}

	s.mu.Lock()
	saved := row
	s.active = &saved
	s.loaded = true
	s.lastErr = ""
	s.mu.Unlock()

	metrics.ObserveMutation(settingsEntity, "update", nil)
	if s.events != nil {
		s.events.Publish(notify.Event{Entity: settingsEntity, Action: notify.ActionUpdated, ID: row.ID})
	}
	return row, nil
}

func (s *SettingsService) fail(err error) error {
	metrics.ObserveMutation(settingsEntity, "update", err)
	s.mu.Lock()
	s.lastErr = Message(err)
	s.mu.Unlock()
	if errors.Is(err, ErrValidation) {
		s.logger.Debug("input rejected", zap.Error(err))
	} else {
		s.logger.Error("save failed", zap.Error(err))
	}
	return err
}

func sanitizeSettings(input SettingsInput) (db.CompanySettings, error) {
	row := db.CompanySettings{
		CompanyName:    strings.TrimSpace(input.CompanyName),
		Tagline:        strings.TrimSpace(input.Tagline),
		LogoURL:        strings.TrimSpace(input.LogoURL),
		FaviconURL:     strings.TrimSpace(input.FaviconURL),
		SEOTitle:       strings.TrimSpace(input.SEOTitle),
		SEODescription: strings.TrimSpace(input.SEODescription),
		SEOKeywords:    cleanFeatures(input.SEOKeywords),
		Social: db.SocialLinks{
			LinkedIn:  strings.TrimSpace(input.Social.LinkedIn),
			Twitter:   strings.TrimSpace(input.Social.Twitter),
			Facebook:  strings.TrimSpace(input.Social.Facebook),
			Instagram: strings.TrimSpace(input.Social.Instagram),
		},
		Theme: db.ThemeColors{
			PrimaryColor:    strings.TrimSpace(input.Theme.PrimaryColor),
			SecondaryColor:  strings.TrimSpace(input.Theme.SecondaryColor),
			AccentColor:     strings.TrimSpace(input.Theme.AccentColor),
			BackgroundColor: strings.TrimSpace(input.Theme.BackgroundColor),
			TextColor:       strings.TrimSpace(input.Theme.TextColor),
		},
		IsActive: true,
	}

	if row.CompanyName == "" {
		return row, invalid(settingsEntity, "companyName", "company name is required")
	}
	for _, link := range []struct {
		field string
		value string
	}{
		{"logoUrl", row.LogoURL},
		{"faviconUrl", row.FaviconURL},
		{"social.linkedin", row.Social.LinkedIn},
		{"social.twitter", row.Social.Twitter},
		{"social.facebook", row.Social.Facebook},
		{"social.instagram", row.Social.Instagram},
	} {
		value := link.value
		if err := checkURL(settingsEntity, link.field, &value); err != nil {
			return row, err
		}
	}
	return row, firstError(
		checkColor(settingsEntity, "primaryColor", row.Theme.PrimaryColor),
		checkColor(settingsEntity, "secondaryColor", row.Theme.SecondaryColor),
		checkColor(settingsEntity, "accentColor", row.Theme.AccentColor),
		checkColor(settingsEntity, "backgroundColor", row.Theme.BackgroundColor),
		checkColor(settingsEntity, "textColor", row.Theme.TextColor),
	)
}
