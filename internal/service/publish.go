package service

import (
	"context"
	"sort"
	"strings"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/notify"
)

// Publishable is a row with a draft/published lifecycle.
type Publishable interface {
	Entity
	PublishState() db.PublishStatus
}

// ParseStatus validates a status coming from a form or JSON body.
func ParseStatus(entity, raw string) (db.PublishStatus, error) {
	status := db.PublishStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", invalid(entity, "status", "status must be %q or %q", db.StatusDraft, db.StatusPublished)
	}
	return status, nil
}

// transition 只写 status 一列，其余字段保持不变。重复发布会刷新 updated_at，
// 使该记录成为最新发布的版本。
func transition[T Publishable](ctx context.Context, c *Collection[T], id uint, to db.PublishStatus) (T, error) {
	action := notify.ActionPublished
	if to == db.StatusDraft {
		action = notify.ActionDrafted
	}
	return c.Patch(ctx, id, map[string]interface{}{"status": to}, action)
}

// SelectCurrentHero returns the published section with the newest
// UpdatedAt. Ties go to the higher id.
func SelectCurrentHero(sections []db.HeroSection) (db.HeroSection, bool) {
	var (
		current db.HeroSection
		found   bool
	)
	for _, section := range sections {
		if section.Status != db.StatusPublished {
			continue
		}
		if !found ||
			section.UpdatedAt.After(current.UpdatedAt) ||
			(section.UpdatedAt.Equal(current.UpdatedAt) && section.ID > current.ID) {
			current = section
			found = true
		}
	}
	return current, found
}

// FilterPublished keeps published rows, in display order.
func FilterPublished(slides []db.HeroSlide) []db.HeroSlide {
	out := make([]db.HeroSlide, 0, len(slides))
	for _, slide := range slides {
		if slide.Status == db.StatusPublished {
			out = append(out, slide)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out
}
