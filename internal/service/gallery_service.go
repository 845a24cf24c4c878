package service

import (
	"context"
	"strings"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/notify"
)

const galleryEntity = "gallery image"

// GalleryFilter describes filters for listing gallery images.
type GalleryFilter struct {
	Search   string
	Category string
	Page     int
	PerPage  int
}

// GalleryListResult aggregates paginated gallery results.
type GalleryListResult struct {
	Items      []db.GalleryItem
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// GalleryInput represents fields accepted when creating or updating a gallery image.
type GalleryInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	ImageWidth  *int
	ImageHeight *int
	Category    *string
}

// GalleryService handles gallery CRUD and drag-and-drop ordering.
type GalleryService struct {
	*OrderedCollection[db.GalleryItem]
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(store Store[db.GalleryItem], opts ...CollectionOption) *GalleryService {
	return &GalleryService{OrderedCollection: NewOrderedCollection(galleryEntity, store, opts...)}
}

// List returns cached gallery images matching the filter, in display order.
func (s *GalleryService) List(filter GalleryFilter) GalleryListResult {
	result := GalleryListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 12),
	}

	category := strings.TrimSpace(filter.Category)
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	matched := make([]db.GalleryItem, 0)
	for _, item := range s.Snapshot() {
		if category != "" && !strings.EqualFold(item.Category, category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Title), search) &&
			!strings.Contains(strings.ToLower(item.Description), search) {
			continue
		}
		matched = append(matched, item)
	}

	result.Total = int64(len(matched))
	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)

	offset := (result.Page - 1) * result.PerPage
	if offset >= len(matched) {
		result.Items = []db.GalleryItem{}
		return result
	}
	end := offset + result.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	result.Items = matched[offset:end]
	return result
}

// Categories returns the distinct categories in display order.
func (s *GalleryService) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, item := range s.Snapshot() {
		category := strings.TrimSpace(item.Category)
		if category == "" {
			continue
		}
		key := strings.ToLower(category)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, category)
	}
	return out
}

// Create appends a new gallery image.
func (s *GalleryService) Create(ctx context.Context, input GalleryInput) (db.GalleryItem, error) {
	if err := validateGalleryInput(input, true); err != nil {
		return db.GalleryItem{}, s.Reject("create", err)
	}

	return s.Add(ctx, db.GalleryItem{
		Title:       deref(input.Title),
		Description: deref(input.Description),
		ImageURL:    deref(input.ImageURL),
		ImageWidth:  derefInt(input.ImageWidth),
		ImageHeight: derefInt(input.ImageHeight),
		Category:    deref(input.Category),
	})
}

// Update modifies an existing gallery image.
func (s *GalleryService) Update(ctx context.Context, id uint, input GalleryInput) (db.GalleryItem, error) {
	if err := validateGalleryInput(input, false); err != nil {
		return db.GalleryItem{}, s.Reject("update", err)
	}

	fields := patch{}
	fields.text("title", input.Title)
	fields.text("description", input.Description)
	fields.text("image_url", input.ImageURL)
	fields.number("image_width", input.ImageWidth)
	fields.number("image_height", input.ImageHeight)
	fields.text("category", input.Category)
	return s.Patch(ctx, id, fields, notify.ActionUpdated)
}

func validateGalleryInput(input GalleryInput, creating bool) error {
	if err := requireText(galleryEntity, "imageUrl", input.ImageURL, creating); err != nil {
		return err
	}
	if err := checkURL(galleryEntity, "imageUrl", input.ImageURL); err != nil {
		return err
	}
	if derefInt(input.ImageWidth) < 0 || derefInt(input.ImageHeight) < 0 {
		return invalid(galleryEntity, "imageWidth", "image dimensions must not be negative")
	}
	return nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePerPage(perPage, fallback int) int {
	if perPage <= 0 {
		return fallback
	}
	return perPage
}

func calculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
