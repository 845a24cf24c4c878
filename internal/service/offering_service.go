package service

import (
	"context"
	"strings"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/notify"
)

const offeringEntity = "service"

// OfferingInput carries the fields of a create or partial update. A nil
// Features keeps the stored list; an empty slice clears it.
type OfferingInput struct {
	Title       *string
	Description *string
	Icon        *string
	Features    []string
}

// OfferingService manages the ordered list of advisory services.
type OfferingService struct {
	*OrderedCollection[db.ServiceOffering]
}

// NewOfferingService creates the services accessor.
func NewOfferingService(store Store[db.ServiceOffering], opts ...CollectionOption) *OfferingService {
	return &OfferingService{OrderedCollection: NewOrderedCollection(offeringEntity, store, opts...)}
}

// Create appends a service at the end of the list.
func (s *OfferingService) Create(ctx context.Context, input OfferingInput) (db.ServiceOffering, error) {
	if err := requireText(offeringEntity, "title", input.Title, true); err != nil {
		return db.ServiceOffering{}, s.Reject("create", err)
	}

	return s.Add(ctx, db.ServiceOffering{
		Title:       deref(input.Title),
		Description: deref(input.Description),
		Icon:        deref(input.Icon),
		Features:    cleanFeatures(input.Features),
	})
}

// Update applies a partial edit.
func (s *OfferingService) Update(ctx context.Context, id uint, input OfferingInput) (db.ServiceOffering, error) {
	if err := requireText(offeringEntity, "title", input.Title, false); err != nil {
		return db.ServiceOffering{}, s.Reject("update", err)
	}

	fields := patch{}
	fields.text("title", input.Title)
	fields.text("description", input.Description)
	fields.text("icon", input.Icon)
	if input.Features != nil {
		fields["features"] = cleanFeatures(input.Features)
	}
	return s.Patch(ctx, id, fields, notify.ActionUpdated)
}

func cleanFeatures(features []string) db.StringList {
	out := make(db.StringList, 0, len(features))
	for _, feature := range features {
		if trimmed := strings.TrimSpace(feature); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
