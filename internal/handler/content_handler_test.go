package handler

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/service"
)

func TestCreateHeroSectionIsDraftAndPublishes(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	f.registerAdminAPI()
	f.router.GET("/api/public/content", f.api.GetPublicContent)

	section := createItem[db.HeroSection](t, f, "/admin/api/hero", map[string]interface{}{
		"title":  "Independent advice",
		"status": "published",
	})
	if section.Status != db.StatusDraft {
		t.Fatalf("expected new section to be draft, got %q", section.Status)
	}

	var content service.PublicContent
	decodeBody(t, f.do(t, http.MethodGet, "/api/public/content", nil), &content)
	if !content.HeroPlaceholder {
		t.Fatal("expected placeholder hero while nothing is published")
	}

	recorder := f.do(t, http.MethodPost, "/admin/api/hero/"+strconv.Itoa(int(section.ID))+"/publish", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("publish: expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var published itemResponse[db.HeroSection]
	decodeBody(t, recorder, &published)
	if published.Item.Status != db.StatusPublished || published.Item.Title != "Independent advice" {
		t.Fatalf("unexpected published section: %+v", published.Item)
	}

	decodeBody(t, f.do(t, http.MethodGet, "/api/public/content", nil), &content)
	if content.HeroPlaceholder || content.Hero.Title != "Independent advice" {
		t.Fatalf("expected published hero on the public site, got %+v", content.Hero)
	}
}

func TestCreateHeroSectionRejectsBlankTitle(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	f.registerAdminAPI()

	recorder := f.do(t, http.MethodPost, "/admin/api/hero", map[string]interface{}{"title": "  "})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	var resp itemResponse[db.HeroSection]
	decodeBody(t, recorder, &resp)
	if !strings.Contains(resp.Error, "title") {
		t.Fatalf("expected error to name the field, got %q", resp.Error)
	}
}

func TestUpdateMissingHeroSectionReturnsNotFound(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	f.registerAdminAPI()

	recorder := f.do(t, http.MethodPut, "/admin/api/hero/999", map[string]interface{}{"title": "x"})
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", recorder.Code, recorder.Body.String())
	}

	recorder = f.do(t, http.MethodPut, "/admin/api/hero/abc", map[string]interface{}{"title": "x"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad id, got %d", recorder.Code)
	}
}

func TestReorderTeamMembersByDragAndDrop(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	f.registerAdminAPI()

	var ids []uint
	for _, name := range []string{"A", "B", "C", "D"} {
		member := createItem[db.TeamMember](t, f, "/admin/api/team", map[string]interface{}{"name": name})
		ids = append(ids, member.ID)
	}

	recorder := f.do(t, http.MethodPost, "/admin/api/team/reorder", map[string]interface{}{
		"movedId": ids[2],
		"overId":  ids[0],
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var resp listResponse[db.TeamMember]
	decodeBody(t, recorder, &resp)
	if !resp.Changed {
		t.Fatal("expected the move to report a change")
	}

	got := make([]string, len(resp.Items))
	for i, member := range resp.Items {
		got[i] = member.Name
		if member.OrderIndex != i {
			t.Fatalf("expected dense order, %s has %d at position %d", member.Name, member.OrderIndex, i)
		}
	}
	if strings.Join(got, "") != "CABD" {
		t.Fatalf("expected CABD, got %v", got)
	}

	var stored []db.TeamMember
	if err := f.db.Order("order_index asc").Find(&stored).Error; err != nil {
		t.Fatalf("list stored members: %v", err)
	}
	if stored[0].Name != "C" || stored[3].Name != "D" {
		t.Fatalf("expected stored order to follow the move, got %+v", stored)
	}

	recorder = f.do(t, http.MethodPost, "/admin/api/team/reorder", map[string]interface{}{
		"movedId": ids[1],
		"overId":  ids[1],
	})
	decodeBody(t, recorder, &resp)
	if recorder.Code != http.StatusOK || resp.Changed {
		t.Fatalf("expected dropping onto itself to be a no-op, got %d changed=%v", recorder.Code, resp.Changed)
	}
}

func TestReorderRejectsEmptyRequest(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	f.registerAdminAPI()

	recorder := f.do(t, http.MethodPost, "/admin/api/slides/reorder", map[string]interface{}{})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestReorderSlidesWithFullOrder(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	f.registerAdminAPI()

	first := createItem[db.HeroSlide](t, f, "/admin/api/slides", map[string]interface{}{"title": "one"})
	second := createItem[db.HeroSlide](t, f, "/admin/api/slides", map[string]interface{}{"title": "two"})

	recorder := f.do(t, http.MethodPost, "/admin/api/slides/reorder", map[string]interface{}{
		"ids": []uint{second.ID, first.ID},
	})
	var resp listResponse[db.HeroSlide]
	decodeBody(t, recorder, &resp)
	if recorder.Code != http.StatusOK || !resp.Changed {
		t.Fatalf("expected reorder to apply, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if resp.Items[0].ID != second.ID || resp.Items[1].ID != first.ID {
		t.Fatalf("unexpected order: %+v", resp.Items)
	}

	recorder = f.do(t, http.MethodPost, "/admin/api/slides/reorder", map[string]interface{}{
		"ids": []uint{second.ID},
	})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected a partial order to be rejected, got %d", recorder.Code)
	}
}

func TestDeleteClientReportsPermissionDenied(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	f.registerAdminAPI()

	client := createItem[db.Client](t, f, "/admin/api/clients", map[string]interface{}{"name": "Acme"})
	if err := f.db.Exec(`CREATE TRIGGER clients_keep BEFORE DELETE ON clients BEGIN SELECT RAISE(IGNORE); END;`).Error; err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	recorder := f.do(t, http.MethodDelete, "/admin/api/clients/"+strconv.Itoa(int(client.ID)), nil)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var resp itemResponse[db.Client]
	decodeBody(t, recorder, &resp)
	if !strings.Contains(resp.Error, "grant DELETE") || !strings.Contains(resp.Error, "clients") {
		t.Fatalf("expected remediation text, got %q", resp.Error)
	}

	var list listResponse[db.Client]
	decodeBody(t, f.do(t, http.MethodGet, "/admin/api/clients", nil), &list)
	if len(list.Items) != 1 || list.LastError == "" {
		t.Fatalf("expected client kept with last error recorded, got %+v", list)
	}
}

func TestDeleteMissingClientReturnsNotFound(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	f.registerAdminAPI()

	recorder := f.do(t, http.MethodDelete, "/admin/api/clients/42", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestGalleryListFiltersByCategory(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	f.registerAdminAPI()

	createItem[db.GalleryItem](t, f, "/admin/api/gallery", map[string]interface{}{
		"title": "Office", "imageUrl": "/static/uploads/office.jpg", "category": "Offices",
	})
	createItem[db.GalleryItem](t, f, "/admin/api/gallery", map[string]interface{}{
		"title": "Summit", "imageUrl": "/static/uploads/summit.jpg", "category": "Events",
	})

	recorder := f.do(t, http.MethodGet, "/admin/api/gallery?category=events", nil)
	var resp struct {
		Items      []db.GalleryItem `json:"items"`
		Total      int64            `json:"total"`
		Categories []string         `json:"categories"`
	}
	decodeBody(t, recorder, &resp)
	if resp.Total != 1 || len(resp.Items) != 1 || resp.Items[0].Title != "Summit" {
		t.Fatalf("unexpected filtered gallery: %+v", resp)
	}
	if len(resp.Categories) != 2 {
		t.Fatalf("expected both categories, got %v", resp.Categories)
	}
}

func TestAboutFallsBackAndSaves(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	f.registerAdminAPI()

	var resp struct {
		About     db.AboutContent `json:"about"`
		HTML      string          `json:"html"`
		IsDefault bool            `json:"isDefault"`
	}
	decodeBody(t, f.do(t, http.MethodGet, "/admin/api/about", nil), &resp)
	if !resp.IsDefault || resp.About.Title == "" {
		t.Fatalf("expected default about copy, got %+v", resp)
	}

	recorder := f.do(t, http.MethodPut, "/admin/api/about", map[string]interface{}{
		"title": "Who we are",
		"body":  "We advise **families**.<script>alert(1)</script>",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	decodeBody(t, f.do(t, http.MethodGet, "/admin/api/about", nil), &resp)
	if resp.IsDefault || resp.About.Title != "Who we are" {
		t.Fatalf("expected stored about section, got %+v", resp)
	}
	if !strings.Contains(resp.HTML, "<strong>families</strong>") || strings.Contains(resp.HTML, "<script>") {
		t.Fatalf("expected sanitized markdown, got %q", resp.HTML)
	}
}

func TestSettingsSaveReplacesActiveVersion(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	f.registerAdminAPI()

	for _, name := range []string{"First Advisors", "Second Advisors"} {
		recorder := f.do(t, http.MethodPut, "/admin/api/settings", map[string]interface{}{
			"companyName": name,
			"theme":       map[string]string{"primaryColor": "#1E3A8A"},
		})
		if recorder.Code != http.StatusOK {
			t.Fatalf("save settings: expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
	}

	var resp struct {
		Settings  db.CompanySettings `json:"settings"`
		IsDefault bool               `json:"isDefault"`
	}
	decodeBody(t, f.do(t, http.MethodGet, "/admin/api/settings", nil), &resp)
	if resp.IsDefault || resp.Settings.CompanyName != "Second Advisors" {
		t.Fatalf("expected latest settings, got %+v", resp)
	}

	var active int64
	f.db.Model(&db.CompanySettings{}).Where("is_active = ?", true).Count(&active)
	if active != 1 {
		t.Fatalf("expected exactly one active settings row, got %d", active)
	}

	recorder := f.do(t, http.MethodPut, "/admin/api/settings", map[string]interface{}{
		"companyName": "Bad Colors",
		"theme":       map[string]string{"primaryColor": "blue"},
	})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected invalid color to be rejected, got %d", recorder.Code)
	}
}
