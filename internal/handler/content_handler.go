package handler

import (
	"net/http"

	"github.com/advisorsite/internal/service"
	"github.com/gin-gonic/gin"
)

type aboutPayload struct {
	Title             *string `json:"title"`
	Subtitle          *string `json:"subtitle"`
	Body              *string `json:"body"`
	ImageURL          *string `json:"imageUrl"`
	Mission           *string `json:"mission"`
	Vision            *string `json:"vision"`
	YearsExperience   *int    `json:"yearsExperience"`
	ClientsServed     *int    `json:"clientsServed"`
	AssetsUnderAdvice *string `json:"assetsUnderAdvice"`
}

func (p aboutPayload) toInput() service.AboutInput {
	return service.AboutInput{
		Title:             p.Title,
		Subtitle:          p.Subtitle,
		Body:              p.Body,
		ImageURL:          p.ImageURL,
		Mission:           p.Mission,
		Vision:            p.Vision,
		YearsExperience:   p.YearsExperience,
		ClientsServed:     p.ClientsServed,
		AssetsUnderAdvice: p.AssetsUnderAdvice,
	}
}

type contactPayload struct {
	Title       *string `json:"title"`
	Subtitle    *string `json:"subtitle"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	OfficeHours *string `json:"officeHours"`
	MapEmbedURL *string `json:"mapEmbedUrl"`
}

func (p contactPayload) toInput() service.ContactInput {
	return service.ContactInput{
		Title:       p.Title,
		Subtitle:    p.Subtitle,
		Email:       p.Email,
		Phone:       p.Phone,
		Address:     p.Address,
		OfficeHours: p.OfficeHours,
		MapEmbedURL: p.MapEmbedURL,
	}
}

// ShowAboutEdit 渲染关于我们编辑页。
func (a *API) ShowAboutEdit(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "about_edit.html", gin.H{
		"title": "About",
	})
}

// GetAbout returns the stored about section or the default copy.
func (a *API) GetAbout(c *gin.Context) {
	about := a.site.About
	if err := about.EnsureLoaded(c.Request.Context()); err != nil {
		respondServiceError(c, err, "failed to load about section")
		return
	}

	content := about.Get()
	_, stored := about.Current()
	c.JSON(http.StatusOK, gin.H{
		"about":     content,
		"html":      RenderMarkdown(content.Body),
		"isDefault": !stored,
		"lastError": about.LastError(),
	})
}

// UpdateAbout saves the about section, creating it on first save.
func (a *API) UpdateAbout(c *gin.Context) {
	var payload aboutPayload
	if !bindJSON(c, &payload, "invalid about section") {
		return
	}

	saved, err := a.site.About.Save(c.Request.Context(), payload.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to save about section")
		return
	}
	c.JSON(http.StatusOK, gin.H{"about": saved, "html": RenderMarkdown(saved.Body)})
}

// ShowContactEdit 渲染联系方式编辑页。
func (a *API) ShowContactEdit(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "contact_edit.html", gin.H{
		"title": "Contact",
	})
}

// GetContact returns the stored contact section or the default copy.
func (a *API) GetContact(c *gin.Context) {
	contact := a.site.Contact
	if err := contact.EnsureLoaded(c.Request.Context()); err != nil {
		respondServiceError(c, err, "failed to load contact section")
		return
	}

	_, stored := contact.Current()
	c.JSON(http.StatusOK, gin.H{
		"contact":   contact.Get(),
		"isDefault": !stored,
		"lastError": contact.LastError(),
	})
}

// UpdateContact saves the contact section, creating it on first save.
func (a *API) UpdateContact(c *gin.Context) {
	var payload contactPayload
	if !bindJSON(c, &payload, "invalid contact section") {
		return
	}

	saved, err := a.site.Contact.Save(c.Request.Context(), payload.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to save contact section")
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact": saved})
}
