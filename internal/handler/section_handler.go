package handler

import (
	"net/http"

	"github.com/advisorsite/internal/service"
	"github.com/gin-gonic/gin"
)

type teamMemberPayload struct {
	Name        *string `json:"name"`
	Position    *string `json:"position"`
	Bio         *string `json:"bio"`
	ImageURL    *string `json:"imageUrl"`
	LinkedInURL *string `json:"linkedinUrl"`
	Email       *string `json:"email"`
}

func (p teamMemberPayload) toInput() service.TeamMemberInput {
	return service.TeamMemberInput{
		Name:        p.Name,
		Position:    p.Position,
		Bio:         p.Bio,
		ImageURL:    p.ImageURL,
		LinkedInURL: p.LinkedInURL,
		Email:       p.Email,
	}
}

type offeringPayload struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Icon        *string  `json:"icon"`
	Features    []string `json:"features"`
}

func (p offeringPayload) toInput() service.OfferingInput {
	return service.OfferingInput{
		Title:       p.Title,
		Description: p.Description,
		Icon:        p.Icon,
		Features:    p.Features,
	}
}

type clientPayload struct {
	Name        *string `json:"name"`
	LogoURL     *string `json:"logoUrl"`
	WebsiteURL  *string `json:"websiteUrl"`
	Description *string `json:"description"`
}

func (p clientPayload) toInput() service.ClientInput {
	return service.ClientInput{
		Name:        p.Name,
		LogoURL:     p.LogoURL,
		WebsiteURL:  p.WebsiteURL,
		Description: p.Description,
	}
}

type credentialPayload struct {
	Title       *string `json:"title"`
	Issuer      *string `json:"issuer"`
	Year        *int    `json:"year"`
	Description *string `json:"description"`
	IconURL     *string `json:"iconUrl"`
}

func (p credentialPayload) toInput() service.CredentialInput {
	return service.CredentialInput{
		Title:       p.Title,
		Issuer:      p.Issuer,
		Year:        p.Year,
		Description: p.Description,
		IconURL:     p.IconURL,
	}
}

// adminSections 是后台按顺序管理的栏目，键同时用作 URL 段。
var adminSections = map[string]string{
	"team":        "Team",
	"services":    "Services",
	"clients":     "Clients",
	"credentials": "Credentials",
	"gallery":     "Gallery",
}

// ShowSection 渲染某个有序栏目的管理页，列表数据由前端通过 JSON API 拉取。
func (a *API) ShowSection(section string) gin.HandlerFunc {
	title, ok := adminSections[section]
	if !ok {
		title = section
	}
	return func(c *gin.Context) {
		a.renderHTML(c, http.StatusOK, "section.html", gin.H{
			"title":   title,
			"section": section,
		})
	}
}

// ListTeamMembers returns the team in display order.
func (a *API) ListTeamMembers(c *gin.Context) {
	listItems(c, a.site.Team.Collection)
}

// CreateTeamMember appends a member.
func (a *API) CreateTeamMember(c *gin.Context) {
	var payload teamMemberPayload
	if !bindJSON(c, &payload, "invalid team member") {
		return
	}
	member, err := a.site.Team.Create(c.Request.Context(), payload.toInput())
	respondItem(c, http.StatusCreated, member, err, "failed to create team member")
}

// UpdateTeamMember applies a partial edit.
func (a *API) UpdateTeamMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload teamMemberPayload
	if !bindJSON(c, &payload, "invalid team member") {
		return
	}
	member, err := a.site.Team.Update(c.Request.Context(), id, payload.toInput())
	respondItem(c, http.StatusOK, member, err, "failed to update team member")
}

// DeleteTeamMember removes a member.
func (a *API) DeleteTeamMember(c *gin.Context) {
	deleteItem(c, a.site.Team, "team member")
}

// ReorderTeamMembers handles drag and drop.
func (a *API) ReorderTeamMembers(c *gin.Context) {
	reorderItems(c, a.site.Team.OrderedCollection)
}

// ListOfferings returns the advisory services in display order.
func (a *API) ListOfferings(c *gin.Context) {
	listItems(c, a.site.Offerings.Collection)
}

// CreateOffering appends a service.
func (a *API) CreateOffering(c *gin.Context) {
	var payload offeringPayload
	if !bindJSON(c, &payload, "invalid service") {
		return
	}
	offering, err := a.site.Offerings.Create(c.Request.Context(), payload.toInput())
	respondItem(c, http.StatusCreated, offering, err, "failed to create service")
}

// UpdateOffering applies a partial edit.
func (a *API) UpdateOffering(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload offeringPayload
	if !bindJSON(c, &payload, "invalid service") {
		return
	}
	offering, err := a.site.Offerings.Update(c.Request.Context(), id, payload.toInput())
	respondItem(c, http.StatusOK, offering, err, "failed to update service")
}

// DeleteOffering removes a service.
func (a *API) DeleteOffering(c *gin.Context) {
	deleteItem(c, a.site.Offerings, "service")
}

// ReorderOfferings handles drag and drop.
func (a *API) ReorderOfferings(c *gin.Context) {
	reorderItems(c, a.site.Offerings.OrderedCollection)
}

// ListClients returns the client logos in display order.
func (a *API) ListClients(c *gin.Context) {
	listItems(c, a.site.Clients.Collection)
}

// CreateClient appends a client.
func (a *API) CreateClient(c *gin.Context) {
	var payload clientPayload
	if !bindJSON(c, &payload, "invalid client") {
		return
	}
	client, err := a.site.Clients.Create(c.Request.Context(), payload.toInput())
	respondItem(c, http.StatusCreated, client, err, "failed to create client")
}

// UpdateClient applies a partial edit.
func (a *API) UpdateClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload clientPayload
	if !bindJSON(c, &payload, "invalid client") {
		return
	}
	client, err := a.site.Clients.Update(c.Request.Context(), id, payload.toInput())
	respondItem(c, http.StatusOK, client, err, "failed to update client")
}

// DeleteClient removes a client.
func (a *API) DeleteClient(c *gin.Context) {
	deleteItem(c, a.site.Clients, "client")
}

// ReorderClients handles drag and drop.
func (a *API) ReorderClients(c *gin.Context) {
	reorderItems(c, a.site.Clients.OrderedCollection)
}

// ListCredentials returns licences and awards in display order.
func (a *API) ListCredentials(c *gin.Context) {
	listItems(c, a.site.Credentials.Collection)
}

// CreateCredential appends a credential.
func (a *API) CreateCredential(c *gin.Context) {
	var payload credentialPayload
	if !bindJSON(c, &payload, "invalid credential") {
		return
	}
	credential, err := a.site.Credentials.Create(c.Request.Context(), payload.toInput())
	respondItem(c, http.StatusCreated, credential, err, "failed to create credential")
}

// UpdateCredential applies a partial edit.
func (a *API) UpdateCredential(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload credentialPayload
	if !bindJSON(c, &payload, "invalid credential") {
		return
	}
	credential, err := a.site.Credentials.Update(c.Request.Context(), id, payload.toInput())
	respondItem(c, http.StatusOK, credential, err, "failed to update credential")
}

// DeleteCredential removes a credential.
func (a *API) DeleteCredential(c *gin.Context) {
	deleteItem(c, a.site.Credentials, "credential")
}

// ReorderCredentials handles drag and drop.
func (a *API) ReorderCredentials(c *gin.Context) {
	reorderItems(c, a.site.Credentials.OrderedCollection)
}
