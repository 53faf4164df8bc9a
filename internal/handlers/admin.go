package handlers

import (
	"context"
	"net/http"
	"time"

	"risehub/internal/middleware"
	"risehub/internal/services"

	"github.com/gin-gonic/gin"
)

// FeedImporter is implemented by services.NewsImporter.
type FeedImporter interface {
	Import(ctx context.Context, feedURL, userID string) (*services.ImportResult, error)
}

// AdminHandler serves /api/admin; every route sits behind middleware.AdminRequired.
type AdminHandler struct {
	importer       FeedImporter
	defaultFeedURL string
}

func NewAdminHandler(importer FeedImporter, defaultFeedURL string) *AdminHandler {
	return &AdminHandler{importer: importer, defaultFeedURL: defaultFeedURL}
}

func respondOK(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ---- weapons ----

func (h *AdminHandler) CreateWeapon(c *gin.Context) {
	var in services.WeaponInput
	if !bindJSON(c, &in) {
		return
	}
	weapon, err := services.CreateWeapon(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, weapon)
}

func (h *AdminHandler) UpdateWeapon(c *gin.Context) {
	var in services.WeaponUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	weapon, err := services.UpdateWeapon(c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weapon)
}

func (h *AdminHandler) DeleteWeapon(c *gin.Context) {
	if err := services.DeleteWeapon(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c)
}

func (h *AdminHandler) CreateTrait(c *gin.Context) {
	var in services.TraitInput
	if !bindJSON(c, &in) {
		return
	}
	trait, err := services.CreateTrait(c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trait)
}

func (h *AdminHandler) DeleteTrait(c *gin.Context) {
	if err := services.DeleteTrait(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c)
}

// SetCatalyst PUT /api/admin/weapons/:id/catalyst
func (h *AdminHandler) SetCatalyst(c *gin.Context) {
	var in services.CatalystInput
	if !bindJSON(c, &in) {
		return
	}
	catalyst, err := services.UpsertCatalyst(c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalyst)
}

func (h *AdminHandler) DeleteCatalyst(c *gin.Context) {
	if err := services.DeleteCatalyst(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c)
}

// ---- perks, mods, attributes, characters ----

func (h *AdminHandler) CreatePerk(c *gin.Context) {
	var in services.PerkInput
	if !bindJSON(c, &in) {
		return
	}
	perk, err := services.CreatePerk(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, perk)
}

func (h *AdminHandler) DeletePerk(c *gin.Context) {
	if err := services.DeletePerk(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c)
}

func (h *AdminHandler) CreateMod(c *gin.Context) {
	var in services.ModInput
	if !bindJSON(c, &in) {
		return
	}
	mod, err := services.CreateMod(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mod)
}

func (h *AdminHandler) DeleteMod(c *gin.Context) {
	if err := services.DeleteMod(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c)
}

func (h *AdminHandler) CreateModAttribute(c *gin.Context) {
	var in services.ModAttributeInput
	if !bindJSON(c, &in) {
		return
	}
	attr, err := services.CreateModAttribute(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attr)
}

func (h *AdminHandler) DeleteModAttribute(c *gin.Context) {
	if err := services.DeleteModAttribute(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c)
}

func (h *AdminHandler) CreateCharacter(c *gin.Context) {
	var in services.CharacterInput
	if !bindJSON(c, &in) {
		return
	}
	ch, err := services.CreateCharacter(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ch)
}

func (h *AdminHandler) DeleteCharacter(c *gin.Context) {
	if err := services.DeleteCharacter(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c)
}

// ---- task templates ----

func (h *AdminHandler) ListTaskTemplates(c *gin.Context) {
	templates, err := services.ListTaskTemplates()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *AdminHandler) CreateTaskTemplate(c *gin.Context) {
	var in services.TaskTemplateInput
	if !bindJSON(c, &in) {
		return
	}
	tpl, err := services.CreateTaskTemplate(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

func (h *AdminHandler) DeleteTaskTemplate(c *gin.Context) {
	if err := services.DeleteTaskTemplate(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c)
}

// ---- api keys ----

func (h *AdminHandler) ListAPIKeys(c *gin.Context) {
	keys, err := services.ListAPIKeys()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, keys)
}

func (h *AdminHandler) CreateAPIKey(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if !bindJSON(c, &req) {
		return
	}
	key, err := services.CreateAPIKey(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, key)
}

// UpdateAPIKey PATCH /api/admin/api-keys/:id {isActive}
func (h *AdminHandler) UpdateAPIKey(c *gin.Context) {
	var req struct {
		IsActive *bool `json:"isActive"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.IsActive == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isActive is required"})
		return
	}
	key, err := services.SetAPIKeyActive(c.Param("id"), *req.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, key)
}

func (h *AdminHandler) DeleteAPIKey(c *gin.Context) {
	if err := services.DeleteAPIKey(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c)
}

// ---- news ----

func (h *AdminHandler) CreateNews(c *gin.Context) {
	var in services.NewsInput
	if !bindJSON(c, &in) {
		return
	}
	post, err := services.CreateNews(middleware.CurrentUser(c).ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *AdminHandler) DeleteNews(c *gin.Context) {
	if err := services.DeleteNews(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c)
}

// ImportFeed POST /api/admin/news/import {url?}. Posts are authored by the calling admin.
func (h *AdminHandler) ImportFeed(c *gin.Context) {
	if h.importer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Feed import is not configured"})
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	feedURL := req.URL
	if feedURL == "" {
		feedURL = h.defaultFeedURL
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	result, err := h.importer.Import(ctx, feedURL, middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
