package handlers

import (
	"net/http"

	"risehub/internal/services"
	"risehub/internal/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public, read-only side of the weapon database.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// Weapons GET /api/weapons
func (h *CatalogHandler) Weapons(c *gin.Context) {
	weapons, err := services.ListWeapons(services.WeaponFilter{
		Rarity:      utils.StringToInt(c.Query("rarity")),
		WeaponType:  c.Query("weaponType"),
		Slot:        c.Query("slot"),
		CombatStyle: c.Query("combatStyle"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weapons)
}

// Weapon GET /api/weapons/:slug
func (h *CatalogHandler) Weapon(c *gin.Context) {
	weapon, err := services.GetWeaponBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weapon)
}

// Mods GET /api/mods?category=&combatStyle=
func (h *CatalogHandler) Mods(c *gin.Context) {
	mods, err := services.ListMods(services.ModFilter{
		Category:    c.Query("category"),
		CombatStyle: c.Query("combatStyle"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mods)
}

// Perks GET /api/perks
func (h *CatalogHandler) Perks(c *gin.Context) {
	perks, err := services.ListPerks(utils.StringToInt(c.Query("slot")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, perks)
}

// ModAttributes GET /api/mod-attributes
func (h *CatalogHandler) ModAttributes(c *gin.Context) {
	attrs, err := services.ListModAttributes()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attrs)
}

// Characters GET /api/characters
func (h *CatalogHandler) Characters(c *gin.Context) {
	chars, err := services.ListCharacters()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chars)
}
