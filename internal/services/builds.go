package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"risehub/internal/db"
	"risehub/internal/metrics"
	"risehub/internal/models"
	"risehub/internal/utils"

	"gorm.io/gorm"
)

// BuildItemInput is one free-text trait/perk/catalyst/mod line of a build weapon.
type BuildItemInput struct {
	Slot        int    `json:"slot"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type BuildWeaponInput struct {
	WeaponID   string           `json:"weaponId"`
	CustomName string           `json:"customName"`
	Traits     []BuildItemInput `json:"traits"`
	Perks      []BuildItemInput `json:"perks"`
	Catalyst   *BuildItemInput  `json:"catalyst"`
	Mods       []BuildItemInput `json:"mods"`
}

type ArtifactAttributeInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ArtifactInput struct {
	Slot       int                      `json:"slot"`
	Name       string                   `json:"name"`
	Rarity     string                   `json:"rarity"`
	Attributes []ArtifactAttributeInput `json:"attributes"`
}

type BuildInput struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	CharacterID   string            `json:"characterId"`
	Content       string            `json:"content"`
	IsPublic      *bool             `json:"isPublic"`
	Artifacts     []ArtifactInput   `json:"artifacts"`
	PrimaryWeapon *BuildWeaponInput `json:"primaryWeapon"`
	PowerWeapon   *BuildWeaponInput `json:"powerWeapon"`
}

type BuildUpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	IsPublic    *bool   `json:"isPublic"`
}

type BuildFilter struct {
	CharacterID string
	UserID      string
	Sort        string // "votes" or "newest"
	Page        int
	Limit       int
	ViewerID    string
}

// CreateBuild validates the payload and writes the build with all of its
// children in one transaction.
func CreateBuild(userID string, in BuildInput) (*models.Build, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.CharacterID = strings.TrimSpace(in.CharacterID)
	if in.Title == "" {
		return nil, invalid("title is required")
	}
	if in.CharacterID == "" {
		return nil, invalid("characterId is required")
	}

	artifacts, err := buildArtifacts(in.Artifacts)
	if err != nil {
		return nil, err
	}

	build := models.Build{
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		CharacterID: in.CharacterID,
		Content:     utils.SanitizeRichText(in.Content),
		IsPublic:    in.IsPublic == nil || *in.IsPublic,
		UserID:      userID,
		Artifacts:   artifacts,
	}
	if w := buildWeapon(models.WeaponSlotPrimary, in.PrimaryWeapon); w != nil {
		build.Weapons = append(build.Weapons, *w)
	}
	if w := buildWeapon(models.WeaponSlotPower, in.PowerWeapon); w != nil {
		build.Weapons = append(build.Weapons, *w)
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var character models.Character
		if err := tx.Where("id = ?", build.CharacterID).First(&character).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalid("unknown characterId %q", build.CharacterID)
			}
			return err
		}
		return tx.Create(&build).Error
	})
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return nil, err
		}
		return nil, fmt.Errorf("create build: %w", err)
	}

	metrics.BuildsCreated.Inc()
	return GetBuild(build.ID, userID)
}

// buildArtifacts enforces up to four unique slots and pads or truncates each
// artifact's attributes to the count its rarity dictates.
func buildArtifacts(in []ArtifactInput) ([]models.Artifact, error) {
	if len(in) > models.MaxArtifactSlots {
		return nil, invalid("at most %d artifacts are allowed", models.MaxArtifactSlots)
	}
	seen := make(map[int]bool, len(in))
	out := make([]models.Artifact, 0, len(in))
	for i, a := range in {
		slot := a.Slot
		if slot == 0 {
			slot = i + 1
		}
		if slot < 1 || slot > models.MaxArtifactSlots {
			return nil, invalid("artifact slot must be between 1 and %d", models.MaxArtifactSlots)
		}
		if seen[slot] {
			return nil, invalid("duplicate artifact slot %d", slot)
		}
		seen[slot] = true

		count := utils.ArtifactAttributeCount(a.Rarity)
		attrs := make([]models.ArtifactAttribute, count)
		for p := 0; p < count; p++ {
			attrs[p].Position = p + 1
			if p < len(a.Attributes) {
				attrs[p].Name = strings.TrimSpace(a.Attributes[p].Name)
				attrs[p].Value = strings.TrimSpace(a.Attributes[p].Value)
			}
		}
		out = append(out, models.Artifact{
			Slot:       slot,
			Name:       strings.TrimSpace(a.Name),
			Rarity:     strings.TrimSpace(a.Rarity),
			Attributes: attrs,
		})
	}
	return out, nil
}

// buildWeapon returns nil for an empty entry (neither weaponId nor customName).
func buildWeapon(slot string, in *BuildWeaponInput) *models.BuildWeapon {
	if in == nil {
		return nil
	}
	weaponID := strings.TrimSpace(in.WeaponID)
	customName := strings.TrimSpace(in.CustomName)
	if weaponID == "" && customName == "" {
		return nil
	}

	w := &models.BuildWeapon{Slot: slot, CustomName: customName}
	if weaponID != "" {
		w.WeaponID = &weaponID
	}
	for _, it := range buildItems(in.Traits) {
		w.Traits = append(w.Traits, models.BuildWeaponTrait{BuildWeaponItem: it})
	}
	for _, it := range buildItems(in.Perks) {
		w.Perks = append(w.Perks, models.BuildWeaponPerk{BuildWeaponItem: it})
	}
	for _, it := range buildItems(in.Mods) {
		w.Mods = append(w.Mods, models.BuildWeaponMod{BuildWeaponItem: it})
	}
	if in.Catalyst != nil {
		if items := buildItems([]BuildItemInput{*in.Catalyst}); len(items) == 1 {
			w.Catalyst = &models.BuildWeaponCatalyst{BuildWeaponItem: items[0]}
		}
	}
	return w
}

// buildItems drops blank lines and numbers missing slots by position.
func buildItems(in []BuildItemInput) []models.BuildWeaponItem {
	var out []models.BuildWeaponItem
	for i, it := range in {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}
		slot := it.Slot
		if slot == 0 {
			slot = i + 1
		}
		out = append(out, models.BuildWeaponItem{
			Slot:        slot,
			Name:        name,
			Description: strings.TrimSpace(it.Description),
		})
	}
	return out
}

func preloadBuildTree(q *gorm.DB) *gorm.DB {
	bySlot := func(db *gorm.DB) *gorm.DB { return db.Order("slot ASC") }
	return q.
		Preload("Character").
		Preload("User").
		Preload("Artifacts", bySlot).
		Preload("Artifacts.Attributes", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Weapons").
		Preload("Weapons.Traits", bySlot).
		Preload("Weapons.Perks", bySlot).
		Preload("Weapons.Catalyst").
		Preload("Weapons.Mods", bySlot)
}

// GetBuild loads the full build tree. Private builds are only visible to their owner.
func GetBuild(id, viewerID string) (*models.Build, error) {
	var build models.Build
	if err := preloadBuildTree(db.DB).Where("id = ?", id).First(&build).Error; err != nil {
		return nil, notFound(err, "build")
	}
	if !build.IsPublic && build.UserID != viewerID {
		return nil, ErrNotFound
	}

	// Primary before Power
	sort.SliceStable(build.Weapons, func(i, j int) bool {
		return build.Weapons[i].Slot == models.WeaponSlotPrimary && build.Weapons[j].Slot != models.WeaponSlotPrimary
	})

	annotateBuilds([]*models.Build{&build}, viewerID)
	return &build, nil
}

// checkBuildVisible returns ErrNotFound unless the build exists and is public
// or owned by viewerID.
func checkBuildVisible(tx *gorm.DB, id, viewerID string) error {
	var build models.Build
	if err := tx.Select("id", "is_public", "user_id").Where("id = ?", id).First(&build).Error; err != nil {
		return notFound(err, "build")
	}
	if !build.IsPublic && build.UserID != viewerID {
		return ErrNotFound
	}
	return nil
}

// ListBuilds returns one page of builds plus the total match count.
func ListBuilds(f BuildFilter) ([]models.Build, int64, error) {
	q := db.DB.Model(&models.Build{})
	if f.CharacterID != "" {
		q = q.Where("character_id = ?", f.CharacterID)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	// 只有作者本人查看自己的列表时才包含私有构筑
	if f.UserID == "" || f.UserID != f.ViewerID {
		q = q.Where("is_public = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count builds: %w", err)
	}

	if f.Sort == "votes" {
		q = q.Order("vote_count DESC").Order("created_at DESC")
	} else {
		q = q.Order("created_at DESC")
	}

	var builds []models.Build
	if err := q.Preload("Character").Preload("User").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Find(&builds).Error; err != nil {
		return nil, 0, fmt.Errorf("list builds: %w", err)
	}

	ptrs := make([]*models.Build, len(builds))
	for i := range builds {
		ptrs[i] = &builds[i]
	}
	annotateBuilds(ptrs, f.ViewerID)
	return builds, total, nil
}

// annotateBuilds fills the non-column fields: comment counts and the viewer's vote.
func annotateBuilds(builds []*models.Build, viewerID string) {
	if len(builds) == 0 {
		return
	}
	ids := make([]string, len(builds))
	for i, b := range builds {
		ids[i] = b.ID
	}

	counts := commentCounts("build_id", ids)
	votes := userVotes("votes", "build_id", viewerID, ids)
	for _, b := range builds {
		b.CommentCount = counts[b.ID]
		b.UserVote = votes[b.ID]
	}
}

func UpdateBuild(id, userID string, in BuildUpdateInput) (*models.Build, error) {
	var build models.Build
	if err := db.DB.Where("id = ?", id).First(&build).Error; err != nil {
		return nil, notFound(err, "build")
	}
	if build.UserID != userID {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, invalid("title is required")
		}
		updates["title"] = title
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Content != nil {
		updates["content"] = utils.SanitizeRichText(*in.Content)
	}
	if in.IsPublic != nil {
		updates["is_public"] = *in.IsPublic
	}
	if len(updates) > 0 {
		if err := db.DB.Model(&build).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update build: %w", err)
		}
	}
	return GetBuild(id, userID)
}

// DeleteBuild removes a build and every row it owns. Owner or admin only.
func DeleteBuild(id string, user *models.User) error {
	var build models.Build
	if err := db.DB.Where("id = ?", id).First(&build).Error; err != nil {
		return notFound(err, "build")
	}
	if build.UserID != user.ID && !user.IsAdmin() {
		return ErrForbidden
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		weaponIDs := func() *gorm.DB {
			return tx.Model(&models.BuildWeapon{}).Select("id").Where("build_id = ?", id)
		}
		artifactIDs := tx.Model(&models.Artifact{}).Select("id").Where("build_id = ?", id)

		steps := []struct {
			model interface{}
			query string
			arg   interface{}
		}{
			{&models.BuildWeaponTrait{}, "build_weapon_id IN (?)", weaponIDs()},
			{&models.BuildWeaponPerk{}, "build_weapon_id IN (?)", weaponIDs()},
			{&models.BuildWeaponCatalyst{}, "build_weapon_id IN (?)", weaponIDs()},
			{&models.BuildWeaponMod{}, "build_weapon_id IN (?)", weaponIDs()},
			{&models.ArtifactAttribute{}, "artifact_id IN (?)", artifactIDs},
			{&models.BuildWeapon{}, "build_id = ?", id},
			{&models.Artifact{}, "build_id = ?", id},
			{&models.Vote{}, "build_id = ?", id},
			{&models.Comment{}, "build_id = ?", id},
			{&models.Build{}, "id = ?", id},
		}
		for _, s := range steps {
			if err := tx.Where(s.query, s.arg).Delete(s.model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete build: %w", err)
	}
	log.Printf("[build] %s deleted by %s", id, user.ID)
	return nil
}

func commentCounts(fkColumn string, ids []string) map[string]int {
	out := make(map[string]int, len(ids))
	var rows []struct {
		TargetID string
		Total    int
	}
	if err := db.DB.Model(&models.Comment{}).
		Select(fkColumn+" AS target_id, COUNT(*) AS total").
		Where(fkColumn+" IN ?", ids).
		Group(fkColumn).Scan(&rows).Error; err != nil {
		log.Printf("[comment] count by %s: %v", fkColumn, err)
		return out
	}
	for _, r := range rows {
		out[r.TargetID] = r.Total
	}
	return out
}
