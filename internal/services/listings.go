package services

import (
	"fmt"
	"strings"
	"time"

	"risehub/internal/db"
	"risehub/internal/models"
)

type LFGInput struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Activity      string     `json:"activity"`
	Region        string     `json:"region"`
	Platform      string     `json:"platform"`
	PlayersNeeded int        `json:"playersNeeded"`
	ExpiresAt     *time.Time `json:"expiresAt"`
}

type LFGUpdateInput struct {
	Active        *bool   `json:"active"`
	Description   *string `json:"description"`
	PlayersNeeded *int    `json:"playersNeeded"`
}

type ListingFilter struct {
	IncludeInactive bool
	Activity        string
	Region          string
	Page            int
	Limit           int
}

func ListLFG(f ListingFilter) ([]models.LFGPost, int64, error) {
	q := db.DB.Model(&models.LFGPost{})
	if !f.IncludeInactive {
		q = q.Where("active = ?", true)
	}
	if f.Activity != "" {
		q = q.Where("activity = ?", f.Activity)
	}
	if f.Region != "" {
		q = q.Where("region = ?", f.Region)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count lfg: %w", err)
	}
	var posts []models.LFGPost
	if err := q.Preload("User").Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("list lfg: %w", err)
	}
	return posts, total, nil
}

func CreateLFG(userID string, in LFGInput) (*models.LFGPost, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("title is required")
	}
	if strings.TrimSpace(in.Activity) == "" {
		return nil, invalid("activity is required")
	}
	if in.PlayersNeeded < 0 {
		return nil, invalid("playersNeeded cannot be negative")
	}
	post := models.LFGPost{
		UserID:        userID,
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		Activity:      strings.TrimSpace(in.Activity),
		Region:        strings.TrimSpace(in.Region),
		Platform:      strings.TrimSpace(in.Platform),
		PlayersNeeded: in.PlayersNeeded,
		Active:        true,
		ExpiresAt:     in.ExpiresAt,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create lfg: %w", err)
	}
	return &post, nil
}

// UpdateLFG lets the author close/reopen a post or edit its description and headcount.
func UpdateLFG(id, userID string, in LFGUpdateInput) (*models.LFGPost, error) {
	var post models.LFGPost
	if err := db.DB.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, notFound(err, "lfg post")
	}
	if post.UserID != userID {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if in.Active != nil {
		updates["active"] = *in.Active
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.PlayersNeeded != nil {
		if *in.PlayersNeeded < 0 {
			return nil, invalid("playersNeeded cannot be negative")
		}
		updates["players_needed"] = *in.PlayersNeeded
	}
	if len(updates) > 0 {
		if err := db.DB.Model(&post).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update lfg: %w", err)
		}
	}
	if err := db.DB.Preload("User").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, fmt.Errorf("reload lfg: %w", err)
	}
	return &post, nil
}

func DeleteLFG(id string, user *models.User) error {
	return deleteOwned(&models.LFGPost{}, id, user, "lfg post")
}

type ClanInput struct {
	ClanName     string `json:"clanName"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Region       string `json:"region"`
	Language     string `json:"language"`
	Contact      string `json:"contact"`
}

type ClanUpdateInput struct {
	Active       *bool   `json:"active"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	Contact      *string `json:"contact"`
}

func ListClans(f ListingFilter) ([]models.ClanRecruitment, int64, error) {
	q := db.DB.Model(&models.ClanRecruitment{})
	if !f.IncludeInactive {
		q = q.Where("active = ?", true)
	}
	if f.Region != "" {
		q = q.Where("region = ?", f.Region)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count clans: %w", err)
	}
	var posts []models.ClanRecruitment
	if err := q.Preload("User").Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("list clans: %w", err)
	}
	return posts, total, nil
}

func CreateClan(userID string, in ClanInput) (*models.ClanRecruitment, error) {
	name := strings.TrimSpace(in.ClanName)
	if name == "" {
		return nil, invalid("clanName is required")
	}
	post := models.ClanRecruitment{
		UserID:       userID,
		ClanName:     name,
		Description:  strings.TrimSpace(in.Description),
		Requirements: strings.TrimSpace(in.Requirements),
		Region:       strings.TrimSpace(in.Region),
		Language:     strings.TrimSpace(in.Language),
		Contact:      strings.TrimSpace(in.Contact),
		Active:       true,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create clan: %w", err)
	}
	return &post, nil
}

func UpdateClan(id, userID string, in ClanUpdateInput) (*models.ClanRecruitment, error) {
	var post models.ClanRecruitment
	if err := db.DB.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, notFound(err, "clan post")
	}
	if post.UserID != userID {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if in.Active != nil {
		updates["active"] = *in.Active
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Requirements != nil {
		updates["requirements"] = strings.TrimSpace(*in.Requirements)
	}
	if in.Contact != nil {
		updates["contact"] = strings.TrimSpace(*in.Contact)
	}
	if len(updates) > 0 {
		if err := db.DB.Model(&post).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update clan: %w", err)
		}
	}
	if err := db.DB.Preload("User").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, fmt.Errorf("reload clan: %w", err)
	}
	return &post, nil
}

func DeleteClan(id string, user *models.User) error {
	return deleteOwned(&models.ClanRecruitment{}, id, user, "clan post")
}

// deleteOwned deletes a row that has a user_id owner column. Owner or admin only.
func deleteOwned(model interface{}, id string, user *models.User, what string) error {
	var owner struct{ UserID string }
	res := db.DB.Model(model).Select("user_id").Where("id = ?", id).Limit(1).Scan(&owner)
	if res.Error != nil {
		return fmt.Errorf("load %s: %w", what, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	if owner.UserID != user.ID && !user.IsAdmin() {
		return ErrForbidden
	}
	if err := db.DB.Where("id = ?", id).Delete(model).Error; err != nil {
		return fmt.Errorf("delete %s: %w", what, err)
	}
	return nil
}
