package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"risehub/internal/db"
	"risehub/internal/models"
	"risehub/internal/utils"

	"gorm.io/gorm"
)

type TaskTemplateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ResetType   string `json:"resetType"`
	SortOrder   int    `json:"sortOrder"`
	IsActive    *bool  `json:"isActive"`
}

// TaskView is a template merged with the viewer's completion state.
type TaskView struct {
	models.TaskTemplate
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

type TaskGroup struct {
	Category   string     `json:"category"`
	ResetLabel string     `json:"resetLabel"`
	NextReset  *time.Time `json:"nextReset"`
	Tasks      []TaskView `json:"tasks"`
}

func ListTaskTemplates() ([]models.TaskTemplate, error) {
	var templates []models.TaskTemplate
	if err := db.DB.Order("category ASC").Order("sort_order ASC").Order("title ASC").Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("list task templates: %w", err)
	}
	return templates, nil
}

func CreateTaskTemplate(in TaskTemplateInput) (*models.TaskTemplate, error) {
	title := strings.TrimSpace(in.Title)
	category := strings.ToUpper(strings.TrimSpace(in.Category))
	if title == "" {
		return nil, invalid("title is required")
	}
	if !models.IsTaskCategory(category) {
		return nil, invalid("category must be one of %s", strings.Join(models.TaskCategories, ", "))
	}
	tpl := models.TaskTemplate{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		ResetType:   strings.TrimSpace(in.ResetType),
		SortOrder:   in.SortOrder,
		IsActive:    in.IsActive == nil || *in.IsActive,
	}
	if err := db.DB.Create(&tpl).Error; err != nil {
		return nil, fmt.Errorf("create task template: %w", err)
	}
	return &tpl, nil
}

func DeleteTaskTemplate(id string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_template_id = ?", id).Delete(&models.UserTask{}).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.TaskTemplate{}, id)
	})
	return wrapWrite(err, "delete task template")
}

// ListTasks groups the active templates by category in the fixed category
// order, with the user's completion state and a display reset label.
func ListTasks(userID string, now time.Time) ([]TaskGroup, error) {
	var templates []models.TaskTemplate
	if err := db.DB.Where("is_active = ?", true).
		Order("sort_order ASC").Order("title ASC").
		Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	done := map[string]models.UserTask{}
	if userID != "" {
		var rows []models.UserTask
		if err := db.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("load user tasks: %w", err)
		}
		for _, r := range rows {
			done[r.TaskTemplateID] = r
		}
	}

	byCategory := map[string][]TaskView{}
	for _, t := range templates {
		view := TaskView{TaskTemplate: t}
		if ut, ok := done[t.ID]; ok {
			view.Completed = ut.Completed
			view.CompletedAt = ut.CompletedAt
		}
		byCategory[t.Category] = append(byCategory[t.Category], view)
	}

	groups := make([]TaskGroup, 0, len(models.TaskCategories))
	for _, c := range models.TaskCategories {
		tasks, ok := byCategory[c]
		if !ok {
			continue
		}
		g := TaskGroup{Category: c, ResetLabel: utils.ResetLabel(c, now), Tasks: tasks}
		if next := utils.NextReset(c, now); !next.IsZero() {
			g.NextReset = &next
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// ToggleTask flips the user's completion of one template.
func ToggleTask(userID, templateID string) (*models.UserTask, error) {
	var ut models.UserTask
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var tpl models.TaskTemplate
		if err := tx.Where("id = ? AND is_active = ?", templateID, true).First(&tpl).Error; err != nil {
			return notFound(err, "task template")
		}

		err := tx.Where("user_id = ? AND task_template_id = ?", userID, templateID).First(&ut).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			now := time.Now()
			ut = models.UserTask{UserID: userID, TaskTemplateID: templateID, Completed: true, CompletedAt: &now}
			return tx.Create(&ut).Error
		}
		if err != nil {
			return err
		}

		ut.Completed = !ut.Completed
		if ut.Completed {
			now := time.Now()
			ut.CompletedAt = &now
		} else {
			ut.CompletedAt = nil
		}
		return tx.Model(&ut).Select("completed", "completed_at").Updates(&ut).Error
	})
	if err != nil {
		return nil, wrapWrite(err, "toggle task")
	}
	return &ut, nil
}

// ResetTasks clears the user's own completions for one category. Nothing
// calls this on a schedule.
func ResetTasks(userID, category string) (int64, error) {
	category = strings.ToUpper(strings.TrimSpace(category))
	if !models.IsTaskCategory(category) {
		return 0, invalid("category must be one of %s", strings.Join(models.TaskCategories, ", "))
	}
	res := db.DB.Model(&models.UserTask{}).
		Where("user_id = ? AND task_template_id IN (?)", userID,
			db.DB.Model(&models.TaskTemplate{}).Select("id").Where("category = ?", category)).
		Updates(map[string]interface{}{"completed": false, "completed_at": nil})
	if res.Error != nil {
		return 0, fmt.Errorf("reset tasks: %w", res.Error)
	}
	return res.RowsAffected, nil
}
