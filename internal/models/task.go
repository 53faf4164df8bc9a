package models

import "time"

const (
	TaskDaily     = "DAILY"
	TaskWeekly    = "WEEKLY"
	TaskFortnight = "FORTNIGHT"
	TaskMonthly   = "MONTHLY"
	TaskSeasonal  = "SEASONAL"
)

var TaskCategories = []string{TaskDaily, TaskWeekly, TaskFortnight, TaskMonthly, TaskSeasonal}

func IsTaskCategory(c string) bool {
	for _, v := range TaskCategories {
		if v == c {
			return true
		}
	}
	return false
}

// TaskTemplate is admin-curated. ResetType is a display label; nothing
// schedules resets from it.
type TaskTemplate struct {
	Base
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:20;not null;index" json:"category"`
	ResetType   string    `gorm:"size:40" json:"resetType"`
	SortOrder   int       `json:"sortOrder"`
	IsActive    bool      `gorm:"not null;index" json:"isActive"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UserTask struct {
	Base
	UserID         string        `gorm:"size:36;not null;uniqueIndex:idx_user_task" json:"userId"`
	TaskTemplateID string        `gorm:"size:36;not null;uniqueIndex:idx_user_task" json:"taskTemplateId"`
	TaskTemplate   *TaskTemplate `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	User           *User         `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Completed      bool          `gorm:"not null" json:"completed"`
	CompletedAt    *time.Time    `json:"completedAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
