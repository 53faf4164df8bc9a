package models

type Perk struct {
	Base
	Name        string `gorm:"not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `json:"imageUrl"`
	Slot        int    `gorm:"not null" json:"slot"` // 3 or 4
}
