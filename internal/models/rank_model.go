package models

import "time"

// Category names one of the three ranked item kinds.
type Category string

const (
	CategoryTask     Category = "task"
	CategoryProject  Category = "project"
	CategoryWorkflow Category = "workflow"
)

// Rank is a per-user ordering entry for one item of one category. Active
// entries for non-terminal items form a dense 1..N sequence per
// (user, category); terminal items are parked at rank 0. One table with a
// category column replaces three parallel per-category tables.
//
// Entries are hard-deleted on removal so the unique (user, category, item)
// index stays usable when an item becomes visible again later.
type Rank struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index:idx_rank_user_cat_item,unique;index:idx_rank_user_cat" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category   Category  `gorm:"size:30;index:idx_rank_user_cat_item,unique;index:idx_rank_user_cat" json:"category"`
	ItemID     uint      `gorm:"index:idx_rank_user_cat_item,unique" json:"item_id"`
	Rank       uint      `gorm:"default:0" json:"rank"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	IsFavorite bool      `gorm:"default:false" json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
