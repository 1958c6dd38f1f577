package rank

import (
	"github.com/tupt100/lexops/internal/models"
	"gorm.io/gorm"
)

// Ledger mutates one user's rank entries for one category. Callers hand it
// the transaction the reconciliation runs in.
type Ledger struct {
	db       *gorm.DB
	userID   uint
	category models.Category
}

func NewLedger(db *gorm.DB, userID uint, category models.Category) *Ledger {
	return &Ledger{db: db, userID: userID, category: category}
}

func (l *Ledger) scoped() *gorm.DB {
	return l.db.Where("user_id = ? AND category = ?", l.userID, l.category)
}

// ExistingRankedIDs returns the distinct item ids currently ranked for this
// user, ordered by rank. Rank-0 (terminal) entries sort first.
func (l *Ledger) ExistingRankedIDs() ([]uint, error) {
	var ids []uint
	err := l.scoped().Model(&models.Rank{}).
		Order("rank, item_id").Pluck("item_id", &ids).Error
	return ids, err
}

// Remove deletes the entries for the given item ids. Missing rows, including
// orphans whose item no longer exists, are dropped silently.
func (l *Ledger) Remove(itemIDs []uint) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return l.scoped().Where("item_id IN ?", itemIDs).Delete(&models.Rank{}).Error
}

// RenumberActive walks the user's entries in current rank order and
// reassigns 1..N to the non-terminal ones, reactivating each on the way.
// Entries whose item is now terminal are demoted to rank 0. This repairs
// the gaps removal leaves behind.
func (l *Ledger) RenumberActive(terminal map[uint]bool) error {
	var entries []models.Rank
	if err := l.scoped().Order("rank, item_id").Find(&entries).Error; err != nil {
		return err
	}

	next := uint(1)
	for _, entry := range entries {
		if terminal[entry.ItemID] {
			if entry.Rank != 0 {
				if err := l.db.Model(&models.Rank{}).Where("id = ?", entry.ID).
					Update("rank", 0).Error; err != nil {
					return err
				}
			}
			continue
		}

		want := next
		next++
		if entry.Rank != want || !entry.IsActive {
			if err := l.db.Model(&models.Rank{}).Where("id = ?", entry.ID).
				Updates(map[string]interface{}{"rank": want, "is_active": true}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// Append creates an entry for a newly visible item: rank 0 for terminal
// items, otherwise one past the current maximum active rank. An existing
// (user, item) entry is left untouched.
func (l *Ledger) Append(itemID uint, terminal bool) error {
	var count int64
	if err := l.scoped().Model(&models.Rank{}).
		Where("item_id = ?", itemID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	entry := models.Rank{
		UserID:   l.userID,
		Category: l.category,
		ItemID:   itemID,
		IsActive: true,
	}
	if !terminal {
		max, err := l.maxActiveRank()
		if err != nil {
			return err
		}
		entry.Rank = max + 1
	}
	return l.db.Create(&entry).Error
}

func (l *Ledger) maxActiveRank() (uint, error) {
	var max *uint
	err := l.scoped().Model(&models.Rank{}).
		Where("is_active = ?", true).
		Select("MAX(rank)").Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}
