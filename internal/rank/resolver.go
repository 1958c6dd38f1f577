package rank

import (
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/permission"
	"gorm.io/gorm"
)

// resolution is the outcome of evaluating a user's visibility predicate for
// one category. Matches are split by terminal status: active matches carry
// positive ranks, terminal matches are parked at rank 0 by the ledger.
type resolution struct {
	Active   []uint
	Terminal []uint
	Statuses map[uint]int
}

func (r *resolution) matchSet() map[uint]bool {
	set := make(map[uint]bool, len(r.Active)+len(r.Terminal))
	for _, id := range r.Active {
		set[id] = true
	}
	for _, id := range r.Terminal {
		set[id] = true
	}
	return set
}

// resolve evaluates the permission matrix and the category predicate for a
// user. A user without a group or company resolves to nothing; that is a
// configuration state, not an error.
func resolve(db *gorm.DB, user *models.User, a Adapter) (*resolution, error) {
	res := &resolution{Statuses: map[uint]int{}}
	if user.CompanyID == nil || user.GroupID == nil {
		return res, nil
	}

	groupID, companyID := *user.GroupID, *user.CompanyID
	viewAll := permission.HasPermission(db, groupID, companyID, a.Category(), permission.ActionViewAll)
	if !viewAll && !permission.HasPermission(db, groupID, companyID, a.Category(), permission.ActionView) {
		return res, nil
	}

	ids, err := a.VisibleIDs(db, user, viewAll)
	if err != nil {
		return nil, err
	}

	statuses, err := a.StatusesByID(db, ids)
	if err != nil {
		return nil, err
	}

	res.Statuses = statuses
	for _, id := range ids {
		if a.Terminal(statuses[id]) {
			res.Terminal = append(res.Terminal, id)
		} else {
			res.Active = append(res.Active, id)
		}
	}
	return res, nil
}

// VisibleItemIDs is the read-path entitlement set: every matching item, with
// terminal items included only under a view-archived grant.
func VisibleItemIDs(db *gorm.DB, user *models.User, a Adapter) ([]uint, error) {
	res, err := resolve(db, user, a)
	if err != nil {
		return nil, err
	}

	ids := append([]uint{}, res.Active...)
	if user.CompanyID != nil && user.GroupID != nil &&
		permission.HasPermission(db, *user.GroupID, *user.CompanyID, a.Category(), permission.ActionViewArchived) {
		ids = append(ids, res.Terminal...)
	}
	return ids, nil
}

// OrderedVisibleIDs intersects the entitlement set with the user's ledger
// and returns item ids in personal rank order. Rank-0 (terminal) entries
// trail the active sequence. List endpoints read this instead of sorting
// items themselves.
func OrderedVisibleIDs(db *gorm.DB, user *models.User, a Adapter) ([]uint, error) {
	visible, err := VisibleItemIDs(db, user, a)
	if err != nil || len(visible) == 0 {
		return nil, err
	}
	visibleSet := make(map[uint]bool, len(visible))
	for _, id := range visible {
		visibleSet[id] = true
	}

	var entries []models.Rank
	err = db.Where("user_id = ? AND category = ? AND is_active = ?", user.ID, a.Category(), true).
		Order("rank, item_id").Find(&entries).Error
	if err != nil {
		return nil, err
	}

	ordered := make([]uint, 0, len(entries))
	var terminal []uint
	for _, e := range entries {
		if !visibleSet[e.ItemID] {
			continue
		}
		if e.Rank == 0 {
			terminal = append(terminal, e.ItemID)
			continue
		}
		ordered = append(ordered, e.ItemID)
	}
	return append(ordered, terminal...), nil
}
