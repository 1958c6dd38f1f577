package rank

import (
	"fmt"
	"sync"

	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/permission"
	"gorm.io/gorm"
)

// Reconciler repairs users' rank ledgers whenever visibility-affecting state
// changes. Each category's pass runs remove, renumber, append in that order
// inside its own transaction; a failure rolls the category back whole and
// surfaces to the caller, which fails the triggering write.
type Reconciler struct {
	db       *gorm.DB
	adapters []Adapter
}

func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{db: db, adapters: Adapters()}
}

// userLocks serializes reconciliations of one user's ledger against racing
// triggers (admin bulk update vs the user's own role change). Process-local;
// multi-instance deployments additionally rely on the transactions.
var userLocks sync.Map

func lockUser(userID uint) func() {
	v, _ := userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// SeedUserRanks populates the ledger for a newly created user. Staff users
// and users without a company are skipped.
func (r *Reconciler) SeedUserRanks(user *models.User) error {
	if user.IsStaff || user.CompanyID == nil {
		return nil
	}
	return r.reconcileUser(user)
}

// RoleChanged re-runs reconciliation after a user's group was reassigned.
// The user must already carry the new group.
func (r *Reconciler) RoleChanged(user *models.User) error {
	return r.reconcileUser(user)
}

// PermissionsReplaced re-runs reconciliation for every member of a group
// whose grants were replaced wholesale.
func (r *Reconciler) PermissionsReplaced(groupID uint) error {
	var users []models.User
	if err := r.db.Where("group_id = ? AND is_staff = ?", groupID, false).
		Find(&users).Error; err != nil {
		return err
	}
	for i := range users {
		if err := r.reconcileUser(&users[i]); err != nil {
			return fmt.Errorf("reconcile user %d: %w", users[i].ID, err)
		}
	}
	return nil
}

// ItemCreated appends a rank entry for every user who can see a
// just-created item. No diffing happens: the item had no prior rank state.
func (r *Reconciler) ItemCreated(category models.Category, itemID uint) error {
	a := AdapterFor(category)
	if a == nil {
		return fmt.Errorf("unknown category %q", category)
	}

	orgID, err := a.ItemOrganization(r.db, itemID)
	if err != nil {
		return err
	}

	statuses, err := a.StatusesByID(r.db, []uint{itemID})
	if err != nil {
		return err
	}
	terminal := a.Terminal(statuses[itemID])

	var users []models.User
	if err := r.db.Where("company_id = ? AND is_staff = ? AND group_id IS NOT NULL", orgID, false).
		Find(&users).Error; err != nil {
		return err
	}

	for i := range users {
		user := &users[i]
		viewAll := permission.HasPermission(r.db, *user.GroupID, orgID, category, permission.ActionViewAll)
		if !viewAll && !permission.HasPermission(r.db, *user.GroupID, orgID, category, permission.ActionView) {
			continue
		}

		visible, err := a.ItemVisible(r.db, user, itemID, viewAll)
		if err != nil {
			return err
		}
		if !visible {
			continue
		}

		if err := r.appendForUser(user.ID, category, itemID, terminal); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reconciler) appendForUser(userID uint, category models.Category, itemID uint, terminal bool) error {
	unlock := lockUser(userID)
	defer unlock()

	return r.db.Transaction(func(tx *gorm.DB) error {
		return NewLedger(tx, userID, category).Append(itemID, terminal)
	})
}

func (r *Reconciler) reconcileUser(user *models.User) error {
	unlock := lockUser(user.ID)
	defer unlock()

	for _, a := range r.adapters {
		err := r.db.Transaction(func(tx *gorm.DB) error {
			return reconcileCategory(tx, user, a)
		})
		if err != nil {
			return fmt.Errorf("%s: %w", a.Category(), err)
		}
	}
	return nil
}

// reconcileCategory is the diff-and-repair pass: drop entries for items no
// longer matched, renumber what remains into a dense 1..N, then append
// newly matched items at the end (terminal ones at rank 0).
func reconcileCategory(tx *gorm.DB, user *models.User, a Adapter) error {
	res, err := resolve(tx, user, a)
	if err != nil {
		return err
	}

	ledger := NewLedger(tx, user.ID, a.Category())
	current, err := ledger.ExistingRankedIDs()
	if err != nil {
		return err
	}

	matched := res.matchSet()
	var toRemove []uint
	currentSet := make(map[uint]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
		if !matched[id] {
			toRemove = append(toRemove, id)
		}
	}

	if err := ledger.Remove(toRemove); err != nil {
		return err
	}

	terminalSet := make(map[uint]bool, len(res.Terminal))
	for _, id := range res.Terminal {
		terminalSet[id] = true
	}
	if err := ledger.RenumberActive(terminalSet); err != nil {
		return err
	}

	for _, id := range res.Terminal {
		if !currentSet[id] {
			if err := ledger.Append(id, true); err != nil {
				return err
			}
		}
	}
	for _, id := range res.Active {
		if !currentSet[id] {
			if err := ledger.Append(id, false); err != nil {
				return err
			}
		}
	}
	return nil
}
