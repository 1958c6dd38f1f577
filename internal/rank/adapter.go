package rank

import (
	"github.com/tupt100/lexops/internal/models"
	"gorm.io/gorm"
)

// Adapter abstracts one ranked item category so the resolver, ledger and
// reconciler run the same algorithm for tasks, projects and workflows. Each
// implementation owns the category-specific visibility predicates and the
// category's terminal status set.
type Adapter interface {
	Category() models.Category
	Terminal(status int) bool

	// VisibleIDs returns the ids matching the category's view-all or
	// view-mine predicate for the user, without status filtering.
	VisibleIDs(db *gorm.DB, user *models.User, viewAll bool) ([]uint, error)

	// ItemVisible answers the same predicate for a single item.
	ItemVisible(db *gorm.DB, user *models.User, itemID uint, viewAll bool) (bool, error)

	// ItemOrganization returns the owning company of an item.
	ItemOrganization(db *gorm.DB, itemID uint) (uint, error)

	StatusesByID(db *gorm.DB, ids []uint) (map[uint]int, error)
}

// Adapters lists every category in registration order.
func Adapters() []Adapter {
	return []Adapter{TaskAdapter{}, ProjectAdapter{}, WorkflowAdapter{}}
}

// AdapterFor returns the adapter for a category, or nil for an unknown one.
func AdapterFor(category models.Category) Adapter {
	for _, a := range Adapters() {
		if a.Category() == category {
			return a
		}
	}
	return nil
}

func groupIDOf(user *models.User) uint {
	if user.GroupID == nil {
		return 0
	}
	return *user.GroupID
}

func companyIDOf(user *models.User) uint {
	if user.CompanyID == nil {
		return 0
	}
	return *user.CompanyID
}

// ---- Task ----

type TaskAdapter struct{}

func (TaskAdapter) Category() models.Category { return models.CategoryTask }

func (TaskAdapter) Terminal(status int) bool {
	return status == models.TaskStatusCompleted || status == models.TaskStatusArchived
}

// query applies the task visibility predicate. Under view-all, private tasks
// are still limited to ones the user is related to; non-private tasks of the
// company are all visible. Under view-mine only related tasks qualify.
func (TaskAdapter) query(db *gorm.DB, user *models.User, viewAll bool) *gorm.DB {
	q := db.Model(&models.Task{}).
		Where("tasks.organization_id = ?", companyIDOf(user))

	related := "tasks.assigned_to_id = ? OR tasks.created_by_id = ? OR tasks.assigned_to_group_id = ?"
	if viewAll {
		return q.Where("tasks.is_private = ? OR "+related,
			false, user.ID, user.ID, groupIDOf(user))
	}
	return q.Where(related, user.ID, user.ID, groupIDOf(user))
}

func (a TaskAdapter) VisibleIDs(db *gorm.DB, user *models.User, viewAll bool) ([]uint, error) {
	var ids []uint
	err := a.query(db, user, viewAll).Order("tasks.id").Pluck("tasks.id", &ids).Error
	return ids, err
}

func (a TaskAdapter) ItemVisible(db *gorm.DB, user *models.User, itemID uint, viewAll bool) (bool, error) {
	var count int64
	err := a.query(db, user, viewAll).Where("tasks.id = ?", itemID).Count(&count).Error
	return count > 0, err
}

func (TaskAdapter) ItemOrganization(db *gorm.DB, itemID uint) (uint, error) {
	var task models.Task
	if err := db.Select("id", "organization_id").First(&task, itemID).Error; err != nil {
		return 0, err
	}
	return task.OrganizationID, nil
}

func (TaskAdapter) StatusesByID(db *gorm.DB, ids []uint) (map[uint]int, error) {
	return statusesFor(db, &models.Task{}, "tasks", ids)
}

// ---- Project ----

type ProjectAdapter struct{}

func (ProjectAdapter) Category() models.Category { return models.CategoryProject }

func (ProjectAdapter) Terminal(status int) bool {
	return status == models.ProjectStatusCompleted || status == models.ProjectStatusArchived
}

// query applies the project visibility predicate. Projects have no private
// flag, so view-all is the whole company. View-mine spans owner, creator,
// assigned users and assigned groups.
func (ProjectAdapter) query(db *gorm.DB, user *models.User, viewAll bool) *gorm.DB {
	q := db.Model(&models.Project{}).
		Where("projects.organization_id = ?", companyIDOf(user))
	if viewAll {
		return q
	}
	return q.
		Joins("LEFT JOIN project_assigned_users pau ON pau.project_id = projects.id").
		Joins("LEFT JOIN project_assigned_groups pag ON pag.project_id = projects.id").
		Where("projects.owner_id = ? OR projects.created_by_id = ? OR pau.user_id = ? OR pag.group_id = ?",
			user.ID, user.ID, user.ID, groupIDOf(user))
}

func (a ProjectAdapter) VisibleIDs(db *gorm.DB, user *models.User, viewAll bool) ([]uint, error) {
	var ids []uint
	err := a.query(db, user, viewAll).Distinct().Order("projects.id").Pluck("projects.id", &ids).Error
	return ids, err
}

func (a ProjectAdapter) ItemVisible(db *gorm.DB, user *models.User, itemID uint, viewAll bool) (bool, error) {
	var count int64
	err := a.query(db, user, viewAll).Where("projects.id = ?", itemID).
		Distinct("projects.id").Count(&count).Error
	return count > 0, err
}

func (ProjectAdapter) ItemOrganization(db *gorm.DB, itemID uint) (uint, error) {
	var project models.Project
	if err := db.Select("id", "organization_id").First(&project, itemID).Error; err != nil {
		return 0, err
	}
	return project.OrganizationID, nil
}

func (ProjectAdapter) StatusesByID(db *gorm.DB, ids []uint) (map[uint]int, error) {
	return statusesFor(db, &models.Project{}, "projects", ids)
}

// ---- Workflow ----

type WorkflowAdapter struct{}

func (WorkflowAdapter) Category() models.Category { return models.CategoryWorkflow }

func (WorkflowAdapter) Terminal(status int) bool {
	return status == models.WorkflowStatusCompleted || status == models.WorkflowStatusArchived
}

func (WorkflowAdapter) query(db *gorm.DB, user *models.User, viewAll bool) *gorm.DB {
	q := db.Model(&models.Workflow{}).
		Where("workflows.organization_id = ?", companyIDOf(user))
	if viewAll {
		return q
	}
	return q.
		Joins("LEFT JOIN workflow_assigned_users wau ON wau.workflow_id = workflows.id").
		Joins("LEFT JOIN workflow_assigned_groups wag ON wag.workflow_id = workflows.id").
		Where("workflows.owner_id = ? OR workflows.created_by_id = ? OR wau.user_id = ? OR wag.group_id = ?",
			user.ID, user.ID, user.ID, groupIDOf(user))
}

func (a WorkflowAdapter) VisibleIDs(db *gorm.DB, user *models.User, viewAll bool) ([]uint, error) {
	var ids []uint
	err := a.query(db, user, viewAll).Distinct().Order("workflows.id").Pluck("workflows.id", &ids).Error
	return ids, err
}

func (a WorkflowAdapter) ItemVisible(db *gorm.DB, user *models.User, itemID uint, viewAll bool) (bool, error) {
	var count int64
	err := a.query(db, user, viewAll).Where("workflows.id = ?", itemID).
		Distinct("workflows.id").Count(&count).Error
	return count > 0, err
}

func (WorkflowAdapter) ItemOrganization(db *gorm.DB, itemID uint) (uint, error) {
	var wf models.Workflow
	if err := db.Select("id", "organization_id").First(&wf, itemID).Error; err != nil {
		return 0, err
	}
	return wf.OrganizationID, nil
}

func (WorkflowAdapter) StatusesByID(db *gorm.DB, ids []uint) (map[uint]int, error) {
	return statusesFor(db, &models.Workflow{}, "workflows", ids)
}

func statusesFor(db *gorm.DB, model interface{}, table string, ids []uint) (map[uint]int, error) {
	statuses := make(map[uint]int, len(ids))
	if len(ids) == 0 {
		return statuses, nil
	}

	var rows []struct {
		ID     uint
		Status int
	}
	err := db.Model(model).Select(table+".id, "+table+".status").
		Where(table+".id IN ?", ids).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		statuses[row.ID] = row.Status
	}
	return statuses, nil
}
