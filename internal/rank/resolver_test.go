package rank_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/permission"
	"github.com/tupt100/lexops/internal/rank"
	"github.com/tupt100/lexops/internal/testutils"
)

func TestVisibleItemIDs(t *testing.T) {
	db := testutils.TestDB(t)
	company := testutils.CreateTestCompany(t, db, "Acme Legal")

	archiveGroup := testutils.CreateTestGroup(t, db, company.ID, "Archivists",
		taskSlugs(permission.ActionViewAll, permission.ActionViewArchived))
	plainGroup := testutils.CreateTestGroup(t, db, company.ID, "Partners",
		taskSlugs(permission.ActionViewAll))

	archivist := testutils.CreateTestUser(t, db, "archivist@acme.test", company.ID, archiveGroup.ID)
	partner := testutils.CreateTestUser(t, db, "partner@acme.test", company.ID, plainGroup.ID)

	active := createTask(t, db, company.ID, "Active", models.TaskStatusNew, func(tk *models.Task) {
		tk.CreatedByID = partner.ID
	})
	archived := createTask(t, db, company.ID, "Archived", models.TaskStatusArchived, func(tk *models.Task) {
		tk.CreatedByID = partner.ID
	})

	adapter := rank.AdapterFor(models.CategoryTask)

	t.Run("terminal items need the archived grant", func(t *testing.T) {
		ids, err := rank.VisibleItemIDs(db, partner, adapter)
		assert.NoError(t, err)
		assert.Equal(t, []uint{active.ID}, ids)
	})

	t.Run("archived grant includes terminal items", func(t *testing.T) {
		ids, err := rank.VisibleItemIDs(db, archivist, adapter)
		assert.NoError(t, err)
		assert.ElementsMatch(t, []uint{active.ID, archived.ID}, ids)
	})

	t.Run("user without group sees nothing", func(t *testing.T) {
		orphan := &models.User{CompanyID: &company.ID}
		ids, err := rank.VisibleItemIDs(db, orphan, adapter)
		assert.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestPrivateTaskAsymmetry(t *testing.T) {
	db := testutils.TestDB(t)
	company := testutils.CreateTestCompany(t, db, "Acme Legal")
	group := testutils.CreateTestGroup(t, db, company.ID, "Partners",
		taskSlugs(permission.ActionViewAll))

	owner := testutils.CreateTestUser(t, db, "owner@acme.test", company.ID, group.ID)
	bystander := testutils.CreateTestUser(t, db, "bystander@acme.test", company.ID, group.ID)

	private := createTask(t, db, company.ID, "Private", models.TaskStatusNew, func(tk *models.Task) {
		tk.CreatedByID = owner.ID
		tk.IsPrivate = true
	})
	public := createTask(t, db, company.ID, "Public", models.TaskStatusNew, func(tk *models.Task) {
		tk.CreatedByID = owner.ID
	})

	adapter := rank.AdapterFor(models.CategoryTask)

	ownerIDs, err := rank.VisibleItemIDs(db, owner, adapter)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint{private.ID, public.ID}, ownerIDs)

	// view-all grants the whole company, but private tasks stay with their
	// creator, assignee and assigned group.
	bystanderIDs, err := rank.VisibleItemIDs(db, bystander, adapter)
	assert.NoError(t, err)
	assert.Equal(t, []uint{public.ID}, bystanderIDs)
}

func TestOrderedVisibleIDs(t *testing.T) {
	db := testutils.TestDB(t)
	company := testutils.CreateTestCompany(t, db, "Acme Legal")
	group := testutils.CreateTestGroup(t, db, company.ID, "Archivists",
		taskSlugs(permission.ActionViewAll, permission.ActionViewArchived))
	user := testutils.CreateTestUser(t, db, "user@acme.test", company.ID, group.ID)

	var ids []uint
	for _, spec := range []struct {
		title  string
		status int
	}{
		{"First", models.TaskStatusNew},
		{"Second", models.TaskStatusNew},
		{"Done", models.TaskStatusCompleted},
	} {
		task := createTask(t, db, company.ID, spec.title, spec.status, func(tk *models.Task) {
			tk.CreatedByID = user.ID
		})
		ids = append(ids, task.ID)
	}

	r := rank.NewReconciler(db)
	assert.NoError(t, r.SeedUserRanks(user))

	adapter := rank.AdapterFor(models.CategoryTask)
	ordered, err := rank.OrderedVisibleIDs(db, user, adapter)
	assert.NoError(t, err)

	// Active items in rank order, the terminal one trailing.
	assert.Equal(t, []uint{ids[0], ids[1], ids[2]}, ordered)
}

func TestProjectAdapterVisibility(t *testing.T) {
	db := testutils.TestDB(t)
	company := testutils.CreateTestCompany(t, db, "Acme Legal")
	group := testutils.CreateTestGroup(t, db, company.ID, "Paralegals",
		[]string{permission.Slug(models.CategoryProject, permission.ActionView)})
	other := testutils.CreateTestGroup(t, db, company.ID, "Partners",
		[]string{permission.Slug(models.CategoryProject, permission.ActionViewAll)})

	member := testutils.CreateTestUser(t, db, "member@acme.test", company.ID, group.ID)
	partner := testutils.CreateTestUser(t, db, "partner@acme.test", company.ID, other.ID)

	assigned := &models.Project{
		Name:           "Litigation X",
		Status:         models.ProjectStatusActive,
		OrganizationID: company.ID,
		CreatedByID:    partner.ID,
	}
	assert.NoError(t, db.Create(assigned).Error)
	assert.NoError(t, db.Model(assigned).Association("AssignedToUsers").Append(member))

	unrelated := &models.Project{
		Name:           "Merger Y",
		Status:         models.ProjectStatusActive,
		OrganizationID: company.ID,
		CreatedByID:    partner.ID,
	}
	assert.NoError(t, db.Create(unrelated).Error)

	adapter := rank.AdapterFor(models.CategoryProject)

	memberIDs, err := rank.VisibleItemIDs(db, member, adapter)
	assert.NoError(t, err)
	assert.Equal(t, []uint{assigned.ID}, memberIDs)

	partnerIDs, err := rank.VisibleItemIDs(db, partner, adapter)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint{assigned.ID, unrelated.ID}, partnerIDs)
}
