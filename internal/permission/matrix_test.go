package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/permission"
	"github.com/tupt100/lexops/internal/testutils"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "task_task-create", permission.Slug(models.CategoryTask, permission.ActionCreate))
	assert.Equal(t, "project_project-view-all", permission.Slug(models.CategoryProject, permission.ActionViewAll))
	assert.Equal(t, "workflow_workflow-view", permission.Slug(models.CategoryWorkflow, permission.ActionView))

	// The archived modifier does not repeat the category.
	assert.Equal(t, "task_view-archived", permission.Slug(models.CategoryTask, permission.ActionViewArchived))
}

func TestSeedCatalogIsIdempotent(t *testing.T) {
	db := testutils.TestDB(t)

	var before int64
	db.Model(&models.Permission{}).Count(&before)
	assert.NotZero(t, before)

	assert.NoError(t, permission.SeedCatalog(db))

	var after int64
	db.Model(&models.Permission{}).Count(&after)
	assert.Equal(t, before, after)
}

func TestHasPermission(t *testing.T) {
	db := testutils.TestDB(t)
	company := testutils.CreateTestCompany(t, db, "Acme Legal")
	group := testutils.CreateTestGroup(t, db, company.ID, "Partners",
		[]string{permission.Slug(models.CategoryTask, permission.ActionViewAll)})

	assert.True(t, permission.HasPermission(db, group.ID, company.ID, models.CategoryTask, permission.ActionViewAll))

	t.Run("absent grant row means denied", func(t *testing.T) {
		assert.False(t, permission.HasPermission(db, group.ID, company.ID, models.CategoryTask, permission.ActionDelete))
	})

	t.Run("grants are company scoped", func(t *testing.T) {
		otherCompany := testutils.CreateTestCompany(t, db, "Other Corp")
		assert.False(t, permission.HasPermission(db, group.ID, otherCompany.ID, models.CategoryTask, permission.ActionViewAll))
	})

	t.Run("unknown group is denied", func(t *testing.T) {
		assert.False(t, permission.HasPermission(db, 9999, company.ID, models.CategoryTask, permission.ActionViewAll))
	})
}

func TestReplaceGroupGrants(t *testing.T) {
	db := testutils.TestDB(t)
	company := testutils.CreateTestCompany(t, db, "Acme Legal")
	group := testutils.CreateTestGroup(t, db, company.ID, "Associates",
		[]string{
			permission.Slug(models.CategoryTask, permission.ActionView),
			permission.Slug(models.CategoryTask, permission.ActionCreate),
		})

	var update models.Permission
	assert.NoError(t, db.Where("slug = ?", permission.Slug(models.CategoryTask, permission.ActionUpdate)).
		First(&update).Error)

	assert.NoError(t, permission.ReplaceGroupGrants(db, group.ID, company.ID, []uint{update.ID}))

	// Old grants are gone, only the new set remains.
	assert.False(t, permission.HasPermission(db, group.ID, company.ID, models.CategoryTask, permission.ActionView))
	assert.False(t, permission.HasPermission(db, group.ID, company.ID, models.CategoryTask, permission.ActionCreate))
	assert.True(t, permission.HasPermission(db, group.ID, company.ID, models.CategoryTask, permission.ActionUpdate))

	grants, err := permission.GroupGrants(db, group.ID, company.ID)
	assert.NoError(t, err)
	assert.Len(t, grants, 1)
}

func TestApplyDefaultGrants(t *testing.T) {
	db := testutils.TestDB(t)
	company := testutils.CreateTestCompany(t, db, "Acme Legal")

	t.Run("member template grants create view update", func(t *testing.T) {
		group := &models.Group{Name: "Members", CompanyID: &company.ID, CanBeDeleted: true}
		assert.NoError(t, db.Create(group).Error)
		assert.NoError(t, permission.ApplyDefaultGrants(db, group.ID, company.ID, false))

		assert.True(t, permission.HasPermission(db, group.ID, company.ID, models.CategoryTask, permission.ActionCreate))
		assert.True(t, permission.HasPermission(db, group.ID, company.ID, models.CategoryTask, permission.ActionView))
		assert.True(t, permission.HasPermission(db, group.ID, company.ID, models.CategoryTask, permission.ActionUpdate))
		assert.False(t, permission.HasPermission(db, group.ID, company.ID, models.CategoryTask, permission.ActionDelete))
	})

	t.Run("admin gets every permission", func(t *testing.T) {
		group := &models.Group{Name: "Admins", CompanyID: &company.ID, IsCompanyAdmin: true}
		assert.NoError(t, db.Create(group).Error)
		assert.NoError(t, permission.ApplyDefaultGrants(db, group.ID, company.ID, true))

		assert.True(t, permission.HasPermission(db, group.ID, company.ID, models.CategoryTask, permission.ActionDelete))
		assert.True(t, permission.HasPermission(db, group.ID, company.ID, models.CategoryProject, permission.ActionViewArchived))
	})
}
