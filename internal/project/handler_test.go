package project_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/permission"
	"github.com/tupt100/lexops/internal/testutils"
)

func projectSlugs(actions ...string) []string {
	slugs := make([]string, 0, len(actions))
	for _, a := range actions {
		slugs = append(slugs, permission.Slug(models.CategoryProject, a))
	}
	return slugs
}

func TestCreateProjectAppendsRanks(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	company := testutils.CreateTestCompany(t, db, "Acme Legal")
	group := testutils.CreateTestGroup(t, db, company.ID, "Partners",
		projectSlugs(permission.ActionCreate, permission.ActionViewAll))
	creator := testutils.CreateTestUser(t, db, "creator@acme.test", company.ID, group.ID)
	token := testutils.GetAuthToken(t, creator)

	resp, err := testutils.MakeRequest(app, "POST", "/projects/", map[string]interface{}{
		"name":        "Litigation X",
		"description": "Class action defense",
	}, token)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.Code)
	testutils.AssertSuccess(t, resp)

	var p models.Project
	assert.NoError(t, db.Where("name = ?", "Litigation X").First(&p).Error)

	rows := testutils.RankRows(t, db, creator.ID, models.CategoryProject)
	assert.Len(t, rows, 1)
	assert.Equal(t, p.ID, rows[0].ItemID)
}

func TestAssignUsersReconcilesBothDirections(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	company := testutils.CreateTestCompany(t, db, "Acme Legal")
	adminGroup := testutils.CreateTestGroup(t, db, company.ID, "Partners",
		projectSlugs(permission.ActionCreate, permission.ActionViewAll, permission.ActionUpdate))
	mineGroup := testutils.CreateTestGroup(t, db, company.ID, "Paralegals",
		projectSlugs(permission.ActionView))

	manager := testutils.CreateTestUser(t, db, "manager@acme.test", company.ID, adminGroup.ID)
	leaver := testutils.CreateTestUser(t, db, "leaver@acme.test", company.ID, mineGroup.ID)
	joiner := testutils.CreateTestUser(t, db, "joiner@acme.test", company.ID, mineGroup.ID)
	token := testutils.GetAuthToken(t, manager)

	p := models.Project{
		Name:           "Litigation X",
		Status:         models.ProjectStatusActive,
		OrganizationID: company.ID,
		CreatedByID:    manager.ID,
	}
	assert.NoError(t, db.Create(&p).Error)
	assert.NoError(t, db.Model(&p).Association("AssignedToUsers").Append(leaver))
	assert.NoError(t, db.Create(&models.Rank{
		UserID: leaver.ID, Category: models.CategoryProject,
		ItemID: p.ID, Rank: 1, IsActive: true,
	}).Error)

	resp, err := testutils.MakeRequest(app, "PUT",
		fmt.Sprintf("/projects/%d/assignees", p.ID),
		map[string]interface{}{"user_ids": []uint{joiner.ID}}, token)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code)
	testutils.AssertSuccess(t, resp)

	// Reassignment away removes the leaver's entry and seeds the joiner's.
	assert.Empty(t, testutils.RankRows(t, db, leaver.ID, models.CategoryProject))

	joinerRows := testutils.RankRows(t, db, joiner.ID, models.CategoryProject)
	assert.Len(t, joinerRows, 1)
	assert.Equal(t, p.ID, joinerRows[0].ItemID)
	assert.Equal(t, uint(1), joinerRows[0].Rank)
}

func TestProjectStatusRange(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	company := testutils.CreateTestCompany(t, db, "Acme Legal")
	group := testutils.CreateTestGroup(t, db, company.ID, "Partners",
		projectSlugs(permission.ActionViewAll, permission.ActionUpdate))
	user := testutils.CreateTestUser(t, db, "user@acme.test", company.ID, group.ID)
	token := testutils.GetAuthToken(t, user)

	p := models.Project{
		Name:           "Merger Y",
		Status:         models.ProjectStatusActive,
		OrganizationID: company.ID,
		CreatedByID:    user.ID,
	}
	assert.NoError(t, db.Create(&p).Error)

	resp, err := testutils.MakeRequest(app, "PUT",
		fmt.Sprintf("/projects/%d/status", p.ID),
		map[string]interface{}{"status": models.ProjectStatusCompleted}, token)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code)

	resp, err = testutils.MakeRequest(app, "PUT",
		fmt.Sprintf("/projects/%d/status", p.ID),
		map[string]interface{}{"status": 7}, token)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.Code)
}
