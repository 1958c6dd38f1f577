package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/permission"
	"github.com/tupt100/lexops/internal/testutils"
)

func workflowSlugs(actions ...string) []string {
	slugs := make([]string, 0, len(actions))
	for _, a := range actions {
		slugs = append(slugs, permission.Slug(models.CategoryWorkflow, a))
	}
	return slugs
}

func TestCreateWorkflowAppendsRanks(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	company := testutils.CreateTestCompany(t, db, "Acme Legal")
	group := testutils.CreateTestGroup(t, db, company.ID, "Partners",
		workflowSlugs(permission.ActionCreate, permission.ActionViewAll))
	creator := testutils.CreateTestUser(t, db, "creator@acme.test", company.ID, group.ID)
	token := testutils.GetAuthToken(t, creator)

	resp, err := testutils.MakeRequest(app, "POST", "/workflows/", map[string]interface{}{
		"name":        "Intake review",
		"description": "Standard client intake",
	}, token)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.Code)
	testutils.AssertSuccess(t, resp)

	var w models.Workflow
	assert.NoError(t, db.Where("name = ?", "Intake review").First(&w).Error)

	rows := testutils.RankRows(t, db, creator.ID, models.CategoryWorkflow)
	assert.Len(t, rows, 1)
	assert.Equal(t, w.ID, rows[0].ItemID)
	assert.Equal(t, uint(1), rows[0].Rank)
}

func TestListWorkflowsScopedByCompany(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	company := testutils.CreateTestCompany(t, db, "Acme Legal")
	other := testutils.CreateTestCompany(t, db, "Other Corp")
	group := testutils.CreateTestGroup(t, db, company.ID, "Partners",
		workflowSlugs(permission.ActionViewAll))
	user := testutils.CreateTestUser(t, db, "user@acme.test", company.ID, group.ID)
	token := testutils.GetAuthToken(t, user)

	mine := models.Workflow{
		Name: "Ours", Status: models.WorkflowStatusActive,
		OrganizationID: company.ID, CreatedByID: user.ID,
	}
	assert.NoError(t, db.Create(&mine).Error)
	foreign := models.Workflow{
		Name: "Theirs", Status: models.WorkflowStatusActive,
		OrganizationID: other.ID, CreatedByID: user.ID,
	}
	assert.NoError(t, db.Create(&foreign).Error)

	assert.NoError(t, db.Create(&models.Rank{
		UserID: user.ID, Category: models.CategoryWorkflow,
		ItemID: mine.ID, Rank: 1, IsActive: true,
	}).Error)

	resp, err := testutils.MakeRequest(app, "GET", "/workflows/", nil, token)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code)

	var result testutils.StandardResponse
	testutils.ParseResponse(t, resp, &result)
	items := result.Data.([]interface{})
	assert.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "Ours", item["name"])
}
