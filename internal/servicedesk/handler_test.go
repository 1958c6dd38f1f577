package servicedesk_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/permission"
	"github.com/tupt100/lexops/internal/testutils"
)

func TestIntakeAndStatusLookup(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	company := testutils.CreateTestCompany(t, db, "Acme Legal")

	resp, err := testutils.MakeRequest(app, "POST", "/servicedesk/requests", map[string]interface{}{
		"requester_name":  "Jordan Doe",
		"requester_email": "jordan@client.test",
		"subject":         "Contract question",
		"description":     "<script>alert(1)</script>Need help with clause 4",
		"company_id":      company.ID,
	}, "")
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.Code)

	var result testutils.StandardResponse
	testutils.ParseResponse(t, resp, &result)
	data := result.Data.(map[string]interface{})
	accessKey := data["access_key"].(string)
	assert.NotEmpty(t, accessKey)

	var sr models.ServiceRequest
	assert.NoError(t, db.Where("access_key = ?", accessKey).First(&sr).Error)
	// Markup is stripped before storage.
	assert.Equal(t, "Need help with clause 4", sr.Description)
	assert.Equal(t, models.ServiceRequestOpen, sr.Status)

	t.Run("status lookup is public", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET",
			"/servicedesk/requests/status/"+accessKey, nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var lookup testutils.StandardResponse
		testutils.ParseResponse(t, resp, &lookup)
		body := lookup.Data.(map[string]interface{})
		assert.Equal(t, "open", body["status"])
		// The access key response never leaks internal ids.
		assert.NotContains(t, body, "id")
	})

	t.Run("unknown access key is a 404", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET",
			"/servicedesk/requests/status/not-a-key", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
	})

	t.Run("unknown company is rejected", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/servicedesk/requests", map[string]interface{}{
			"requester_email": "x@client.test",
			"subject":         "Hello",
			"company_id":      9999,
		}, "")
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})
}

func TestRequestStatusTransitions(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	company := testutils.CreateTestCompany(t, db, "Acme Legal")
	group := testutils.CreateTestGroup(t, db, company.ID, "Staffers",
		[]string{permission.Slug(models.CategoryTask, permission.ActionView)})
	agent := testutils.CreateTestUser(t, db, "agent@acme.test", company.ID, group.ID)
	token := testutils.GetAuthToken(t, agent)

	sr := models.ServiceRequest{
		AccessKey:      "test-key-transitions",
		RequesterEmail: "client@client.test",
		Subject:        "Billing question",
		Status:         models.ServiceRequestOpen,
		CompanyID:      company.ID,
	}
	assert.NoError(t, db.Create(&sr).Error)

	url := fmt.Sprintf("/servicedesk/requests/%d/status", sr.ID)

	t.Run("open to resolved is not allowed", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT", url,
			map[string]interface{}{"status": models.ServiceRequestResolved}, token)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})

	t.Run("open to in_progress with assignment", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT", url, map[string]interface{}{
			"status":         models.ServiceRequestInProgress,
			"assigned_to_id": agent.ID,
		}, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var reloaded models.ServiceRequest
		assert.NoError(t, db.First(&reloaded, sr.ID).Error)
		assert.Equal(t, models.ServiceRequestInProgress, reloaded.Status)
		assert.Equal(t, agent.ID, *reloaded.AssignedToID)
	})

	t.Run("authenticated list is company scoped", func(t *testing.T) {
		other := testutils.CreateTestCompany(t, db, "Other Corp")
		assert.NoError(t, db.Create(&models.ServiceRequest{
			AccessKey:      "other-co-key",
			RequesterEmail: "x@client.test",
			Subject:        "Elsewhere",
			Status:         models.ServiceRequestOpen,
			CompanyID:      other.ID,
		}).Error)

		resp, err := testutils.MakeRequest(app, "GET", "/servicedesk/requests", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		items := result.Data.([]interface{})
		assert.Len(t, items, 1)
	})
}
