package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/permission"
	"github.com/tupt100/lexops/internal/server"
	"github.com/tupt100/lexops/internal/utils"
)

func TestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err, "Failed to create test database")

	err = db.AutoMigrate(
		&models.Company{},
		&models.Invitation{},
		&models.Group{},
		&models.Permission{},
		&models.PermissionGrant{},
		&models.DefaultPermission{},
		&models.User{},
		&models.Task{},
		&models.Project{},
		&models.Workflow{},
		&models.Rank{},
		&models.Notification{},
		&models.ServiceRequest{},
	)
	assert.NoError(t, err, "Failed to migrate test database")

	err = permission.SeedCatalog(db)
	assert.NoError(t, err, "Failed to seed permission catalog")

	return db
}

func SetupTestApp(t *testing.T) *fiber.App {
	db := TestDB(t)
	database.DB = db

	app := server.New(db)
	return app
}

func CreateTestCompany(t *testing.T, db *gorm.DB, name string) *models.Company {
	company := &models.Company{Name: name, Address: "123 Test St"}
	err := db.Create(company).Error
	assert.NoError(t, err, "Failed to create test company")
	return company
}

// CreateTestGroup creates a group holding exactly the listed permission
// slugs. Pass nil for an admin group with every permission.
func CreateTestGroup(t *testing.T, db *gorm.DB, companyID uint, name string, slugs []string) *models.Group {
	group := &models.Group{
		Name:           name,
		CompanyID:      &companyID,
		IsCompanyAdmin: slugs == nil,
		CanBeDeleted:   true,
	}
	err := db.Create(group).Error
	assert.NoError(t, err, "Failed to create test group")

	var perms []models.Permission
	if slugs == nil {
		err = db.Find(&perms).Error
	} else {
		err = db.Where("slug IN ?", slugs).Find(&perms).Error
		if err == nil && len(perms) != len(slugs) {
			t.Fatalf("Expected %d permissions for slugs %v, found %d", len(slugs), slugs, len(perms))
		}
	}
	assert.NoError(t, err, "Failed to load permissions")

	for _, p := range perms {
		grant := models.PermissionGrant{
			GroupID:       group.ID,
			PermissionID:  p.ID,
			CompanyID:     companyID,
			HasPermission: true,
		}
		assert.NoError(t, db.Create(&grant).Error, "Failed to create grant")
	}

	return group
}

func CreateTestUser(t *testing.T, db *gorm.DB, email string, companyID, groupID uint) *models.User {
	hashedPassword, _ := utils.HashPassword("password123")

	user := &models.User{
		Name:      "Test User",
		Email:     email,
		Password:  hashedPassword,
		CompanyID: &companyID,
		GroupID:   &groupID,
	}
	err := db.Create(user).Error
	assert.NoError(t, err, "Failed to create test user")
	return user
}

func CreateTestStaff(t *testing.T, db *gorm.DB, email string) *models.User {
	hashedPassword, _ := utils.HashPassword("password123")

	user := &models.User{
		Name:     "Staff User",
		Email:    email,
		Password: hashedPassword,
		IsStaff:  true,
	}
	err := db.Create(user).Error
	assert.NoError(t, err, "Failed to create staff user")
	return user
}

func GetAuthToken(t *testing.T, user *models.User) string {
	groupName := ""
	if user.GroupID != nil {
		var g models.Group
		if err := database.DB.First(&g, *user.GroupID).Error; err == nil {
			groupName = g.Name
		}
	}
	token, err := utils.GenerateJWT(user.ID, groupName)
	assert.NoError(t, err, "Failed to generate test token")
	return token
}

func MakeRequest(app *fiber.App, method, url string, body interface{}, token string) (*httptest.ResponseRecorder, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()

	resp, err := app.Test(req, -1)
	if err != nil {
		return rec, err
	}

	rec.Code = resp.StatusCode

	io.Copy(rec.Body, resp.Body)
	resp.Body.Close()

	return rec, nil
}

func ParseResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	if resp.Body.Len() == 0 {
		t.Log("Warning: Response body is empty")
		return
	}

	err := json.NewDecoder(resp.Body).Decode(v)
	if err != nil && err != io.EOF {
		t.Logf("Response body: %s", resp.Body.String())
		assert.NoError(t, err, "Failed to parse response")
	}
}

type StandardResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data"`
	Error   *ErrorDetail `json:"error"`
	Meta    *Meta        `json:"meta"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func AssertSuccess(t *testing.T, resp *httptest.ResponseRecorder) {
	var result StandardResponse
	ParseResponse(t, resp, &result)
	assert.True(t, result.Success, "Expected success response")
	assert.Empty(t, result.Error, "Expected no error")
}

func AssertError(t *testing.T, resp *httptest.ResponseRecorder, expectedCode string) {
	var result StandardResponse
	ParseResponse(t, resp, &result)
	assert.False(t, result.Success, "Expected error response")
	assert.NotNil(t, result.Error, "Expected error object")
	assert.Equal(t, expectedCode, result.Error.Code, "Error code mismatch")
}

// RankRows returns the user's rank rows for a category ordered by rank,
// handy for asserting sequence density.
func RankRows(t *testing.T, db *gorm.DB, userID uint, category models.Category) []models.Rank {
	var rows []models.Rank
	err := db.Where("user_id = ? AND category = ?", userID, category).
		Order("rank, item_id").Find(&rows).Error
	assert.NoError(t, err, "Failed to load rank rows")
	return rows
}

// AssertDenseSequence checks that active rows form exactly 1..N with no
// gaps or duplicates, ignoring rank-0 rows.
func AssertDenseSequence(t *testing.T, rows []models.Rank) {
	active := make([]uint, 0, len(rows))
	for _, r := range rows {
		if r.Rank > 0 {
			active = append(active, r.Rank)
		}
	}
	for i, rank := range active {
		assert.Equal(t, uint(i+1), rank, fmt.Sprintf("rank sequence broken at position %d", i))
	}
}
