package servicedesk

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/tupt100/lexops/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// sanitizer strips all markup from externally submitted text. Requests come
// in unauthenticated, so nothing they carry is trusted.
var sanitizer = bluemonday.StrictPolicy()

type IntakeRequest struct {
	RequesterName  string                 `json:"requester_name"`
	RequesterEmail string                 `json:"requester_email"`
	Subject        string                 `json:"subject"`
	Description    string                 `json:"description"`
	CompanyID      uint                   `json:"company_id"`
	Payload        map[string]interface{} `json:"payload"`
}

// Intake records an external request and hands back the access key the
// requester uses to check status later.
func Intake(db *gorm.DB, req IntakeRequest) (*models.ServiceRequest, error) {
	var company models.Company
	if err := db.First(&company, req.CompanyID).Error; err != nil {
		return nil, fmt.Errorf("company not found")
	}

	sr := models.ServiceRequest{
		AccessKey:      uuid.NewString(),
		RequesterName:  sanitizer.Sanitize(req.RequesterName),
		RequesterEmail: sanitizer.Sanitize(req.RequesterEmail),
		Subject:        sanitizer.Sanitize(req.Subject),
		Description:    sanitizer.Sanitize(req.Description),
		Status:         models.ServiceRequestOpen,
		CompanyID:      req.CompanyID,
	}
	if req.Payload != nil {
		raw, err := json.Marshal(req.Payload)
		if err != nil {
			return nil, err
		}
		sr.Payload = datatypes.JSON(raw)
	}

	if err := db.Create(&sr).Error; err != nil {
		return nil, err
	}
	return &sr, nil
}

func FindByAccessKey(db *gorm.DB, accessKey string) (*models.ServiceRequest, error) {
	var sr models.ServiceRequest
	if err := db.Where("access_key = ?", accessKey).First(&sr).Error; err != nil {
		return nil, err
	}
	return &sr, nil
}

func ListForCompany(db *gorm.DB, companyID uint, status string) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	query := db.Where("company_id = ?", companyID).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Preload("AssignedTo").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

var validTransitions = map[string][]string{
	models.ServiceRequestOpen:       {models.ServiceRequestInProgress, models.ServiceRequestClosed},
	models.ServiceRequestInProgress: {models.ServiceRequestResolved, models.ServiceRequestClosed},
	models.ServiceRequestResolved:   {models.ServiceRequestClosed, models.ServiceRequestInProgress},
}

func UpdateStatus(db *gorm.DB, requestID uint, status string, assignedTo *uint) (*models.ServiceRequest, error) {
	var sr models.ServiceRequest
	if err := db.First(&sr, requestID).Error; err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range validTransitions[sr.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("invalid status transition from %s to %s", sr.Status, status)
	}

	sr.Status = status
	if assignedTo != nil {
		sr.AssignedToID = assignedTo
	}
	if err := db.Save(&sr).Error; err != nil {
		return nil, err
	}
	return &sr, nil
}
