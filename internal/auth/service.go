package auth

import (
	"fmt"

	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/utils"
)

func LoginUser(email, password string) (string, *models.User, error) {
	var user models.User
	if err := database.DB.Preload("Group").Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	groupName := ""
	if user.Group != nil {
		groupName = user.Group.Name
	}

	token, err := utils.GenerateJWT(user.ID, groupName)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}
