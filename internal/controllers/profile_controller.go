package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/middleware"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/services"
	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	userService services.UserService
}

func NewProfileController(userService services.UserService) *ProfileController {
	return &ProfileController{userService: userService}
}

// GetProfile godoc
// @Summary Get your profile
// @Tags profile
// @Produce json
// @Success 200 {object} models.User
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/profile [get]
func (pc *ProfileController) GetProfile(c *gin.Context) {
	user, err := pc.userService.GetUserByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Replace your profile
// @Description Name, phone and address are all replaced. Omitted fields are cleared.
// @Tags profile
// @Accept json
// @Produce json
// @Param request body services.ProfileUpdate true "Profile"
// @Success 200 {object} models.User
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/profile [put]
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	var req services.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := pc.userService.UpdateProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
