package handlers

import (
	"github.com/gin-gonic/gin"

	"rentit/internal/services"
	"rentit/internal/utils"
	"rentit/internal/validators"
)

type UserHandler struct {
	authService services.AuthService
	userService services.UserService
}

func NewUserHandler(authService services.AuthService, userService services.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var request validators.RegisterRequest
	if !bindJSON(c, &request) {
		return
	}

	response, err := h.authService.Register(c.Request.Context(), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, "User registered successfully", response)
}

func (h *UserHandler) Login(c *gin.Context) {
	var request validators.LoginRequest
	if !bindJSON(c, &request) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Login successful", response)
}

func (h *UserHandler) AdminLogin(c *gin.Context) {
	var request validators.LoginRequest
	if !bindJSON(c, &request) {
		return
	}

	response, err := h.authService.AdminLogin(c.Request.Context(), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Admin login successful", response)
}

func (h *UserHandler) RefreshToken(c *gin.Context) {
	var request validators.RefreshTokenRequest
	if !bindJSON(c, &request) {
		return
	}

	response, err := h.authService.RefreshToken(c.Request.Context(), request.RefreshToken)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Token refreshed", response)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved successfully", user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var request validators.UpdateProfileRequest
	if !bindJSON(c, &request) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile updated successfully", user)
}

func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "No image uploaded")
		return
	}

	user, err := h.userService.UpdateProfileImage(c.Request.Context(), userID, file)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile image updated successfully", user)
}

func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	userID, ok := paramID(c, "id", "Invalid user ID")
	if !ok {
		return
	}

	user, err := h.userService.GetPublicProfile(c.Request.Context(), userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "User retrieved successfully", user)
}
