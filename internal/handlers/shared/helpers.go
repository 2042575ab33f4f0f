package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rentit/internal/middleware"
	"rentit/internal/utils"
)

// currentUser writes a 401 and returns false when no user is authenticated.
func currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok || userID.IsZero() {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}
	return userID, true
}

// paramID parses the named path parameter, writing a 400 with message when it
// is not an ObjectID.
func paramID(c *gin.Context, name, message string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, message)
		return primitive.NilObjectID, false
	}
	return id, true
}

func bindJSON(c *gin.Context, request interface{}) bool {
	if err := c.ShouldBindJSON(request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return false
	}
	return true
}
