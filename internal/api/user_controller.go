package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/doctrack/internal/service"
	"github.com/opencampus/doctrack/internal/utils"
)

// UserController handles account administration.
type UserController struct {
	users service.UserService
}

// NewUserController creates a user controller.
func NewUserController(users service.UserService) *UserController {
	return &UserController{users: users}
}

// Create handles POST /users.
func (uc *UserController) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	user, err := uc.users.Create(&req)
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, user)
}

// List handles GET /users.
func (uc *UserController) List(c *gin.Context) {
	users, err := uc.users.List()
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, users)
}

// Get handles GET /users/:id.
func (uc *UserController) Get(c *gin.Context) {
	id := c.Param("id")
	if err := utils.ValidateID(id); err != nil {
		Error(c, http.StatusBadRequest, "invalid user ID", err.Error())
		return
	}

	user, err := uc.users.Get(id)
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, user)
}

// Update handles PUT /users/:id.
func (uc *UserController) Update(c *gin.Context) {
	id := c.Param("id")
	if err := utils.ValidateID(id); err != nil {
		Error(c, http.StatusBadRequest, "invalid user ID", err.Error())
		return
	}

	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	user, err := uc.users.Update(id, &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, user)
}

// Delete handles DELETE /users/:id. Accounts are deactivated, not
// removed, so their workflow footprint survives.
func (uc *UserController) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := utils.ValidateID(id); err != nil {
		Error(c, http.StatusBadRequest, "invalid user ID", err.Error())
		return
	}

	if err := uc.users.Deactivate(id); err != nil {
		HandleError(c, err)
		return
	}

	Success(c, gin.H{"id": id, "is_active": false})
}
