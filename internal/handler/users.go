package handler

import (
	"net/http"
	"strconv"

	"barveredales/internal/apierror"
	"barveredales/internal/dto"
	"barveredales/internal/service"

	"github.com/gin-gonic/gin"
)

type UsersHandler struct{ auth *service.AuthService }

func NewUsersHandler(auth *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: auth}
}

func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (h *UsersHandler) Get(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	user, err := h.auth.GetUserByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, apierror.New("Usuario no encontrado"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserResponse(user)})
}

func (h *UsersHandler) Update(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.auth.UpdateUser(c.Request.Context(), id, req, c.ClientIP())
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, apierror.New("Usuario no encontrado"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserResponse(user)})
}

func (h *UsersHandler) Delete(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	deleted, err := h.auth.DeleteUser(c.Request.Context(), id, c.ClientIP())
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, apierror.New("Usuario no encontrado"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado"})
}

func (h *UsersHandler) userID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return 0, false
	}
	return id, true
}
