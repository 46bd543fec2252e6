package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/votann/ask-search-be/service"
	"github.com/votann/ask-search-be/types"
	"github.com/votann/ask-search-be/utils"
)

type AuthHandler interface {
	HandleRegister(c *gin.Context)
	HandleLogin(c *gin.Context)
}

type authHandler struct {
	userService service.UserService
}

func NewAuthHandler(userService service.UserService) AuthHandler {
	return &authHandler{
		userService: userService,
	}
}

func (h *authHandler) HandleRegister(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}

	user, err := h.userService.Register(c, req.Username, req.Email, req.Password)
	if errors.Is(err, types.ErrUsernameTaken) || errors.Is(err, types.ErrEmailTaken) {
		c.JSON(http.StatusConflict, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Failed to create account",
		})
		return
	}

	c.JSON(http.StatusCreated, types.DataResponse{
		Status: "success",
		Data:   user,
	})
}

func (h *authHandler) HandleLogin(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}

	user, err := h.userService.Authenticate(c, req.Username, req.Password)
	if errors.Is(err, types.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	token, err := utils.GenerateUserToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data: types.LoginResponse{
			AccessToken: token,
		},
	})
}
