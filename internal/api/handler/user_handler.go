package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/developia/translation-office/internal/core/ports"
)

// UserHandler handles self-service account requests.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Profile handles GET /v1/me.
//
// @Summary      Get the calling user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/me [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := h.service.GetProfile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ReplaceLanguages handles PUT /v1/me/languages. Translator only; the new set
// replaces the old one wholesale.
//
// @Summary      Replace the calling translator's language set
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      replaceLanguagesRequest  true  "New language set"
// @Success      200   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/me/languages [put]
func (h *UserHandler) ReplaceLanguages(c echo.Context) error {
	var req replaceLanguagesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.ReplaceLanguages(c.Request().Context(), req.Languages)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
