package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/developia/translation-office/internal/core/domain"
	"github.com/developia/translation-office/internal/core/ports"
)

// FeedbackHandler handles HTTP requests for rejection feedback.
type FeedbackHandler struct {
	service ports.FeedbackService
}

func NewFeedbackHandler(service ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Get handles GET /v1/projects/:id/feedback.
//
// @Summary      Get the project's current feedback
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  feedbackResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id}/feedback [get]
func (h *FeedbackHandler) Get(c echo.Context) error {
	fb, err := h.service.GetFeedbackByProjectID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFeedbackResponse(fb))
}

// Save handles PUT /v1/projects/:id/feedback.
//
// @Summary      Save feedback on an own project
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Project id"
// @Param        body  body      saveFeedbackRequest  true  "Feedback"
// @Success      200   {object}  feedbackResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/projects/{id}/feedback [put]
func (h *FeedbackHandler) Save(c echo.Context) error {
	var req saveFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	fb, err := domain.NewFeedback(c.Param("id"), req.Reason)
	if err != nil {
		return err
	}
	if err := h.service.SaveFeedback(c.Request().Context(), fb); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFeedbackResponse(fb))
}

// Delete handles DELETE /v1/projects/:id/feedback.
//
// @Summary      Delete feedback on an own project
// @Tags         feedback
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /v1/projects/{id}/feedback [delete]
func (h *FeedbackHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteProjectFeedbackByProjectID(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Bulk handles POST /internal/feedback/query. Privileged callers only; the
// service rejects any authenticated role outright.
//
// @Summary      Bulk-read feedback across projects
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkFeedbackRequest  true  "Project ids"
// @Success      200   {object}  listFeedbackResponse
// @Failure      403   {object}  errorResponse
// @Router       /internal/feedback/query [post]
func (h *FeedbackHandler) Bulk(c echo.Context) error {
	var req bulkFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	feedbacks, err := h.service.GetAllFeedbacksByProjectIDs(c.Request().Context(), req.ProjectIDs)
	if err != nil {
		return err
	}

	resp := listFeedbackResponse{Data: make([]feedbackResponse, 0, len(feedbacks))}
	for _, fb := range feedbacks {
		resp.Data = append(resp.Data, toFeedbackResponse(fb))
	}
	return c.JSON(http.StatusOK, resp)
}
