package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/developia/translation-office/internal/api/metrics"
	"github.com/developia/translation-office/internal/core/domain"
	"github.com/developia/translation-office/internal/core/ports"
)

// maxUploadBytes caps document uploads at 16 MiB.
const maxUploadBytes = 16 << 20

// ProjectHandler handles HTTP requests for the project workflow.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Create handles POST /v1/projects (multipart: target_language + file).
//
// @Summary      Create a translation project
// @Tags         projects
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        target_language  formData  string  true  "Target language code (e.g. de)"
// @Param        file             formData  file    true  "Original document"
// @Success      201              {object}  projectResponse
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	targetLanguage := c.FormValue("target_language")
	name, content, err := readUpload(c)
	if err != nil {
		return err
	}

	project, err := h.service.CreateProject(c.Request().Context(), ports.CreateProjectInput{
		TargetLanguage: targetLanguage,
		FileName:       name,
		Content:        content,
	})
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.WithLabelValues(project.TargetLanguage).Inc()
	if project.Status == domain.StatusAssigned {
		metrics.AssignmentsTotal.WithLabelValues("assigned").Inc()
	} else {
		metrics.AssignmentsTotal.WithLabelValues("no_translator").Inc()
	}

	return c.JSON(http.StatusCreated, toProjectResponse(project))
}

// List handles GET /v1/projects with optional filters. Non-admin callers are
// implicitly restricted to their own projects by the service.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        status           query     string  false  "Filter by status"
// @Param        target_language  query     string  false  "Filter by target language"
// @Param        translator_id    query     string  false  "Filter by translator"
// @Param        customer_id      query     string  false  "Filter by customer"
// @Param        has_feedback     query     bool    false  "Filter by feedback presence"
// @Success      200              {object}  listProjectsResponse
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	filter := ports.ProjectFilter{
		Status:         domain.ProjectStatus(c.QueryParam("status")),
		TargetLanguage: c.QueryParam("target_language"),
		TranslatorID:   c.QueryParam("translator_id"),
		CustomerID:     c.QueryParam("customer_id"),
	}
	if raw := c.QueryParam("has_feedback"); raw != "" {
		hasFeedback, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "has_feedback must be a boolean")
		}
		filter.HasFeedback = &hasFeedback
	}

	projects, err := h.service.GetAllProjects(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	resp := listProjectsResponse{Data: make([]projectResponse, 0, len(projects))}
	for _, p := range projects {
		resp.Data = append(resp.Data, toProjectResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /v1/projects/:id.
//
// @Summary      Get a project by id
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  projectResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.GetProjectByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// DownloadOriginal handles GET /v1/projects/:id/original.
//
// @Summary      Download the original document
// @Tags         projects
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id}/original [get]
func (h *ProjectHandler) DownloadOriginal(c echo.Context) error {
	file, err := h.service.GetOriginalFile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return sendFile(c, file)
}

// DownloadTranslated handles GET /v1/projects/:id/translation.
//
// @Summary      Download the translated document
// @Tags         projects
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id}/translation [get]
func (h *ProjectHandler) DownloadTranslated(c echo.Context) error {
	file, err := h.service.GetTranslatedFile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return sendFile(c, file)
}

// UploadTranslation handles POST /v1/projects/:id/translation (multipart).
//
// @Summary      Upload the translated document
// @Tags         projects
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Project id"
// @Param        file  formData  file    true  "Translated document"
// @Success      200   {object}  projectResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects/{id}/translation [post]
func (h *ProjectHandler) UploadTranslation(c echo.Context) error {
	name, content, err := readUpload(c)
	if err != nil {
		return err
	}

	project, err := h.service.UploadTranslatedFile(c.Request().Context(), c.Param("id"), name, content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// Approve handles POST /v1/projects/:id/approve.
//
// @Summary      Approve the completed translation
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  projectResponse
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/projects/{id}/approve [post]
func (h *ProjectHandler) Approve(c echo.Context) error {
	project, err := h.service.ApproveProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// Reject handles POST /v1/projects/:id/reject.
//
// @Summary      Reject the completed translation
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      rejectProjectRequest  true  "Rejection reason"
// @Success      200   {object}  projectResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects/{id}/reject [post]
func (h *ProjectHandler) Reject(c echo.Context) error {
	var req rejectProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	project, err := h.service.RejectProject(c.Request().Context(), c.Param("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// Close handles POST /v1/projects/:id/close.
//
// @Summary      Close a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  projectResponse
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/projects/{id}/close [post]
func (h *ProjectHandler) Close(c echo.Context) error {
	project, err := h.service.CloseProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// readUpload extracts the "file" part from a multipart request.
func readUpload(c echo.Context) (name string, content []byte, err error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	if fh.Size > maxUploadBytes {
		return "", nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	src, err := fh.Open()
	if err != nil {
		return "", nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	content, err = io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return "", nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	if len(content) > maxUploadBytes {
		return "", nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}
	return fh.Filename, content, nil
}

func sendFile(c echo.Context, file *ports.StoredFile) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.Blob(http.StatusOK, echo.MIMEOctetStream, file.Content)
}
