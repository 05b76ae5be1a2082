package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "studiohub/internal/handler/dto/request"
	resdto "studiohub/internal/handler/dto/response"
	"studiohub/internal/handler/httperr"
	"studiohub/internal/handler/middleware"
	"studiohub/internal/usecase/commands"
	"studiohub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StudioHandler struct {
	studioCommands commands.StudioCommands
	studioQueries  queries.StudioQueries
}

func NewStudioHandler(studioCommands commands.StudioCommands, studioQueries queries.StudioQueries) *StudioHandler {
	return &StudioHandler{
		studioCommands: studioCommands,
		studioQueries:  studioQueries,
	}
}

// @Summary Create studio
// @Description Register a new studio owned by the authenticated party
// @Tags studios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateStudioRequest true "Studio request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /studios [post]
func (h *StudioHandler) CreateStudio(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.CreateStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.studioCommands.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrMissingStudioPermission):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Studio creation not permitted for this account", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid studio data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Get studio
// @Tags studios
// @Produce json
// @Param id path string true "Studio ID"
// @Success 200 {object} resdto.StudioResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /studios/{id} [get]
func (h *StudioHandler) GetStudio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid studio ID format", nil)
		return
	}

	view, err := h.studioQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrStudioNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Studio not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromStudioView(view))
}

// @Summary List active studios
// @Tags studios
// @Produce json
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.StudioResponse
// @Router /studios [get]
func (h *StudioHandler) ListStudios(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	views, err := h.studioQueries.ListActive(c.Request.Context(), limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromStudioViews(views))
}

// @Summary List own studios
// @Tags studios
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.StudioResponse
// @Failure 401 {object} map[string]string
// @Router /studios/mine [get]
func (h *StudioHandler) ListOwnStudios(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	views, err := h.studioQueries.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromStudioViews(views))
}

// @Summary Update studio
// @Description Partial update; omitted fields keep their current values
// @Tags studios
// @Accept json
// @Security BearerAuth
// @Param id path string true "Studio ID"
// @Param request body reqdto.UpdateStudioRequest true "Fields to change"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /studios/{id} [patch]
func (h *StudioHandler) UpdateStudio(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid studio ID format", nil)
		return
	}

	var req reqdto.UpdateStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.studioCommands.Update(c.Request.Context(), userID, id, req.ToInput()); err != nil {
		h.respondStudioErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Deactivate studio
// @Description Soft delete; existing reservations are unaffected
// @Tags studios
// @Security BearerAuth
// @Param id path string true "Studio ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /studios/{id} [delete]
func (h *StudioHandler) DeactivateStudio(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid studio ID format", nil)
		return
	}

	if err := h.studioCommands.Deactivate(c.Request.Context(), userID, id); err != nil {
		h.respondStudioErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *StudioHandler) respondStudioErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrStudioNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Studio not found", nil)
	case errors.Is(err, commands.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Only the owner may modify this studio", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid studio data", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
