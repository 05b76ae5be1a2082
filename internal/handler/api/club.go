package api

import (
	"errors"
	"net/http"

	reqdto "studiohub/internal/handler/dto/request"
	resdto "studiohub/internal/handler/dto/response"
	"studiohub/internal/handler/httperr"
	"studiohub/internal/handler/middleware"
	"studiohub/internal/usecase/commands"
	"studiohub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClubHandler struct {
	clubCommands commands.ClubCommands
	clubQueries  queries.ClubQueries
}

func NewClubHandler(clubCommands commands.ClubCommands, clubQueries queries.ClubQueries) *ClubHandler {
	return &ClubHandler{
		clubCommands: clubCommands,
		clubQueries:  clubQueries,
	}
}

// @Summary Create club
// @Description Provision a club with its owner membership and role grant
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateClubRequest true "Club request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /clubs [post]
func (h *ClubHandler) CreateClub(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.clubCommands.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid club data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Get club
// @Tags clubs
// @Produce json
// @Param id path string true "Club ID"
// @Success 200 {object} resdto.ClubResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /clubs/{id} [get]
func (h *ClubHandler) GetClub(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid club ID format", nil)
		return
	}

	view, err := h.clubQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrClubNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Club not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromClubView(view))
}

// @Summary List own clubs
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ClubResponse
// @Router /clubs [get]
func (h *ClubHandler) ListOwnClubs(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	views, err := h.clubQueries.ListByMember(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromClubViews(views))
}
