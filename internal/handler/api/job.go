package api

import (
	"context"
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

type JobHandler struct {
	jobCommands commands.JobCommands
	jobQueries  queries.JobQueries
}

func NewJobHandler(jobCommands commands.JobCommands, jobQueries queries.JobQueries) *JobHandler {
	return &JobHandler{
		jobCommands: jobCommands,
		jobQueries:  jobQueries,
	}
}

// @Summary Create service request
// @Description Send a service request to a provider who accepts jobs
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateJobRequest true "Job request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.jobCommands.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProviderNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Provider not found", nil)
		case errors.Is(err, commands.ErrProviderUnavailable):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Provider does not accept service requests", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid job data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Get job
// @Description Visible to the client and the provider
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} resdto.JobResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid job ID format", nil)
		return
	}

	view, err := h.jobQueries.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrJobNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Job not found", nil)
		case errors.Is(err, queries.ErrJobAccess):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Not a party to this job", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromJobView(view))
}

// @Summary List jobs sent
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.JobResponse
// @Router /jobs/sent [get]
func (h *JobHandler) ListSentJobs(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	views, err := h.jobQueries.ListByClient(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromJobViews(views))
}

// @Summary List jobs received
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.JobResponse
// @Router /jobs/received [get]
func (h *JobHandler) ListReceivedJobs(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	views, err := h.jobQueries.ListByProvider(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromJobViews(views))
}

// @Summary Accept job
// @Description Provider accepts with an optional response message
// @Tags jobs
// @Accept json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body reqdto.RespondJobRequest false "Response message"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /jobs/{id}/accept [post]
func (h *JobHandler) AcceptJob(c *gin.Context) {
	h.respond(c, h.jobCommands.Accept)
}

// @Summary Reject job
// @Description Provider declines with an optional response message
// @Tags jobs
// @Accept json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body reqdto.RespondJobRequest false "Response message"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /jobs/{id}/reject [post]
func (h *JobHandler) RejectJob(c *gin.Context) {
	h.respond(c, h.jobCommands.Reject)
}

// @Summary Start job
// @Tags jobs
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /jobs/{id}/start [post]
func (h *JobHandler) StartJob(c *gin.Context) {
	h.transition(c, h.jobCommands.Start)
}

// @Summary Complete job
// @Tags jobs
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /jobs/{id}/complete [post]
func (h *JobHandler) CompleteJob(c *gin.Context) {
	h.transition(c, h.jobCommands.Complete)
}

// @Summary Cancel job
// @Tags jobs
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /jobs/{id}/cancel [post]
func (h *JobHandler) CancelJob(c *gin.Context) {
	h.transition(c, h.jobCommands.Cancel)
}

// respond handles the accept/reject shape where a response message rides
// along in the body.
func (h *JobHandler) respond(c *gin.Context, op func(ctx context.Context, actorID, id uuid.UUID, response string) error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid job ID format", nil)
		return
	}

	var req reqdto.RespondJobRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}

	if err := op(c.Request.Context(), userID, id, req.Response); err != nil {
		h.respondJobErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *JobHandler) transition(c *gin.Context, op func(ctx context.Context, actorID, id uuid.UUID) error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid job ID format", nil)
		return
	}

	if err := op(c.Request.Context(), userID, id); err != nil {
		h.respondJobErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *JobHandler) respondJobErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrJobNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Job not found", nil)
	case errors.Is(err, commands.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not permitted for this party", nil)
	case errors.Is(err, commands.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Job is not in a state that allows this action", nil)
	case errors.Is(err, commands.ErrTransient):
		httperr.AbortWithError(c, http.StatusConflict, err, "Job changed concurrently, retry", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
