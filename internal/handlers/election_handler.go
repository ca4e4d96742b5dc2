package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/goodnessw/election-api/internal/domain/election"
	"github.com/goodnessw/election-api/internal/logger"
	"github.com/goodnessw/election-api/internal/response"
	"github.com/goodnessw/election-api/internal/services"
	"github.com/goodnessw/election-api/internal/storage/postgres"
	"github.com/goodnessw/election-api/internal/validation"
)

// ElectionHandler serves election lifecycle endpoints
type ElectionHandler struct {
	electionService *services.ElectionService
	log             *log.Logger
}

// NewElectionHandler creates an election handler
func NewElectionHandler(electionService *services.ElectionService) *ElectionHandler {
	return &ElectionHandler{
		electionService: electionService,
		log:             logger.Handler("election_handler"),
	}
}

// GetActive handles GET /api/elections/active. This is a public
// endpoint; the voting page uses it to decide whether to show ballots.
func (h *ElectionHandler) GetActive(c *gin.Context) {
	active, err := h.electionService.GetActive()
	if err != nil {
		if errors.Is(err, postgres.ErrNoActiveElection) {
			response.SuccessResponse(c, http.StatusOK, "", gin.H{"election": nil})
			return
		}
		h.log.Error("failed to resolve active election", "error", err)
		response.InternalServerError(c, "failed to resolve active election")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", gin.H{"election": active})
}

// List handles GET /api/admin/elections
func (h *ElectionHandler) List(c *gin.Context) {
	elections, err := h.electionService.GetAll()
	if err != nil {
		h.log.Error("failed to list elections", "error", err)
		response.InternalServerError(c, "failed to list elections")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", elections)
}

// Create handles POST /api/admin/elections
func (h *ElectionHandler) Create(c *gin.Context) {
	var req services.CreateElectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "name and election_id are required")
		return
	}

	e, err := h.electionService.Create(req)
	if err != nil {
		switch {
		case validation.IsValidationError(err):
			response.BadRequestError(c, err.Error())
		case errors.Is(err, postgres.ErrDuplicateSlug):
			response.ConflictError(c, err.Error())
		default:
			h.log.Error("failed to create election", "error", err)
			response.InternalServerError(c, "failed to create election")
		}
		return
	}

	response.SuccessResponse(c, http.StatusCreated, "election created", e)
}

// Start handles POST /api/admin/elections/:id/start
func (h *ElectionHandler) Start(c *gin.Context) {
	h.transition(c, h.electionService.Start, "election started")
}

// End handles POST /api/admin/elections/:id/end
func (h *ElectionHandler) End(c *gin.Context) {
	h.transition(c, h.electionService.End, "election ended")
}

// Reset handles POST /api/admin/elections/:id/reset
func (h *ElectionHandler) Reset(c *gin.Context) {
	h.transition(c, h.electionService.Reset, "election reset")
}

// transition runs one lifecycle operation and maps its outcome
func (h *ElectionHandler) transition(c *gin.Context, op func(string) (*election.Election, error), message string) {
	id := c.Param("id")

	e, err := op(id)
	if err != nil {
		switch {
		case validation.IsValidationError(err):
			response.BadRequestError(c, err.Error())
		case errors.Is(err, postgres.ErrNotFound):
			response.NotFoundError(c, "election not found")
		case errors.Is(err, election.ErrInvalidTransition):
			response.ConflictError(c, err.Error())
		default:
			h.log.Error("election transition failed", "election_id", id, "error", err)
			response.InternalServerError(c, "election transition failed")
		}
		return
	}

	response.SuccessResponse(c, http.StatusOK, message, e)
}

// Delete handles DELETE /api/admin/elections/:id
func (h *ElectionHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.electionService.Delete(id); err != nil {
		switch {
		case validation.IsValidationError(err):
			response.BadRequestError(c, err.Error())
		case errors.Is(err, postgres.ErrNotFound):
			response.NotFoundError(c, "election not found")
		default:
			h.log.Error("failed to delete election", "election_id", id, "error", err)
			response.InternalServerError(c, "failed to delete election")
		}
		return
	}

	response.SuccessResponse(c, http.StatusOK, "election deleted", nil)
}
