package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/goodnessw/election-api/internal/logger"
	"github.com/goodnessw/election-api/internal/response"
	"github.com/goodnessw/election-api/internal/services"
	"github.com/goodnessw/election-api/internal/storage/postgres"
	"github.com/goodnessw/election-api/internal/validation"
)

// VoteHandler serves ballot submission and vote administration
type VoteHandler struct {
	votingService *services.VotingService
	voteRepo      postgres.VoteRepository
	log           *log.Logger
}

// NewVoteHandler creates a vote handler
func NewVoteHandler(votingService *services.VotingService, voteRepo postgres.VoteRepository) *VoteHandler {
	return &VoteHandler{
		votingService: votingService,
		voteRepo:      voteRepo,
		log:           logger.Handler("vote_handler"),
	}
}

// SubmitVote handles POST /api/votes
func (h *VoteHandler) SubmitVote(c *gin.Context) {
	var req services.SubmitVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "first_name, last_name and contestant_id are required")
		return
	}

	newVote, err := h.votingService.SubmitVote(req)
	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrDuplicateVote):
			response.ConflictError(c, err.Error())
		case errors.Is(err, services.ErrVotingClosed):
			response.ErrorResponseWithMessage(c, http.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrContestantNotFound):
			response.NotFoundError(c, err.Error())
		default:
			if validation.IsValidationError(err) {
				response.BadRequestError(c, err.Error())
				return
			}
			h.log.Error("vote submission failed", "error", err)
			response.InternalServerError(c, "failed to record vote")
		}
		return
	}

	response.SuccessResponse(c, http.StatusCreated, "vote recorded", gin.H{
		"vote_id":     newVote.ID,
		"election_id": newVote.ElectionSlug,
		"voter_name":  newVote.VoterName,
	})
}

// GetVoteStatus handles GET /api/votes/status?first_name=..&last_name=..
func (h *VoteHandler) GetVoteStatus(c *gin.Context) {
	firstName := c.Query("first_name")
	lastName := c.Query("last_name")

	voted, electionSlug, err := h.votingService.HasVoted(firstName, lastName)
	if err != nil {
		if errors.Is(err, services.ErrVotingClosed) {
			response.ErrorResponseWithMessage(c, http.StatusForbidden, err.Error())
			return
		}
		if validation.IsValidationError(err) {
			response.BadRequestError(c, err.Error())
			return
		}
		h.log.Error("vote status check failed", "error", err)
		response.InternalServerError(c, "failed to check voting status")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", gin.H{
		"has_voted":   voted,
		"election_id": electionSlug,
	})
}

// ListVotes handles GET /api/admin/votes with pagination
func (h *VoteHandler) ListVotes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.voteRepo.GetAllPaginated(postgres.PaginationParams{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.log.Error("failed to list votes", "error", err)
		response.InternalServerError(c, "failed to list votes")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteVote handles DELETE /api/admin/votes/:id
func (h *VoteHandler) DeleteVote(c *gin.Context) {
	id := c.Param("id")

	if err := h.votingService.DeleteVote(id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "vote not found")
			return
		}
		h.log.Error("failed to delete vote", "vote_id", id, "error", err)
		response.InternalServerError(c, "failed to delete vote")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "vote deleted", nil)
}
