package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/goodnessw/election-api/internal/domain/contestant"
	"github.com/goodnessw/election-api/internal/logger"
	"github.com/goodnessw/election-api/internal/realtime"
	"github.com/goodnessw/election-api/internal/response"
	"github.com/goodnessw/election-api/internal/storage/objectstore"
	"github.com/goodnessw/election-api/internal/storage/postgres"
	"github.com/goodnessw/election-api/internal/validation"
)

// maxPhotoSize caps uploaded contestant photos at 5 MiB
const maxPhotoSize = 5 << 20

// ContestantHandler serves contestant profile endpoints
type ContestantHandler struct {
	contestantRepo postgres.ContestantRepository
	photoStore     *objectstore.PhotoStore
	hub            *realtime.Hub
	validator      validation.ContestantValidation
	log            *log.Logger
}

// NewContestantHandler creates a contestant handler. The photo store may
// be nil when the object store is not configured; photo uploads then
// return an error response.
func NewContestantHandler(contestantRepo postgres.ContestantRepository, photoStore *objectstore.PhotoStore, hub *realtime.Hub) *ContestantHandler {
	return &ContestantHandler{
		contestantRepo: contestantRepo,
		photoStore:     photoStore,
		hub:            hub,
		validator:      validation.ContestantValidation{},
		log:            logger.Handler("contestant_handler"),
	}
}

// ContestantRequest is the create/update payload for a contestant profile
type ContestantRequest struct {
	Name         string   `json:"name" binding:"required"`
	Tagline      string   `json:"tagline"`
	Bio          string   `json:"bio"`
	Achievements []string `json:"achievements"`
	Vision       string   `json:"vision"`
	VideoURL     string   `json:"video_url"`
}

// List handles GET /api/contestants, ranked by vote count
func (h *ContestantHandler) List(c *gin.Context) {
	contestants, err := h.contestantRepo.GetAll()
	if err != nil {
		h.log.Error("failed to list contestants", "error", err)
		response.InternalServerError(c, "failed to list contestants")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", contestants)
}

// Get handles GET /api/contestants/:id
func (h *ContestantHandler) Get(c *gin.Context) {
	id := c.Param("id")

	found, err := h.contestantRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "contestant not found")
			return
		}
		h.log.Error("failed to retrieve contestant", "contestant_id", id, "error", err)
		response.InternalServerError(c, "failed to retrieve contestant")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", found)
}

// Create handles POST /api/admin/contestants
func (h *ContestantHandler) Create(c *gin.Context) {
	var req ContestantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "name is required")
		return
	}

	if err := h.validateRequest(req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	newContestant := contestant.NewContestant(req.Name, req.Tagline, req.Bio, req.Vision, req.Achievements)
	newContestant.VideoURL = req.VideoURL

	if err := h.contestantRepo.Create(newContestant); err != nil {
		h.log.Error("failed to create contestant", "error", err)
		response.InternalServerError(c, "failed to create contestant")
		return
	}

	h.notify()
	response.SuccessResponse(c, http.StatusCreated, "contestant created", newContestant)
}

// Update handles PUT /api/admin/contestants/:id. The vote counter is
// never touched by profile updates.
func (h *ContestantHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req ContestantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "name is required")
		return
	}

	if err := h.validateRequest(req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	existing, err := h.contestantRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "contestant not found")
			return
		}
		h.log.Error("failed to retrieve contestant", "contestant_id", id, "error", err)
		response.InternalServerError(c, "failed to retrieve contestant")
		return
	}

	existing.Name = req.Name
	h.applyRequest(existing, req)

	if err := h.contestantRepo.Update(existing); err != nil {
		h.log.Error("failed to update contestant", "contestant_id", id, "error", err)
		response.InternalServerError(c, "failed to update contestant")
		return
	}

	h.notify()
	response.SuccessResponse(c, http.StatusOK, "contestant updated", existing)
}

// UploadPhoto handles POST /api/admin/contestants/:id/photo as a
// multipart upload. The stored public URL replaces any previous photo.
func (h *ContestantHandler) UploadPhoto(c *gin.Context) {
	id := c.Param("id")

	if h.photoStore == nil {
		response.ErrorResponseWithMessage(c, http.StatusServiceUnavailable, "photo storage is not configured")
		return
	}

	existing, err := h.contestantRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "contestant not found")
			return
		}
		h.log.Error("failed to retrieve contestant", "contestant_id", id, "error", err)
		response.InternalServerError(c, "failed to retrieve contestant")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.BadRequestError(c, "photo file is required")
		return
	}
	if fileHeader.Size > maxPhotoSize {
		response.BadRequestError(c, "photo must be smaller than 5 MiB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error("failed to open uploaded photo", "contestant_id", id, "error", err)
		response.InternalServerError(c, "failed to read uploaded photo")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.photoStore.UploadPhoto(c.Request.Context(), id, file, fileHeader.Size, contentType)
	if err != nil {
		h.log.Error("photo upload failed", "contestant_id", id, "error", err)
		response.BadRequestError(c, err.Error())
		return
	}

	previousURL := existing.PhotoURL
	if err := h.contestantRepo.UpdatePhotoURL(id, url); err != nil {
		h.log.Error("failed to store photo URL", "contestant_id", id, "error", err)
		response.InternalServerError(c, "failed to store photo URL")
		return
	}

	if previousURL != "" {
		if err := h.photoStore.RemovePhoto(c.Request.Context(), previousURL); err != nil {
			h.log.Warn("failed to remove previous photo", "contestant_id", id, "error", err)
		}
	}

	h.notify()
	response.SuccessResponse(c, http.StatusOK, "photo uploaded", gin.H{"photo_url": url})
}

// Delete handles DELETE /api/admin/contestants/:id. Votes cascade at
// the database; the stored photo is removed best-effort.
func (h *ContestantHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.contestantRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.NotFoundError(c, "contestant not found")
			return
		}
		h.log.Error("failed to retrieve contestant", "contestant_id", id, "error", err)
		response.InternalServerError(c, "failed to retrieve contestant")
		return
	}

	if err := h.contestantRepo.Delete(id); err != nil {
		h.log.Error("failed to delete contestant", "contestant_id", id, "error", err)
		response.InternalServerError(c, "failed to delete contestant")
		return
	}

	if h.photoStore != nil && existing.PhotoURL != "" {
		if err := h.photoStore.RemovePhoto(c.Request.Context(), existing.PhotoURL); err != nil {
			h.log.Warn("failed to remove contestant photo", "contestant_id", id, "error", err)
		}
	}

	h.notify()
	response.SuccessResponse(c, http.StatusOK, "contestant deleted", nil)
}

func (h *ContestantHandler) validateRequest(req ContestantRequest) error {
	if err := h.validator.ValidateContestantName(req.Name); err != nil {
		return err
	}
	return h.validator.ValidateContestantBio(req.Bio)
}

func (h *ContestantHandler) applyRequest(target *contestant.Contestant, req ContestantRequest) {
	target.Name = req.Name
	target.Tagline = req.Tagline
	target.Bio = req.Bio
	target.Achievements = pq.StringArray(req.Achievements)
	target.Vision = req.Vision
	target.VideoURL = req.VideoURL
}

func (h *ContestantHandler) notify() {
	if h.hub != nil {
		h.hub.NotifyChange(realtime.CollectionContestants)
	}
}
