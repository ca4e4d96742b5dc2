package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/goodnessw/election-api/internal/logger"
	"github.com/goodnessw/election-api/internal/middleware/auth"
	"github.com/goodnessw/election-api/internal/response"
	"github.com/goodnessw/election-api/internal/storage/postgres"
)

// AdminHandler serves management console authentication
type AdminHandler struct {
	adminRepo postgres.AdminRepository
	tokens    *auth.TokenManager
	log       *log.Logger
}

// NewAdminHandler creates an admin handler
func NewAdminHandler(adminRepo postgres.AdminRepository, tokens *auth.TokenManager) *AdminHandler {
	return &AdminHandler{
		adminRepo: adminRepo,
		tokens:    tokens,
		log:       logger.Handler("admin_handler"),
	}
}

// LoginRequest is the console login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/admin/login. Unknown usernames and wrong
// passwords return the same message so the endpoint leaks nothing
// about which credential failed.
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "username and password are required")
		return
	}

	account, err := h.adminRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			response.UnauthorizedError(c, "invalid username or password")
			return
		}
		h.log.Error("login lookup failed", "username", req.Username, "error", err)
		response.InternalServerError(c, "login failed")
		return
	}

	if !account.CheckPassword(req.Password) {
		h.log.Warn("rejected login attempt", "username", req.Username, "remote_addr", c.ClientIP())
		response.UnauthorizedError(c, "invalid username or password")
		return
	}

	token, expiresAt, err := h.tokens.Issue(account.Username)
	if err != nil {
		h.log.Error("failed to issue session token", "username", req.Username, "error", err)
		response.InternalServerError(c, "login failed")
		return
	}

	h.log.Info("admin logged in", "username", account.Username)
	response.SuccessResponse(c, http.StatusOK, "login successful", gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"username":   account.Username,
	})
}

// Session handles GET /api/admin/session. Reaching it at all means the
// auth middleware accepted the token, so it just echoes the identity.
func (h *AdminHandler) Session(c *gin.Context) {
	username := c.GetString(auth.ContextKeyAdmin)
	response.SuccessResponse(c, http.StatusOK, "", gin.H{"username": username})
}
