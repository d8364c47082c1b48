package handlers

import (
	"net/http"

	"turfbook/services/notification"
	"turfbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler fronts the external identity provider for the few flows the
// server participates in. Sign-in itself happens client-side against
// Firebase; the server only needs a stable UID and email.
type AuthHandler struct {
	Sender notification.EmailSender
}

func NewAuthHandler(sender notification.EmailSender) *AuthHandler {
	return &AuthHandler{Sender: sender}
}

// CurrentUser returns the verified identity of the caller.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"userId": c.GetString("userID"),
		"email":  c.GetString("userEmail"),
	})
}

// PasswordReset issues a reset link through the identity provider and mails
// it. The response never reveals whether the email exists.
func (h *AuthHandler) PasswordReset(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	link, err := utils.AuthClient.PasswordResetLink(ctx, input.Email)
	if err != nil {
		// Unknown emails land here too; log and answer generically.
		getLogger(c).Warn("password reset link not issued", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "if the account exists, a reset email was sent"})
		return
	}

	if h.Sender != nil {
		params := map[string]string{
			"reset_link": link,
			"user_name":  input.Email,
		}
		if err := h.Sender.SendTemplate(ctx, input.Email, params); err != nil {
			getLogger(c).Warn("password reset email failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "if the account exists, a reset email was sent"})
}
