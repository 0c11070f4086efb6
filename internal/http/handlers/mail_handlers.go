package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RPleshkov/SessionVault/domain"
)

// MailHandlers handles email confirmation HTTP requests
type MailHandlers struct {
	mailSvc domain.MailService
}

// NewMailHandlers creates new mail handlers
func NewMailHandlers(mailSvc domain.MailService) *MailHandlers {
	return &MailHandlers{mailSvc: mailSvc}
}

// RequestCodeRequest represents a confirmation code request
type RequestCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ConfirmRequest represents an email confirmation request
type ConfirmRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// RequestConfirmationCode issues and mails a fresh one-time code. The
// response is identical whether or not the account exists.
func (h *MailHandlers) RequestConfirmationCode(c *gin.Context) {
	var req RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.mailSvc.RequestConfirmationCode(c.Request.Context(), req.Email); err != nil {
		if err == domain.ErrEmailAlreadyConfirmed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already confirmed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send confirmation code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "confirmation code has been sent"}})
}

// Confirm verifies the one-time code and marks the account's email verified
func (h *MailHandlers) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.mailSvc.ConfirmEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		switch err {
		case domain.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case domain.ErrEmailAlreadyConfirmed:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already confirmed"})
		case domain.ErrConfirmationCodeExpired:
			c.JSON(http.StatusBadRequest, gin.H{"error": "The confirmation code has expired"})
		case domain.ErrConfirmationCodeInvalid:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid confirmation code or email"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Email confirmation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Email successfully confirmed"}})
}
