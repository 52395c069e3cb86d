package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// AdminHandlers handles the admin-facing doctor review API
type AdminHandlers struct {
	reviewSvc domain.ReviewService
	userRepo  domain.UserRepository
	log       *logrus.Logger
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(reviewSvc domain.ReviewService, userRepo domain.UserRepository, log *logrus.Logger) *AdminHandlers {
	return &AdminHandlers{reviewSvc: reviewSvc, userRepo: userRepo, log: log}
}

// ReviewRequest represents a doctor application review action
type ReviewRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

// ReviewDoctor handles approving or rejecting a doctor application
func (h *AdminHandlers) ReviewDoctor(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doctor ID"})
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user *domain.User
	if req.Action == "approve" {
		user, err = h.reviewSvc.Approve(c.Request.Context(), uint(doctorID))
	} else {
		user, err = h.reviewSvc.Reject(c.Request.Context(), uint(doctorID))
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		case errors.Is(err, domain.ErrAlreadyReviewed):
			c.JSON(http.StatusConflict, gin.H{"error": "Application already reviewed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Review failed"})
		}
		return
	}

	reviewer, _ := c.Get("user_id")
	h.log.WithFields(logrus.Fields{
		"doctor_id":   user.ID,
		"action":      req.Action,
		"reviewed_by": reviewer,
	}).Info("doctor review applied")

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"doctor_id": user.ID,
			"role":      user.ClaimRole(),
			"status":    user.ClaimStatus(),
		},
	})
}

// ListDoctors handles listing doctor accounts, optionally filtered by status
func (h *AdminHandlers) ListDoctors(c *gin.Context) {
	status := c.Query("status")
	doctors, err := h.userRepo.ListDoctorsByStatus(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list doctors"})
		return
	}

	out := make([]gin.H, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, gin.H{
			"id":             d.ID,
			"full_name":      d.FullName,
			"phone":          d.Phone,
			"email":          d.Email,
			"license_number": d.LicenseNumber,
			"specialty":      d.Specialty,
			"experience":     d.Experience,
			"status":         d.ClaimStatus(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}
