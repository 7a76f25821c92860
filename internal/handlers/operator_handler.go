package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

type OperatorHandler struct {
	config       *config.Config
	listBookings *ucBooking.ListBookingsByDate
	clock        timezone.Clock
}

func NewOperatorHandler(
	cfg *config.Config,
	listBookings *ucBooking.ListBookingsByDate,
	clock timezone.Clock,
) *OperatorHandler {
	return &OperatorHandler{
		config:       cfg,
		listBookings: listBookings,
		clock:        clock,
	}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *OperatorHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if h.config.OperatorPasswordHash == "" ||
		email != strings.ToLower(strings.TrimSpace(h.config.OperatorEmail)) {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.config.OperatorPasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	token, err := h.generateToken(email)
	if err != nil {
		log.Error().Err(err).Msg("failed to sign operator token")
		httperr.Internal(c, "failed_to_generate_token", "Could not sign in.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"operator": gin.H{"email": email},
		"token":    token,
	})
}

func (h *OperatorHandler) ListBookings(c *gin.Context) {
	loc := h.clock.Now().Location()

	date := timezone.Today(h.clock)
	if dateStr := c.Query("date"); dateStr != "" {
		d, err := timezone.ParseDate(dateStr, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		date = d
	}

	out, err := h.listBookings.Execute(c.Request.Context(), date)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, out)
}

// --------- JWT ---------

func (h *OperatorHandler) generateToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  email,
		"role": "operator",
		"exp":  now.Add(24 * time.Hour).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
