package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type BookingHandler struct {
	openForm        *ucBooking.OpenForm
	getForm         *ucBooking.GetForm
	selectSlots     *ucBooking.SelectSlots
	submitBooking   *ucBooking.SubmitBooking
	fallbackContact string
}

func NewBookingHandler(
	openForm *ucBooking.OpenForm,
	getForm *ucBooking.GetForm,
	selectSlots *ucBooking.SelectSlots,
	submitBooking *ucBooking.SubmitBooking,
	fallbackContact string,
) *BookingHandler {
	return &BookingHandler{
		openForm:        openForm,
		getForm:         getForm,
		selectSlots:     selectSlots,
		submitBooking:   submitBooking,
		fallbackContact: fallbackContact,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type SelectionRequest struct {
	Service string `json:"service"`
	Date    string `json:"date"` // YYYY-MM-DD
}

type FormResponse struct {
	Form      *domain.Form `json:"form"`
	Prompt    string       `json:"prompt,omitempty"`
	Notice    string       `json:"notice,omitempty"`
	Available int          `json:"available"`
}

type SubmitResponse struct {
	Form    *domain.Form `json:"form"`
	Message string       `json:"message"`
	Warning string       `json:"warning,omitempty"`
}

////////////////////////////////////////////////////////
// FORMS
////////////////////////////////////////////////////////

func (h *BookingHandler) Open(c *gin.Context) {
	form, err := h.openForm.Execute(c.Request.Context())
	if err != nil {
		writeBookingError(c, err, h.fallbackContact)
		return
	}

	httpresp.Created(c, FormResponse{
		Form:   form,
		Prompt: ucBooking.PromptSelectFirst,
	})
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}

	form, err := h.getForm.Execute(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, err, h.fallbackContact)
		return
	}

	httpresp.OK(c, FormResponse{
		Form:      form,
		Available: form.AvailableCount(),
	})
}

////////////////////////////////////////////////////////
// SELECTION (serviço + data → horários)
////////////////////////////////////////////////////////

func (h *BookingHandler) Select(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}

	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	res, err := h.selectSlots.Execute(c.Request.Context(), ucBooking.SelectSlotsInput{
		FormID:  id,
		Service: req.Service,
		Date:    req.Date,
	})
	if err != nil {
		writeBookingError(c, err, h.fallbackContact)
		return
	}

	httpresp.OK(c, FormResponse{
		Form:      res.Form,
		Prompt:    res.Prompt,
		Notice:    res.Notice,
		Available: res.Available,
	})
}

////////////////////////////////////////////////////////
// SUBMIT (multipart)
////////////////////////////////////////////////////////

func (h *BookingHandler) Submit(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}

	in := ucBooking.SubmitBookingInput{
		FormID:    id,
		Name:      c.PostForm("name"),
		Phone:     c.PostForm("phone"),
		SlotLabel: c.PostForm("time"),
	}

	fh, err := c.FormFile("payment_proof")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// sem arquivo: o caso de uso responde proof_required
	case err != nil:
		httperr.BadRequest(c, "invalid_upload", "Could not read the uploaded file.")
		return
	default:
		f, err := fh.Open()
		if err != nil {
			httperr.BadRequest(c, "invalid_upload", "Could not read the uploaded file.")
			return
		}
		defer f.Close()
		in.Proof = io.Reader(f)
	}

	res, err := h.submitBooking.Execute(c.Request.Context(), in)
	if err != nil {
		writeBookingError(c, err, h.fallbackContact)
		return
	}

	httpresp.Created(c, SubmitResponse{
		Form:    res.Form,
		Message: "Booking confirmed!",
		Warning: res.Warning,
	})
}

func formID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		httperr.NotFound(c, "form_not_found", "Booking form not found. Reload the page.")
		return "", false
	}
	return id, true
}
