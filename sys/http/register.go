package http

import (
	"errors"
	"net/http"

	"partner-portal-api/sys/form"
	"partner-portal-api/sys/registration"

	"github.com/gin-gonic/gin"
)

// Register is the public form submission entry point. The payload is the
// full form snapshot, including base64 data-URL encoded license documents.
// All step validation is re-run server side before anything external is
// touched.
func (h *Handler) Register(c *gin.Context) {
	var snapshot form.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		respondError(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	record, err := h.Registration.Submit(c.Request.Context(), &snapshot)
	if err != nil {
		var validationErr *registration.ValidationError
		if errors.As(err, &validationErr) {
			respondError(c, http.StatusBadRequest, validationErr.Error())
			return
		}

		h.Logger.Printf("Error submitting registration: %s", err)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, gin.H{"id": record.ID})
}
