package handlers

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/enquiry/internal/forms"
	"github.com/joshua-takyi/enquiry/internal/models"
)

// User facing messages. Internal error details only reach the log.
const (
	MsgFetchEvents       = "Error fetching events."
	MsgCreateEvent       = "Error creating event. Please try again."
	MsgFetchEvent        = "Error fetching event details."
	MsgUpdateEvent       = "Error updating event. Please try again."
	MsgDeleteEvent       = "Error deleting event."
	MsgEventNotFound     = "Event not found."
	MsgFetchUsers        = "Failed to fetch users."
	MsgSubmitUser        = "Error submitting user."
	MsgSomethingWrong    = "Something went wrong."
	MsgAlreadyRegistered = "This phone number is already registered."
	MsgInvalidLogin      = "Invalid email or password"
	MsgExport            = "An error occurred while exporting data."
	MsgNoRegistrations   = "No registered users found for this event."
	MsgPDF               = "Failed to generate PDF."
	MsgFetchUserData     = "Error fetching user data"
	MsgFillAllFields     = "Please fill in all fields"
	MsgFillRequired      = "Please fill in all required fields."
	MsgInvalidPayload    = "Invalid request payload"
	MsgUnknownField      = "Unknown form field"
)

// fail attaches err for the error handler to log and writes msg.
func fail(c *gin.Context, status int, err error, msg string) {
	if err != nil {
		_ = c.Error(err)
	}
	c.JSON(status, models.ErrorResponse(msg))
}

// validationFailed writes field errors when err carries them.
func validationFailed(c *gin.Context, err error, msg string) bool {
	var errs forms.Errors
	if !errors.As(err, &errs) {
		return false
	}
	c.JSON(http.StatusBadRequest, models.ValidationResponse(msg, errs))
	return true
}

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrEventNotFound)
}

func attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}
