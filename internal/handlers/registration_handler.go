package handlers

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/enquiry/internal/forms"
	"github.com/joshua-takyi/enquiry/internal/helpers"
	"github.com/joshua-takyi/enquiry/internal/models"
	"github.com/joshua-takyi/enquiry/internal/services"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PublicEvent serves the data the public registration page shows above the form.
func PublicEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := es.PublicEvent(c.Request.Context(), helpers.StringTrim(c.Param("id")))
		if err != nil {
			if isNotFound(err) {
				c.JSON(http.StatusNotFound, models.ErrorResponse(MsgEventNotFound))
				return
			}
			fail(c, http.StatusInternalServerError, err, MsgFetchEvent)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(view, ""))
	}
}

func register(rs *services.RegistrationService, source, failMsg, okMsg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form forms.Registration
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(MsgInvalidPayload))
			return
		}

		user, err := rs.Register(c.Request.Context(), helpers.StringTrim(c.Param("id")), form, source)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrAlreadyRegistered):
				c.JSON(http.StatusConflict, models.ErrorResponse(MsgAlreadyRegistered))
			case isNotFound(err):
				c.JSON(http.StatusNotFound, models.ErrorResponse(MsgEventNotFound))
			case validationFailed(c, err, MsgFillRequired):
			default:
				fail(c, http.StatusInternalServerError, err, failMsg)
			}
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(user, okMsg))
	}
}

// RegisterPublic handles the public form submission.
func RegisterPublic(rs *services.RegistrationService) gin.HandlerFunc {
	return register(rs, services.SourcePublic, MsgSomethingWrong, "Registration Successful!")
}

// AddLead is the admin add-lead form. Same rules as the public form.
func AddLead(rs *services.RegistrationService) gin.HandlerFunc {
	return register(rs, services.SourceAdmin, MsgSubmitUser, "User added successfully.")
}

// ValidateRegistrationField reports the message for one field of a partly
// filled form, named by the "field" query parameter.
func ValidateRegistrationField() gin.HandlerFunc {
	return func(c *gin.Context) {
		field := helpers.StringTrim(c.Query("field"))
		if !slices.Contains(forms.RegistrationFields, field) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(MsgUnknownField))
			return
		}
		var form forms.Registration
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(MsgInvalidPayload))
			return
		}
		msg := forms.ValidateField(form, field)
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"field":   field,
			"valid":   msg == "",
			"message": msg,
		}, ""))
	}
}

func ListRegistrations(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := rs.ListRegistrations(c.Request.Context(), helpers.StringTrim(c.Param("id")))
		if err != nil {
			if isNotFound(err) {
				c.JSON(http.StatusNotFound, models.ErrorResponse(MsgEventNotFound))
				return
			}
			fail(c, http.StatusInternalServerError, err, MsgFetchUsers)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(list, list.Total))
	}
}

func ExportRegistrations(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, name, err := rs.Export(c.Request.Context(), helpers.StringTrim(c.Param("id")))
		if err != nil {
			if errors.Is(err, services.ErrNoRegistrations) {
				c.JSON(http.StatusNotFound, models.ErrorResponse(MsgNoRegistrations))
				return
			}
			fail(c, http.StatusInternalServerError, err, MsgExport)
			return
		}
		c.Header("Content-Disposition", attachment(name))
		c.Data(http.StatusOK, excelContentType, data)
	}
}
