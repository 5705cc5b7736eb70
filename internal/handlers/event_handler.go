package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/enquiry/internal/forms"
	"github.com/joshua-takyi/enquiry/internal/helpers"
	"github.com/joshua-takyi/enquiry/internal/models"
	"github.com/joshua-takyi/enquiry/internal/services"
)

func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form forms.EventForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(MsgInvalidPayload))
			return
		}

		event, err := es.CreateEvent(c.Request.Context(), form)
		if err != nil {
			if validationFailed(c, err, MsgFillAllFields) {
				return
			}
			fail(c, http.StatusInternalServerError, err, MsgCreateEvent)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{
			"event": event,
			"link":  es.Link(event.ID),
		}, "Event created successfully!"))
	}
}

func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := es.ListEvents(c.Request.Context())
		if err != nil {
			fail(c, http.StatusInternalServerError, err, MsgFetchEvents)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(items, len(items)))
	}
}

func GetEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := es.GetEvent(c.Request.Context(), helpers.StringTrim(c.Param("id")))
		if err != nil {
			if isNotFound(err) {
				c.JSON(http.StatusNotFound, models.ErrorResponse(MsgEventNotFound))
				return
			}
			fail(c, http.StatusInternalServerError, err, MsgFetchEvent)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}

func UpdateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch services.EventPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(MsgInvalidPayload))
			return
		}

		event, err := es.UpdateEvent(c.Request.Context(), helpers.StringTrim(c.Param("id")), patch)
		if err != nil {
			switch {
			case isNotFound(err):
				c.JSON(http.StatusNotFound, models.ErrorResponse(MsgEventNotFound))
			case validationFailed(c, err, MsgFillRequired):
			default:
				fail(c, http.StatusInternalServerError, err, MsgUpdateEvent)
			}
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(event, "Event updated successfully!"))
	}
}

func DeleteEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := es.DeleteEvent(c.Request.Context(), helpers.StringTrim(c.Param("id")))
		if err != nil {
			if isNotFound(err) {
				c.JSON(http.StatusNotFound, models.ErrorResponse(MsgEventNotFound))
				return
			}
			fail(c, http.StatusInternalServerError, err, MsgDeleteEvent)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Event deleted successfully!"))
	}
}

func EventQR(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := es.QRView(c.Request.Context(), helpers.StringTrim(c.Param("id")))
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

func EventQRPDF(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		pdf, name, err := es.QRPDF(c.Request.Context(), helpers.StringTrim(c.Param("id")))
		if err != nil {
			if isNotFound(err) {
				c.JSON(http.StatusNotFound, models.ErrorResponse(MsgEventNotFound))
				return
			}
			fail(c, http.StatusInternalServerError, err, MsgPDF)
			return
		}
		c.Header("Content-Disposition", attachment(name))
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}
