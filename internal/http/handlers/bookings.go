package handlers

import (
	"net/http"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	TrainNumber  string             `json:"trainNumber"`
	JourneyDate  string             `json:"journeyDate"`
	ClassType    string             `json:"classType"`
	Passengers   []models.Passenger `json:"passengers"`
	FareOverride int64              `json:"fareOverride"`
}

// POST /api/bookings (auth)
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := bookingSvc.CreateBooking(services.CreateBookingInput{
		TrainNumber:  req.TrainNumber,
		UserID:       middleware.GetUserID(c),
		JourneyDate:  req.JourneyDate,
		ClassType:    req.ClassType,
		Passengers:   req.Passengers,
		FareOverride: req.FareOverride,
	})
	if err != nil {
		if domain.IsInsufficientSeats(err) {
			// Business outcome: report the FAILED attempt alongside the 409.
			c.JSON(http.StatusConflict, gin.H{
				"error":      err.Error(),
				"code":       "insufficient_seats",
				"booking":    booking,
				"request_id": middleware.GetRequestID(c),
			})
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GET /api/bookings/pnr/:pnr
func GetBookingByPNR(c *gin.Context) {
	booking, err := querySvc.GetBookingByPNR(c.Param("pnr"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// PUT /api/bookings/pnr/:pnr/cancel (auth)
func CancelBooking(c *gin.Context) {
	booking, err := bookingSvc.CancelBooking(c.Param("pnr"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "booking cancelled",
		"booking": booking,
	})
}

// GET /api/bookings/pnr/:pnr/e-ticket (auth)
func GetBookingETicket(c *gin.Context) {
	data, filename, err := docsSvc.BuildETicketPDF(c.Param("pnr"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
