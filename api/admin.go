package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/Domenick1991/travelbooking/internal/service/travel"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	travel   travel.TravelUseCase
	bookings booking.BookingUseCase
	pageSize int
}

type createTravelRequest struct {
	TravelID       string    `json:"travel_id"`
	Type           string    `json:"travel_type"`
	Source         string    `json:"source"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departure_datetime"`
	ArrivalTime    time.Time `json:"arrival_datetime"`
	PriceCents     int64     `json:"price_cents"`
	AvailableSeats int       `json:"available_seats"`
}

func NewAdminHandler(travelSvc travel.TravelUseCase, bookingSvc booking.BookingUseCase, pageSize int) *AdminHandler {
	return &AdminHandler{travel: travelSvc, bookings: bookingSvc, pageSize: pageSize}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.POST("/travel", h.createTravel)
	router.DELETE("/travel/:travel_id", h.deleteTravel)
	router.GET("/bookings", h.listBookings)
}

func (h *AdminHandler) createTravel(c *gin.Context) {
	var req createTravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	option := &domain.TravelOption{
		TravelID:       req.TravelID,
		Type:           domain.TravelType(req.Type),
		Source:         req.Source,
		Destination:    req.Destination,
		DepartureTime:  req.DepartureTime,
		ArrivalTime:    req.ArrivalTime,
		PriceCents:     req.PriceCents,
		AvailableSeats: req.AvailableSeats,
	}
	if err := h.travel.Create(c.Request.Context(), option); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, option)
}

func (h *AdminHandler) deleteTravel(c *gin.Context) {
	if err := h.travel.Delete(c.Request.Context(), c.Param("travel_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) listBookings(c *gin.Context) {
	ctx := c.Request.Context()
	filter := domain.BookingFilter{Status: domain.BookingStatus(c.Query("status"))}

	total, err := h.bookings.CountAll(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	p := paginate(c, h.pageSize, total)
	filter.Limit = p.Size
	filter.Offset = p.offset()

	list, err := h.bookings.ListAll(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagedResponse[domain.Booking]{Items: list, page: p})
}
