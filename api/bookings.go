package api

import (
	"net/http"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type TicketRenderer func(b *domain.Booking) ([]byte, string, error)

type BookingHandler struct {
	service  booking.BookingUseCase
	render   TicketRenderer
	pageSize int
}

type cancelResponse struct {
	Cancelled bool            `json:"cancelled"`
	Booking   *domain.Booking `json:"booking"`
}

func NewBookingHandler(service booking.BookingUseCase, render TicketRenderer, pageSize int) *BookingHandler {
	return &BookingHandler{service: service, render: render, pageSize: pageSize}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:booking_id", h.get)
	router.POST("/:booking_id/cancel", h.cancel)
	router.GET("/:booking_id/ticket", h.ticket)
}

func (h *BookingHandler) list(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentIdentity(c).UserID

	// Counted first so an out of range page can be clamped.
	total, err := h.service.CountForUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	p := paginate(c, h.pageSize, total)

	bookings, err := h.service.ListForUser(ctx, userID, p.Size, p.offset())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagedResponse[domain.Booking]{Items: bookings, page: p})
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("booking_id"), currentIdentity(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	b, cancelled, err := h.service.Cancel(c.Request.Context(), c.Param("booking_id"), currentIdentity(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelResponse{Cancelled: cancelled, Booking: b})
}

func (h *BookingHandler) ticket(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("booking_id"), currentIdentity(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	data, filename, err := h.render(b)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
