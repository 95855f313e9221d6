package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/Domenick1991/travelbooking/internal/service/travel"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type TravelHandler struct {
	travel   travel.TravelUseCase
	bookings booking.BookingUseCase
	pageSize int
	loc      *time.Location
}

func NewTravelHandler(travelSvc travel.TravelUseCase, bookingSvc booking.BookingUseCase, pageSize int) *TravelHandler {
	return &TravelHandler{travel: travelSvc, bookings: bookingSvc, pageSize: pageSize, loc: time.Local}
}

type bookRequest struct {
	Seats int `json:"number_of_seats"`
}

// Register mounts the public catalog routes. book is mounted separately
// behind authentication.
func (h *TravelHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.search)
	router.GET("/home", h.home)
	router.GET("/:travel_id", h.get)
}

func (h *TravelHandler) RegisterBooking(router *gin.RouterGroup) {
	router.POST("/:travel_id/book", h.book)
}

func (h *TravelHandler) search(c *gin.Context) {
	filter, err := h.parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	total, err := h.travel.Count(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	p := paginate(c, h.pageSize, total)
	filter.Limit = p.Size
	filter.Offset = p.offset()

	options, err := h.travel.Search(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagedResponse[domain.TravelOption]{Items: options, page: p})
}

func (h *TravelHandler) home(c *gin.Context) {
	options, err := h.travel.Home(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": options})
}

func (h *TravelHandler) get(c *gin.Context) {
	option, err := h.travel.Get(c.Request.Context(), c.Param("travel_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, option)
}

func (h *TravelHandler) book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	b, err := h.bookings.Reserve(c.Request.Context(), booking.ReserveInput{
		TravelID: c.Param("travel_id"),
		UserID:   currentIdentity(c).UserID,
		Seats:    req.Seats,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *TravelHandler) parseFilter(c *gin.Context) (domain.SearchFilter, error) {
	filter := domain.SearchFilter{
		Type:        domain.TravelType(strings.ToLower(strings.TrimSpace(c.Query("travel_type")))),
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
	}
	if raw := strings.TrimSpace(c.Query("departure_date")); raw != "" {
		date, err := time.ParseInLocation(dateLayout, raw, h.loc)
		if err != nil {
			return filter, domain.ValidationError{Field: "departure_date", Msg: "must be formatted as YYYY-MM-DD"}
		}
		filter.DepartureDate = &date
	}
	return filter, nil
}
