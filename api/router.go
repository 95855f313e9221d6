package api

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/service/auth"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/Domenick1991/travelbooking/internal/service/travel"
	"github.com/Domenick1991/travelbooking/internal/ticket"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Services struct {
	Travel   travel.TravelUseCase
	Bookings booking.BookingUseCase
	Auth     auth.AuthUseCase
}

func NewRouter(cfg config.HTTPConfig, pageSize int, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger())

	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           24 * time.Hour,
		}))
	}

	if cfg.SwaggerDir != "" {
		router.StaticFile("/docs/swagger.json", filepath.Join(cfg.SwaggerDir, "swagger.json"))
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/swagger.json"))))
	}

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := NewAuthHandler(svc.Auth)
	travelHandler := NewTravelHandler(svc.Travel, svc.Bookings, pageSize)
	bookingHandler := NewBookingHandler(svc.Bookings, ticket.Render, pageSize)
	adminHandler := NewAdminHandler(svc.Travel, svc.Bookings, pageSize)

	authHandler.Register(api.Group("/auth"))
	travelHandler.Register(api.Group("/travel"))

	private := api.Group("", Auth(svc.Auth))
	authHandler.RegisterProfile(private.Group("/profile"))
	travelHandler.RegisterBooking(private.Group("/travel"))
	bookingHandler.Register(private.Group("/bookings"))

	adminHandler.Register(private.Group("/admin", RequireAdmin()))

	return router
}
