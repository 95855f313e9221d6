package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/travelbooking/api"
	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/bootstrap"
	"github.com/Domenick1991/travelbooking/internal/cache"
	"github.com/Domenick1991/travelbooking/internal/kafka"
	"github.com/Domenick1991/travelbooking/internal/repository"
	"github.com/Domenick1991/travelbooking/internal/service/auth"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/Domenick1991/travelbooking/internal/service/travel"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))

	if cfg.Database.RunMigrations {
		if err := repository.RunMigrations(cfg.Database.DSN()); err != nil {
			log.Fatalf("run migrations: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.SearchCacheTTL)*time.Second)
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		slog.Warn("kafka unavailable, booking events will be dropped", "error", err)
	}

	travelRepo := repository.NewTravelRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	services := api.Services{
		Travel: travel.NewTravelService(travelRepo, redisCache),
		Bookings: booking.NewBookingService(
			bookingRepo,
			redisCache,
			producer,
			cfg.Kafka.BookingTopic,
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
			booking.WithMaxSeats(cfg.Booking.MaxSeatsPerBooking),
		),
		Auth: auth.NewAuthService(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute),
	}

	if err := bootstrap.Run(ctx, cfg, services); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
