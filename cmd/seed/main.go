// Command seed loads rooms from a JSON file into the booking store.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/suitespot/service-booking/internal/application"
	"github.com/suitespot/service-booking/internal/config"
	"github.com/suitespot/service-booking/internal/pkg/cache"
	"github.com/suitespot/service-booking/internal/pkg/database"
	"github.com/suitespot/service-booking/internal/pkg/logger"
	"github.com/suitespot/service-booking/internal/repository"
)

func main() {
	file := flag.String("file", "data/rooms.json", "path to a JSON array of rooms")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewNamed(cfg.AppEnv, "booking-seed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, *file, log); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
}

func run(cfg *config.ServiceConfig, file string, log *zap.Logger) error {
	rooms, err := readRooms(file)
	if err != nil {
		return err
	}

	dbURL := cfg.DBConfig.URL()
	db, err := database.Connect(dbURL, log)
	if err != nil {
		return err
	}
	if database.IsPostgres(dbURL) {
		err = database.RunMigrations(dbURL, cfg.MigrationsDir, log)
	} else {
		err = repository.AutoMigrate(db)
	}
	if err != nil {
		return err
	}

	service := application.NewRoomService(
		repository.NewGormRoomRepository(db),
		repository.NewGormBookingRepository(db),
		cache.Noop{},
		0,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for _, req := range rooms {
		if _, err := service.UpsertRoom(ctx, req); err != nil {
			return fmt.Errorf("room %s: %w", req.RoomNo, err)
		}
	}
	log.Info("rooms seeded", zap.Int("count", len(rooms)), zap.String("file", file))
	return nil
}

func readRooms(file string) ([]application.UpsertRoomRequest, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	var rooms []application.UpsertRoomRequest
	if err := json.Unmarshal(raw, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", file, err)
	}
	return rooms, nil
}
