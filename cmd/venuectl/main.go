// Command venuectl runs operator tasks against the venue database:
// schema migrations, sample data and admin accounts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/utils"
)

const usage = `usage: venuectl <command> [flags]

commands:
  migrate up|down|status   apply, roll back one step, or list migrations
  seed                     insert sample events, seating rows and settings
  create-admin             add a dashboard admin
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}
	logger := log.New(cfg.LogLevel, cfg.LogFormat).WithField(log.FldComponent, "venuectl")

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch os.Args[1] {
	case "migrate":
		err = migrate(db, logger, os.Args[2:])
	case "seed":
		err = seed(ctx, db, logger)
	case "create-admin":
		err = createAdmin(ctx, db, cfg.Auth, logger, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.WithError(err).Fatalf("%s failed", os.Args[1])
	}
}

func migrate(db *sqlx.DB, logger *logrus.Entry, args []string) error {
	database.SetLogger(logger.WithField(log.FldComponent, "migrate"))
	dir := "up"
	if len(args) > 0 {
		dir = args[0]
	}
	switch dir {
	case "up":
		return database.Migrate(db.DB)
	case "down":
		return database.MigrateDown(db.DB)
	case "status":
		return database.MigrationStatus(db.DB)
	}
	return errors.Errorf("unknown migrate direction %q", dir)
}

func seed(ctx context.Context, db *sqlx.DB, logger *logrus.Entry) error {
	if err := database.Migrate(db.DB); err != nil {
		return err
	}
	events := repository.NewEventRepo(db, logger)
	seating := repository.NewSeatingRepo(db, logger)
	stage := repository.NewSettingsRepo(db, repository.StageSettingsTable, logger)
	business := repository.NewSettingsRepo(db, repository.BusinessSettingsTable, logger)

	start := time.Now().UTC().Add(14 * 24 * time.Hour).Truncate(time.Hour)
	price, vip, capacity := 35.0, 80.0, 240
	for i, title := range []string{"Friday Jazz Night", "Indie Showcase", "Sunday Acoustic"} {
		at := start.Add(time.Duration(i) * 7 * 24 * time.Hour)
		ev := &model.Event{
			Title:         title,
			StartDatetime: &at,
			TicketPrice:   &price,
			VIPPrice:      &vip,
			Capacity:      &capacity,
		}
		if err := events.Create(ctx, ev); err != nil {
			return err
		}
		logger.WithField(log.FldID, ev.ID).WithField("title", ev.Title).Info("Seeded event")
	}

	rows := 0
	for si, section := range []string{"A", "B", "VIP"} {
		seatType := "standard"
		if section == "VIP" {
			seatType = "vip"
		}
		for r := 1; r <= 4; r++ {
			s := &model.Seating{
				Section:    section,
				RowLabel:   fmt.Sprint(r),
				SeatNumber: 1,
				TotalSeats: 12,
				SeatType:   seatType,
				IsActive:   true,
				PositionX:  float64(si * 300),
				PositionY:  float64(r * 40),
				Status:     "available",
			}
			if err := seating.Create(ctx, s); err != nil {
				return err
			}
			rows++
		}
	}
	logger.WithField("rows", rows).Info("Seeded seating")

	if err := stage.Upsert(ctx, map[string]model.JSONDoc{
		"stage_width":  model.JSONDoc(`800`),
		"stage_height": model.JSONDoc(`120`),
	}); err != nil {
		return err
	}
	return business.Upsert(ctx, map[string]model.JSONDoc{
		"venue_name":    model.JSONDoc(`"The Venue"`),
		"contact_email": model.JSONDoc(`"hello@venue.example"`),
	})
}

func createAdmin(ctx context.Context, db *sqlx.DB, auth config.AuthConfig, logger *logrus.Entry, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	username := fs.String("username", "", "login name (required)")
	email := fs.String("email", "", "email address (required)")
	password := fs.String("password", "", "password (required)")
	name := fs.String("name", "", "display name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*username) == "" || strings.TrimSpace(*email) == "" || *password == "" {
		fs.Usage()
		return errors.New("username, email and password are required")
	}

	if err := utils.CheckPasswordStrength(*password); err != nil {
		return err
	}
	hash, err := utils.HashPassword(*password, auth.BcryptCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	a := &model.Admin{Username: strings.TrimSpace(*username), Email: *email, PasswordHash: hash}
	if *name != "" {
		a.Name = name
	}
	if err := repository.NewAdminRepo(db).Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return errors.Errorf("admin %q or email %q already exists", a.Username, a.Email)
		}
		return err
	}
	logger.WithField(log.FldID, a.ID).WithField(log.FldUser, a.Username).Info("Admin created")
	return nil
}
