package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"naija-events/internal/config"
	"naija-events/internal/database"
	"naija-events/internal/logger"
	"naija-events/internal/models"
	"naija-events/internal/repositories"
	"naija-events/internal/services"
	"naija-events/internal/utils"
)

type seedTicket struct {
	name     string
	naira    int64
	quantity int // 0 means unlimited
}

type seedEvent struct {
	name        string
	description string
	category    string
	location    string
	online      bool
	startIn     time.Duration
	length      time.Duration
	plan        models.PricingPlan
	tickets     []seedTicket
}

var sampleEvents = []seedEvent{
	{
		name:        "Tech Conference 2024",
		description: "A full day of talks on fintech, AI and the Nigerian startup ecosystem.",
		category:    "Technology",
		location:    "Landmark Centre, Victoria Island, Lagos",
		startIn:     30 * 24 * time.Hour,
		length:      8 * time.Hour,
		plan:        models.PlanPerTicket,
		tickets: []seedTicket{
			{"Early Bird", 5000, 100},
			{"Regular", 15000, 400},
			{"VIP", 50000, 50},
		},
	},
	{
		name:        "Digital Marketing Workshop",
		description: "Hands-on sessions on social media, SEO and paid campaigns for small businesses.",
		category:    "Workshop",
		location:    "Co-Creation Hub, Yaba, Lagos",
		startIn:     14 * 24 * time.Hour,
		length:      6 * time.Hour,
		plan:        models.PlanFlatFee,
		tickets: []seedTicket{
			{"Standard", 10000, 60},
			{"Community", 0, 20},
		},
	},
	{
		name:        "Music Festival Lagos",
		description: "Two nights of Afrobeats, highlife and amapiano on the beach.",
		category:    "Music",
		location:    "Eko Atlantic, Lagos",
		startIn:     60 * 24 * time.Hour,
		length:      2 * 24 * time.Hour,
		plan:        models.PlanPerTicket,
		tickets: []seedTicket{
			{"General Admission", 20000, 0},
			{"VIP Table", 250000, 20},
		},
	},
}

func main() {
	var (
		email    = flag.String("email", "organizer@naijaevents.ng", "Organizer account to own the events")
		password = flag.String("password", "SecurePassword123!", "Password used if the organizer has to be created")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.Must(cfg.Log)
	defer log.Sync() //nolint:errcheck

	ctx := context.Background()
	db, err := database.NewConnection(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	store := repositories.NewStore(db.DB)
	userRepo := repositories.NewUserRepository(db.DB)
	eventRepo := repositories.NewEventRepository(db.DB)
	ticketRepo := repositories.NewTicketRepository(db.DB)

	authService := services.NewAuthService(userRepo, utils.NewPasswordHasher(nil), log)
	eventService := services.NewEventService(eventRepo, ticketRepo, store, cfg.Tickets.Currency, log)

	organizer, err := userRepo.GetByEmail(ctx, models.NormalizeEmail(*email))
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		organizer, err = authService.Signup(ctx, &models.SignupRequest{
			FullName:        "Naija Events Demo",
			Email:           *email,
			Password:        *password,
			ConfirmPassword: *password,
		})
		if err != nil {
			log.Fatal("failed to create organizer", zap.Error(err))
		}
		fmt.Printf("Created organizer %s\n", organizer.Email)
	case err != nil:
		log.Fatal("failed to look up organizer", zap.Error(err))
	default:
		fmt.Printf("Using existing organizer %s\n", organizer.Email)
	}

	day := time.Now().UTC().Truncate(24 * time.Hour)
	for _, se := range sampleEvents {
		start := day.Add(se.startIn).Add(9 * time.Hour)
		req := &models.EventCreateRequest{
			Name:        se.name,
			Description: se.description,
			StartDate:   start.Format(time.RFC3339),
			EndDate:     start.Add(se.length).Format(time.RFC3339),
			Location:    se.location,
			IsOnline:    se.online,
			Category:    se.category,
			PricingPlan: se.plan,
		}
		for _, st := range se.tickets {
			tt := models.TicketTypeCreateRequest{Name: st.name, Price: models.NewMoneyFromNaira(st.naira)}
			if st.quantity > 0 {
				q := st.quantity
				tt.QuantityAvailable = &q
			}
			req.TicketTypes = append(req.TicketTypes, tt)
		}

		event, err := eventService.CreateEvent(ctx, organizer.ID, req, true)
		if err != nil {
			log.Error("failed to create event", zap.String("name", se.name), zap.Error(err))
			continue
		}
		fmt.Printf("Created %s (%s) with %d ticket types\n", event.Name, event.ID, len(event.TicketTypes))
	}
}
