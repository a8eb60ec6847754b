package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"campusbooking/internal/api"
	"campusbooking/internal/auth"
	"campusbooking/internal/repository"
	"campusbooking/internal/service"
)

func main() {
	godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	adminSecret := os.Getenv("ADMIN_SECRET")
	if adminSecret == "" {
		log.Println("ADMIN_SECRET not set, admin registration is disabled")
	}

	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	bookingRepo := repository.NewBookingRepository(database)
	facilityRepo := repository.NewFacilityRepository(database)
	userRepo := repository.NewUserRepository(database)

	notifier := service.NewNotifyService()
	bookingSvc := service.NewBookingService(bookingRepo, facilityRepo, notifier)
	availabilitySvc := service.NewAvailabilityService(bookingRepo, facilityRepo)
	facilitySvc := service.NewFacilityService(facilityRepo)
	authSvc := service.NewAuthService(userRepo, jwtSecret, adminSecret)
	jobSvc := service.NewJobService(bookingRepo, notifier)

	authHandler := api.NewAuthHandler(authSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc, userRepo)
	availabilityHandler := api.NewAvailabilityHandler(availabilitySvc)
	facilityHandler := api.NewFacilityHandler(facilitySvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/facilities", facilityHandler.List).Methods("GET")
	r.HandleFunc("/api/facilities/{id}", facilityHandler.Get).Methods("GET")
	r.HandleFunc("/api/availability", availabilityHandler.Daily).Methods("GET")
	r.HandleFunc("/api/availability/week", availabilityHandler.Weekly).Methods("GET")

	// Authenticated endpoints
	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(auth.Middleware(jwtSecret))
	authed.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	authed.HandleFunc("/bookings", bookingHandler.List).Methods("GET")
	authed.HandleFunc("/bookings", bookingHandler.Create).Methods("POST")
	authed.HandleFunc("/bookings/{id}", bookingHandler.Get).Methods("GET")
	authed.HandleFunc("/bookings/{id}", bookingHandler.Update).Methods("PUT")
	authed.HandleFunc("/bookings/{id}", bookingHandler.Cancel).Methods("DELETE")

	// Admin endpoints
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(auth.Middleware(jwtSecret), auth.RequireAdmin)
	admin.HandleFunc("/facilities", facilityHandler.Create).Methods("POST")
	admin.HandleFunc("/facilities/{id}", facilityHandler.Update).Methods("PUT")
	admin.HandleFunc("/facilities/{id}", facilityHandler.Delete).Methods("DELETE")

	c := cron.New()
	if _, err := c.AddFunc("0 8 * * *", func() {
		if err := jobSvc.SendUpcomingReminders(); err != nil {
			log.Printf("Reminder job failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule reminder job: %v", err)
	}
	c.Start()
	defer c.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Admin-Secret"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
