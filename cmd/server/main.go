package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/api"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/auth"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/config"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/repository"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/service"
	"github.com/anwarbahou/saifautoBeta-sub000/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	carRepo := repository.NewCarRepository(db)
	clientRepo := repository.NewClientRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)

	imageStore, err := storage.NewS3ImageStore(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	emailSender := service.NewSendGridEmailSender(cfg.Email)
	messageSender := service.NewTwilioMessageSender(cfg.Message)
	senderSvc := service.NewSenderService(emailSender, messageSender)

	bookingSvc := service.NewBookingService(clientRepo, bookingRepo, carRepo, notifRepo, senderSvc, cfg.RulesPhrase)
	carSvc := service.NewCarService(carRepo, imageStore)
	adminSvc := service.NewAdminService(carRepo, clientRepo, bookingRepo, notifRepo)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo, cfg.JWTSecret)
	jobSvc := service.NewJobService(bookingRepo, notifRepo)

	bookingHandler := api.NewBookingHandler(bookingSvc, senderSvc, cfg.Email, cfg.Message)
	carHandler := api.NewCarHandler(carSvc)
	confirmationHandler := api.NewConfirmationHandler()
	adminHandler := api.NewAdminHandler(carSvc, adminSvc, clientRepo, bookingRepo, notifRepo)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/send-confirmation-email", bookingHandler.SendConfirmationEmail).Methods("POST")
	r.HandleFunc("/api/sendBooking", bookingHandler.SendBooking).Methods("POST")
	r.HandleFunc("/api/cars", carHandler.ListCars).Methods("GET")
	r.HandleFunc("/api/cars/{id}", carHandler.GetCar).Methods("GET")
	r.HandleFunc("/confirmation", confirmationHandler.Show).Methods("GET")

	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware(cfg.JWTSecret))
	admin.HandleFunc("/cars", adminHandler.ListCars).Methods("GET")
	admin.HandleFunc("/cars", adminHandler.CreateCar).Methods("POST")
	admin.HandleFunc("/cars/{id}", adminHandler.GetCar).Methods("GET")
	admin.HandleFunc("/cars/{id}", adminHandler.UpdateCar).Methods("PUT")
	admin.HandleFunc("/cars/{id}", adminHandler.DeleteCar).Methods("DELETE")
	admin.HandleFunc("/cars/{id}/status", adminHandler.UpdateCarStatus).Methods("PUT")
	admin.HandleFunc("/clients", adminHandler.ListClients).Methods("GET")
	admin.HandleFunc("/clients/{id}", adminHandler.DeleteClient).Methods("DELETE")
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/bookings/{id}/status", adminHandler.UpdateBookingStatus).Methods("PUT")
	admin.HandleFunc("/bookings/{id}", adminHandler.DeleteBooking).Methods("DELETE")
	admin.HandleFunc("/notifications", adminHandler.ListNotifications).Methods("GET")
	admin.HandleFunc("/notifications/{id}/read", adminHandler.MarkNotificationRead).Methods("PUT")
	admin.HandleFunc("/stats", adminHandler.Stats).Methods("GET")
	admin.HandleFunc("/admins", adminAuthHandler.CreateAdmin).Methods("POST")

	c := cron.New()
	if _, err := c.AddFunc("0 7 * * *", func() {
		if err := jobSvc.CreateUpcomingReminders(); err != nil {
			log.Printf("Reminder job failed: %v", err)
		}
		if err := jobSvc.PurgeOldNotifications(); err != nil {
			log.Printf("Notification purge failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule reminder job: %v", err)
	}
	c.Start()
	defer c.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, cors(r)))
}
