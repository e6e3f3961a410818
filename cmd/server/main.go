package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"lenslight/internal/api"
	"lenslight/internal/auth"
	"lenslight/internal/media"
	"lenslight/internal/repository"
	"lenslight/internal/service"
	"lenslight/internal/storage"
)

func main() {
	godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	store, err := newObjectStore()
	if err != nil {
		log.Fatalf("Failed to configure object storage: %v", err)
	}

	reservationRepo := repository.NewReservationRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)

	jwtService := auth.NewJWTService(jwtSecret)
	sender := service.NewSenderService(service.NewSendGridMailer(), service.NewTwilioSMSSender())

	bookingSvc := service.NewBookingService(reservationRepo, sender)
	contactSvc := service.NewContactService(service.NewSendGridMailer())
	gallerySvc := service.NewGalleryService(
		store,
		media.NewBimgCompressor(envInt("UPLOAD_MAX_DIMENSION", 1920), envInt("UPLOAD_QUALITY", 80)),
		os.Getenv("DEFAULT_SECTION"),
		envInt("UPLOAD_BATCH_SIZE", 3),
	)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo, jwtService)
	jobSvc := service.NewJobService(reservationRepo, sender)

	bookingHandler := api.NewBookingHandler(bookingSvc)
	contactHandler := api.NewContactHandler(contactSvc)
	galleryHandler := api.NewGalleryHandler(gallerySvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)
	mw := auth.NewMiddleware(jwtService, roleRepo)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/booking", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/booking", bookingHandler.BookedSlots).Methods("GET")
	r.HandleFunc("/contact", contactHandler.SendMessage).Methods("POST")
	r.HandleFunc("/gallery", galleryHandler.ListImages).Methods("GET")
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	r.Handle("/gallery", mw.RequireAdmin(http.HandlerFunc(galleryHandler.DeleteImage))).Methods("DELETE")
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(mw.RequireAdmin)
	admin.HandleFunc("/upload", galleryHandler.Upload).Methods("POST")
	admin.HandleFunc("/reservations", bookingHandler.ListReservations).Methods("GET")

	// Daily reminder job for next-day sessions
	c := cron.New()
	if _, err := c.AddFunc("0 8 * * *", func() {
		if err := jobSvc.SendUpcomingReminders(context.Background()); err != nil {
			log.Printf("Reminder job failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule reminder job: %v", err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{os.Getenv("ALLOWED_ORIGIN")}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, corsHandler(r))))
}

// newObjectStore builds the S3 client for the gallery bucket. When
// S3_ENDPOINT is set (e.g. a Cloudflare R2 account endpoint) it overrides
// the default AWS resolution.
func newObjectStore() (storage.ObjectStore, error) {
	bucket := os.Getenv("GALLERY_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("GALLERY_BUCKET not set")
	}
	publicURL := os.Getenv("PUBLIC_URL")
	if publicURL == "" {
		return nil, fmt.Errorf("PUBLIC_URL not set")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(envOr("S3_REGION", "auto")),
	}
	if key := os.Getenv("S3_ACCESS_KEY_ID"); key != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, os.Getenv("S3_SECRET_ACCESS_KEY"), "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := os.Getenv("S3_ENDPOINT"); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return storage.NewS3Store(client, bucket, publicURL), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
