// cmd/api/main.go
// HelloNanny backend entrypoint: wires the Airtable-backed stores, the
// matching engine, interviews, chat and notifications behind one HTTP
// server.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hellonanny/hellonanny-backend/internal/airtable"
	"github.com/hellonanny/hellonanny-backend/internal/auth"
	"github.com/hellonanny/hellonanny-backend/internal/calendar"
	"github.com/hellonanny/hellonanny-backend/internal/common/ratelimit"
	"github.com/hellonanny/hellonanny-backend/internal/common/utils"
	"github.com/hellonanny/hellonanny-backend/internal/config"
	"github.com/hellonanny/hellonanny-backend/internal/interviews"
	"github.com/hellonanny/hellonanny-backend/internal/matching"
	"github.com/hellonanny/hellonanny-backend/internal/meetings"
	"github.com/hellonanny/hellonanny-backend/internal/messaging"
	"github.com/hellonanny/hellonanny-backend/internal/notifications"
	"github.com/hellonanny/hellonanny-backend/internal/profiles"
	"github.com/hellonanny/hellonanny-backend/internal/tokens"
)

func main() {
	log.Println("Starting HelloNanny backend...")

	// Step 1: Configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.Printf("Configuration loaded (environment: %s)", cfg.Environment)

	// Step 2: Airtable store
	store := airtable.NewClient(cfg.AirtableURL, cfg.AirtableBaseID, cfg.AirtableAPIKey)
	log.Println("Airtable client initialized")

	// Step 3: Redis (optional, rate limiting)
	var limiter ratelimit.Limiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Invalid Redis URL: %v", err)
		}
		client := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unreachable, falling back to in-memory rate limiting: %v", err)
			limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
		} else {
			limiter = ratelimit.NewRedisLimiter(client, cfg.RateLimitMax, cfg.RateLimitWindow)
			log.Println("Redis connected")
		}
		cancel()
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
		log.Println("Rate limiting using in-memory windows")
	}
	rateLimitMW := ratelimit.Middleware(limiter)

	// Step 4: Link tokens
	tokenIssuer := tokens.NewIssuer(cfg.JWTSecret, cfg.LinkTokenExpiry)

	// Step 5: Notifications
	var emailProvider notifications.EmailProvider
	switch cfg.EmailProvider {
	case "sendgrid":
		emailProvider = notifications.NewSendGridProvider(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName)
		log.Println("Email provider: SendGrid")
	case "smtp":
		emailProvider = notifications.NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom, cfg.EmailFromName)
		log.Println("Email provider: SMTP")
	default:
		emailProvider = notifications.NewMockEmailProvider()
		log.Println("Email provider: mock")
	}

	var smsProvider notifications.SMSProvider
	switch cfg.SMSProvider {
	case "twilio":
		smsProvider = notifications.NewTwilioProvider(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
		log.Println("SMS provider: Twilio")
	default:
		smsProvider = notifications.NewMockSMSProvider()
		log.Println("SMS provider: mock")
	}

	notifier := notifications.NewNotifier(emailProvider, smsProvider, tokenIssuer, cfg.BaseURL,
		cfg.EnableEmailNotifications, cfg.EnableSMSNotifications)

	// Step 6: Auth
	authRepo := auth.NewAirtableRepository(store)
	authService := auth.NewService(authRepo, cfg.JWTSecret, cfg.AccessTokenExpiry, cfg.BCryptCost)
	authMW := auth.NewMiddleware(authService)
	authHandlers := auth.NewHandlers(authService)

	// Step 7: Profiles
	var uploader profiles.Uploader
	if cfg.UseS3 {
		var err error
		uploader, err = profiles.NewS3Uploader(cfg.AWSRegion, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, cfg.S3Bucket)
		if err != nil {
			log.Fatalf("Failed to initialize S3 uploader: %v", err)
		}
		log.Printf("CV uploads going to S3 bucket %s", cfg.S3Bucket)
	} else {
		uploader = profiles.NewLocalUploader(cfg.LocalUploadDir, cfg.BaseURL)
		log.Printf("CV uploads going to local directory %s", cfg.LocalUploadDir)
	}
	profileRepo := profiles.NewAirtableRepository(store)
	profileService := profiles.NewService(profileRepo, uploader)
	profileHandlers := profiles.NewHandlers(profileService)

	// Step 8: Messaging
	messagingRepo := messaging.NewAirtableRepository(store)
	messagingService := messaging.NewService(messagingRepo, tokenIssuer)
	messagingHandlers := messaging.NewHandlers(messagingService, authService)

	// Step 9: Matching
	matchingRepo := matching.NewAirtableRepository(store)
	matchingService := matching.NewService(matchingRepo, messagingService, notifier, tokenIssuer, matching.ServiceConfig{
		MinScore:      cfg.MinMatchScore,
		ShortlistSize: cfg.ShortlistSize,
		MaxCandidates: cfg.MaxCandidates,
		BaseURL:       cfg.BaseURL,
	})
	matchingHandlers := matching.NewHandlers(matchingService)

	// Step 10: Interviews
	var freeBusy calendar.FreeBusyService
	if cfg.GoogleCredentialsFile != "" && cfg.ConciergeCalendarID != "" {
		var err error
		freeBusy, err = calendar.NewGoogleFreeBusy(context.Background(), cfg.GoogleCredentialsFile)
		if err != nil {
			log.Printf("Google Calendar unavailable, concierge filtering disabled: %v", err)
			freeBusy = calendar.AlwaysFree{}
		} else {
			log.Println("Concierge calendar connected")
		}
	} else {
		freeBusy = calendar.AlwaysFree{}
		log.Println("No concierge calendar configured")
	}

	interviewRepo := interviews.NewAirtableRepository(store)
	interviewService := interviews.NewService(interviewRepo, matchingRepo, freeBusy, cfg.ConciergeCalendarID,
		meetings.NewStubProvider(), tokenIssuer, notifier, cfg.BaseURL)
	interviewHandlers := interviews.NewHandlers(interviewService, authService)

	// Step 11: Router
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{
			"status":      "ok",
			"environment": cfg.Environment,
		})
	}).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	auth.RegisterRoutes(router, authHandlers, authMW)
	profiles.RegisterRoutes(router, profileHandlers, authMW, rateLimitMW)
	matching.RegisterRoutes(router, matchingHandlers, authMW, rateLimitMW)
	interviews.RegisterRoutes(router, interviewHandlers, authMW, rateLimitMW)
	messaging.RegisterRoutes(router, messagingHandlers, rateLimitMW)

	if !cfg.UseS3 {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.LocalUploadDir))))
	}

	// Step 12: Serve
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
