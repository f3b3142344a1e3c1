package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tcp_snm/problemhub/internal/api"
	"github.com/tcp_snm/problemhub/internal/cache"
	"github.com/tcp_snm/problemhub/internal/database"
	"github.com/tcp_snm/problemhub/internal/email"
	"github.com/tcp_snm/problemhub/internal/service"
	"github.com/tcp_snm/problemhub/internal/service/admin_service"
	"github.com/tcp_snm/problemhub/internal/service/auth_service"
	"github.com/tcp_snm/problemhub/internal/service/otp_service"
	"github.com/tcp_snm/problemhub/internal/service/pending_service"
	"github.com/tcp_snm/problemhub/internal/service/problem_service"
	"github.com/tcp_snm/problemhub/internal/service/testcase_service"
	"github.com/tcp_snm/problemhub/internal/uploads"
	"github.com/tcp_snm/problemhub/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	KeyDBURL           = "DB_URL"
	KeyAPIURL          = "API_URL"
	KeyPort            = "PORT"
	KeyEmailWorkers    = "EMAIL_WORKERS"
	KeyOTPTTLSeconds   = "OTP_TTL_SECONDS"
	KeySignUpCacheSize = "SIGNUP_CACHE_SIZE"
	KeyLogLevel        = "LOG_LEVEL"

	defaultPort            = "8080"
	defaultSignUpCacheSize = 10000
	pendingTTLMargin       = 5 * time.Second
)

var (
	apiConfig    *api.Api
	authConfig   *middleware.Auth
	emailService *email.EmailService
	uploadDir    string
)

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Warnf("invalid %s %q in environment. using default %d", key, raw, fallback)
		return fallback
	}
	return v
}

func initLogger() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	level, err := log.ParseLevel(os.Getenv(KeyLogLevel))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func initDatabase(ctx context.Context) *database.Store {
	// get the database url
	dbURL := os.Getenv(KeyDBURL)
	if dbURL == "" {
		panic("dbURL not found")
	}

	if err := database.Migrate(ctx, dbURL); err != nil {
		panic(err)
	}

	// create a connection pool to the database
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		panic(err)
	}

	return database.NewStore(pool)
}

func initEmailService() *email.EmailService {
	log.Info("initializing email service")
	port := getEnvInt(email.KeyEmailSMTPPort, email.DefaultEmailSMTPPort)
	host := os.Getenv(email.KeyEmailSMTPServer)
	if host == "" {
		host = email.DefaultEmailSMTPServer
	}
	sender := os.Getenv(email.KeyEmailSender)
	if sender == "" {
		log.Warnf("%s not found in environment. otp emails cannot be sent", email.KeyEmailSender)
	}

	es := &email.EmailService{
		From: sender,
		Dialer: email.NewSMTPDialer(
			host,
			port,
			sender,
			os.Getenv(email.KeyEmailSenderPassword),
		),
		Workers: getEnvInt(KeyEmailWorkers, 1),
	}
	es.Start()
	return es
}

func initTokens() *service.JWTIssuer {
	secret := os.Getenv(service.KeyJWTSecret)
	if secret == "" {
		panic("jwt secret not found")
	}
	return &service.JWTIssuer{Secret: []byte(secret)}
}

func initAuthService(
	db *database.Store,
	mailer auth_service.Notifier,
	tokens *service.JWTIssuer,
) *auth_service.AuthService {
	log.Info("initializing auth service")
	ttl := time.Duration(getEnvInt(KeyOTPTTLSeconds, int(otp_service.DefaultOTPTTL/time.Second))) * time.Second
	size := getEnvInt(KeySignUpCacheSize, defaultSignUpCacheSize)

	return &auth_service.AuthService{
		DB: db,
		OTP: &otp_service.OTPService{
			Store: cache.NewExpirableStore[otp_service.OTPRecord]("otp", size, ttl),
			TTL:   ttl,
		},
		// pending signups live as long as their otp
		Pending: &pending_service.PendingService{
			Store: cache.NewExpirableStore[pending_service.PendingRegistration]("pending signup", size, ttl+pendingTTLMargin),
		},
		Mailer: mailer,
		Hasher: service.BcryptHasher{},
		Tokens: tokens,
	}
}

func initApi(db *database.Store, mailer auth_service.Notifier, tokens *service.JWTIssuer) *api.Api {
	log.Info("initializing api config")
	as := initAuthService(db, mailer, tokens)
	log.Info("auth service created")

	images, err := uploads.NewDiskStore(uploadDir)
	if err != nil {
		panic(err)
	}

	return &api.Api{
		AuthServiceConfig: as,
		AdminServiceConfig: &admin_service.AdminService{
			DB:     db,
			Hasher: service.BcryptHasher{},
		},
		ProblemServiceConfig: &problem_service.ProblemService{
			DB:     db,
			Images: images,
		},
		TestcaseServiceConfig: &testcase_service.TestcaseService{
			DB: db,
		},
	}
}

func setup(ctx context.Context) {
	godotenv.Load()
	initLogger()
	service.InitializeServices()

	uploadDir = os.Getenv(uploads.KeyUploadDir)
	if uploadDir == "" {
		uploadDir = uploads.DefaultUploadDir
	}

	db := initDatabase(ctx)
	tokens := initTokens()
	emailService = initEmailService()
	apiConfig = initApi(db, emailService, tokens)
	authConfig = &middleware.Auth{Tokens: tokens}
}

func setCors(router *chi.Mux) {
	router.Use(
		cors.Handler(
			cors.Options{
				AllowedOrigins:   []string{"https://*", "http://*"},
				AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowedHeaders:   []string{"*"},
				AllowCredentials: false,
				ExposedHeaders:   []string{"Link"},
				MaxAge:           300,
			},
		),
	)
	log.Info("cors options has been set")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setup(ctx)

	// initialize a new router
	router := chi.NewRouter()
	setCors(router)

	// mount v1 router
	router.Mount("/v1", NewV1Router())
	log.Info("v1 router has been mounted")

	// uploaded images are public
	router.Handle(
		uploads.URLPrefix+"*",
		http.StripPrefix(uploads.URLPrefix, http.FileServer(http.Dir(uploadDir))),
	)

	// find port for the server to start
	port := os.Getenv(KeyPort)
	if port == "" {
		port = defaultPort
		log.Warnf("port not found in environment. using default port %s", port)
	}

	// find the address to start the server
	apiAddress := os.Getenv(KeyAPIURL) + ":" + port

	// create a server object to listen to all requests
	srv := http.Server{
		Handler:           router,
		Addr:              apiAddress,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("cannot shutdown server gracefully, %v", err)
		}
	}()

	log.WithField("address", apiAddress).Info("starting server")
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server cannot be started. Error: %v", err)
	}

	emailService.Stop()
	log.Info("server stopped")
}
