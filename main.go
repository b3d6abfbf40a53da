package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fitPerksAPI/handlers"
	"fitPerksAPI/internal/store"
	"fitPerksAPI/middleware"
	"fitPerksAPI/services"
	"fitPerksAPI/utils"
)

var (
	documentStore    *store.FileStore
	authService      *services.AuthService
	userService      *services.UserService
	challengeService *services.ChallengeService
	rewardService    *services.RewardService
	supportService   *services.SupportService
	adminService     *services.AdminService
	docService       *services.DocService

	uploadDir string
	baseURL   string
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	dataFile := os.Getenv("DATA_FILE")
	if dataFile == "" {
		dataFile = "./data/db.json"
	}

	uploadDir = os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	if err := utils.EnsureUploadDir(uploadDir); err != nil {
		log.Fatal("Failed to create upload directory:", err)
	}

	documentStore = store.NewFileStore(dataFile)

	// materialize the document up front so a missing or corrupt file is
	// dealt with at startup, not on the first request
	if _, err := documentStore.Load(); err != nil {
		log.Fatal("Failed to initialize data file:", err)
	}
	log.Printf("Document store ready at %s", dataFile)

	authService = services.NewAuthService(documentStore, []byte(jwtSecret))
	userService = services.NewUserService(documentStore)
	challengeService = services.NewChallengeService(documentStore)
	rewardService = services.NewRewardService(documentStore)
	supportService = services.NewSupportService(documentStore)
	adminService = services.NewAdminService(documentStore)
	docService = services.NewDocService(documentStore)

	middleware.InitPrometheus()
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}

	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, uploadDir, baseURL)
	challengeHandler := handlers.NewChallengeHandler(challengeService, uploadDir, baseURL)
	rewardHandler := handlers.NewRewardHandler(rewardService)
	supportHandler := handlers.NewSupportHandler(supportService)
	adminHandler := handlers.NewAdminHandler(adminService, supportService)
	docHandler := handlers.NewDocHandler(docService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	fs := http.FileServer(http.Dir(uploadDir))
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", fs))
	log.Printf("Serving uploaded files from %s at /uploads/", uploadDir)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "ok", "timestamp": %q}`, time.Now().Format(time.RFC3339))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")

	api.HandleFunc("/challenges", challengeHandler.ListChallenges).Methods("GET")
	api.HandleFunc("/rewards", rewardHandler.ListRewards).Methods("GET")
	api.HandleFunc("/faq", docHandler.GetFAQ).Methods("GET")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(jwtSecret))

	protected.HandleFunc("/profile", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/profile/picture", userHandler.UpdateProfilePicture).Methods("POST")

	protected.HandleFunc("/challenges/join", challengeHandler.JoinChallenge).Methods("POST")
	protected.HandleFunc("/challenges/cancel", challengeHandler.CancelChallenge).Methods("POST")
	protected.HandleFunc("/challenges/submit", challengeHandler.SubmitChallenge).Methods("POST")

	protected.HandleFunc("/rewards/redeem", rewardHandler.RedeemReward).Methods("POST")

	protected.HandleFunc("/support", supportHandler.GetTickets).Methods("GET")
	protected.HandleFunc("/support", supportHandler.PostMessage).Methods("POST")

	// -------------------------------------------------------------------------
	// ADMIN PANEL ROUTES
	// -------------------------------------------------------------------------
	admin := api.PathPrefix("/admin").Subrouter()

	admin.HandleFunc("/submissions", adminHandler.ListSubmissions).Methods("GET")
	admin.HandleFunc("/submissions/{id}/approve", adminHandler.ApproveSubmission).Methods("POST")
	admin.HandleFunc("/submissions/{id}/reject", adminHandler.RejectSubmission).Methods("POST")
	admin.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}", adminHandler.GetUser).Methods("GET")
	admin.HandleFunc("/tickets/user/{userId}", adminHandler.GetUserTickets).Methods("GET")
	admin.HandleFunc("/tickets/read", adminHandler.MarkTicketsRead).Methods("POST")
	admin.HandleFunc("/tickets/reply", adminHandler.ReplyToTicket).Methods("POST")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "Accept-Language"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	server := http.Server{
		Addr:         ":" + port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
