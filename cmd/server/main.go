package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/mudarris/backend/internal/api"
	"github.com/mudarris/backend/internal/auth"
	"github.com/mudarris/backend/internal/bank"
	"github.com/mudarris/backend/internal/bot"
	"github.com/mudarris/backend/internal/database"
	"github.com/mudarris/backend/internal/middleware"
	"github.com/mudarris/backend/internal/progress"
	"github.com/mudarris/backend/internal/quiz"
	"github.com/mudarris/backend/internal/ratelimit"
	"github.com/mudarris/backend/internal/telegram"
	"github.com/mudarris/backend/internal/tutor"
	"github.com/rs/cors"
)

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Question bank: a track too small to serve a full quiz is fatal here,
	// not a runtime condition.
	questionBank, err := bank.Load(os.Getenv("QUESTIONS_FILE"), quiz.QuestionsPerSession)
	if err != nil {
		log.Fatalf("Failed to load question bank: %v", err)
	}

	tutorClient, err := tutor.NewClient(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize tutor client: %v", err)
	}

	// Core services
	progressStore := progress.NewStore(db)
	quizService := quiz.NewService(questionBank)
	tutorService := tutor.NewService(tutorClient)
	limiter := ratelimit.NewLimiter(ratelimit.DefaultConfig())
	botService := bot.NewService(questionBank, quizService, progressStore, tutorService, limiter)

	// Handlers
	apiHandler := api.NewHandler(botService, progressStore)
	authHandler := auth.NewHandler()

	// Setup router
	r := mux.NewRouter()
	apiRouter := r.PathPrefix("/api/v1").Subrouter()

	apiRouter.HandleFunc("/messages", apiHandler.PostMessage).Methods("POST")
	apiRouter.HandleFunc("/users/{id}/profile", apiHandler.GetProfile).Methods("GET")
	apiRouter.HandleFunc("/leaderboard", apiHandler.GetLeaderboard).Methods("GET")
	apiRouter.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected admin routes
	admin := apiRouter.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.HandleFunc("/stats", apiHandler.GetStats).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	// Telegram poller, when a token is configured
	if token := os.Getenv("TELEGRAM_TOKEN"); token != "" {
		tgBot, err := telegram.NewBot(token, botService, questionBank.Tracks())
		if err != nil {
			log.Fatalf("Failed to connect to Telegram: %v", err)
		}
		go tgBot.Start(ctx)
	} else {
		log.Println("TELEGRAM_TOKEN not set, running HTTP transport only")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: c.Handler(r),
	}

	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
