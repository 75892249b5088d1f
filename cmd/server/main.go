package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"security-quiz/internal/admin"
	"security-quiz/internal/auth"
	"security-quiz/internal/models"
	"security-quiz/internal/quiz"
	"security-quiz/pkg/cache"
	"security-quiz/pkg/database"
	"security-quiz/pkg/websocket"

	"github.com/gorilla/mux"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Validate the compiled-in question bank before serving anything
	questions := quiz.Questions()
	if err := quiz.ValidateBank(questions); err != nil {
		log.Fatalf("Invalid question bank: %v", err)
	}

	// Initialize database
	dbConfig := &database.Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Employee{},
		&models.EmployeeResult{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Redis cache
	redisCache := cache.NewRedisCache(os.Getenv("REDIS_ADDR"))

	// Initialize WebSocket hub for dashboard notifications
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Initialize repository and services
	repo := quiz.NewRepository(db)

	jwtSecret := os.Getenv("JWT_SECRET")
	adminPasswordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if jwtSecret == "" || adminPasswordHash == "" {
		log.Fatalf("JWT_SECRET and ADMIN_PASSWORD_HASH must be set")
	}

	authService := auth.NewService(adminPasswordHash, jwtSecret)
	quizService := quiz.NewService(repo, redisCache, wsHub, questions)
	adminService := admin.NewService(repo, redisCache)

	// Initialize handlers
	authHandler := auth.NewHandler(authService)
	quizHandler := quiz.NewHandler(quizService)
	adminHandler := admin.NewHandler(adminService, quiz.TotalQuestions())

	// Setup router
	router := mux.NewRouter()

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:3000"
	}

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	handler := corsMiddleware.Handler(router)

	// Public routes: entry check and the quiz flow
	router.HandleFunc("/api/entry/check", quizHandler.CheckEntry).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/quiz/questions", quizHandler.GetQuestions).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/quiz/{sessionID}", quizHandler.GetSession).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/quiz/{sessionID}/answer", quizHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/quiz/{sessionID}/next", quizHandler.Next).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/quiz/{sessionID}/previous", quizHandler.Previous).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/quiz/{sessionID}/submit", quizHandler.Submit).Methods("POST", "OPTIONS")

	// Admin login - no JWT required
	router.HandleFunc("/api/admin/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Admin routes - JWT required
	adminRouter := router.PathPrefix("/api/admin").Subrouter()
	adminRouter.Use(auth.JWTMiddleware(jwtSecret))

	adminRouter.HandleFunc("/results", adminHandler.GetResults).Methods("GET")
	adminRouter.HandleFunc("/analytics", adminHandler.GetAnalytics).Methods("GET")
	adminRouter.HandleFunc("/export/excel", adminHandler.ExportExcel).Methods("GET")
	adminRouter.HandleFunc("/export/report/{employeeID}", adminHandler.ExportReport).Methods("GET")

	// WebSocket endpoint for dashboard notifications, token via query param
	wsRouter := router.PathPrefix("/ws").Subrouter()
	wsRouter.Use(auth.JWTMiddleware(jwtSecret))
	wsRouter.HandleFunc("/admin", wsHub.HandleWebSocket)

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown setup
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown gracefully")
}
