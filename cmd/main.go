package main

import (
	"context"
	"log"
	"net/http"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/tahsinahmed/photoclass-gobackend/internal/auth"
	"github.com/tahsinahmed/photoclass-gobackend/internal/config"
	"github.com/tahsinahmed/photoclass-gobackend/internal/db"
	"github.com/tahsinahmed/photoclass-gobackend/internal/handlers"
	"github.com/tahsinahmed/photoclass-gobackend/internal/middleware"
	"github.com/tahsinahmed/photoclass-gobackend/internal/models"
	"github.com/tahsinahmed/photoclass-gobackend/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := db.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Disconnect(ctx, client); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	log.Println("Successfully connected to MongoDB")

	database := client.Database(cfg.DBName)

	// Services
	tokenService := auth.NewTokenService([]byte(cfg.JWTSecret))
	userService := services.NewUserService(database)
	classService := services.NewClassService(database)
	cartService := services.NewCartService(database)
	paymentService := services.NewPaymentService(client, database)
	stripeService := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeBaseURL)
	contentService := services.NewContentService(database)

	if err := paymentService.EnsureIndexes(context.Background()); err != nil {
		log.Printf("Warning: failed to create payment indexes: %v", err)
	}

	// Handlers
	userHandler := handlers.NewUserHandler(userService, tokenService)
	classHandler := handlers.NewClassHandler(classService)
	cartHandler := handlers.NewCartHandler(cartService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, stripeService)
	contentHandler := handlers.NewContentHandler(contentService)

	// Access gates
	guard := middleware.NewGuard(tokenService, userService)
	authed := func(h http.HandlerFunc) http.Handler {
		return guard.Authenticate(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return guard.Authenticate(guard.RequireRole(models.RoleAdmin)(h))
	}
	instructor := func(h http.HandlerFunc) http.Handler {
		return guard.Authenticate(guard.RequireRole(models.RoleInstructor)(h))
	}

	// Set up router
	router := mux.NewRouter()
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET", "HEAD")

	router.HandleFunc("/jwt", userHandler.IssueToken).Methods("POST")

	// Users and roles
	router.HandleFunc("/users", userHandler.CreateUser).Methods("POST")
	router.Handle("/users", admin(userHandler.GetUsers)).Methods("GET")
	router.Handle("/user/{id}", admin(userHandler.DeleteUser)).Methods("DELETE")
	router.Handle("/user/instructor/{id}", admin(userHandler.MakeInstructor)).Methods("PATCH")
	router.Handle("/user/admin/{id}", admin(userHandler.MakeAdmin)).Methods("PATCH")
	router.Handle("/user/{email}", authed(userHandler.GetRoleFlags)).Methods("GET")
	router.HandleFunc("/instructors", userHandler.GetInstructors).Methods("GET")

	// Class catalog
	router.Handle("/classes", admin(classHandler.GetAllClasses)).Methods("GET")
	router.Handle("/classes/{email}", instructor(classHandler.GetInstructorClasses)).Methods("GET")
	router.Handle("/status/approve/{id}", admin(classHandler.ApproveClass)).Methods("PATCH")
	router.Handle("/status/deny/{id}", admin(classHandler.DenyClass)).Methods("PATCH")
	router.Handle("/feedback/{id}", admin(classHandler.SetFeedback)).Methods("PATCH")
	router.Handle("/class/add", instructor(classHandler.CreateClass)).Methods("POST")
	router.Handle("/class/{id}", instructor(classHandler.UpdateClass)).Methods("PATCH")
	router.Handle("/class/{id}", admin(classHandler.DeleteClass)).Methods("DELETE")
	router.HandleFunc("/class/{id}", classHandler.GetClass).Methods("GET")
	router.HandleFunc("/all-classes", classHandler.GetApprovedClasses).Methods("GET")
	router.HandleFunc("/all-classes-sort", classHandler.GetTopClasses).Methods("GET")
	router.HandleFunc("/instructor/class-sort", classHandler.GetTopInstructors).Methods("GET")

	// Cart
	router.Handle("/cart", authed(cartHandler.GetCart)).Methods("GET")
	router.Handle("/cart/class", authed(cartHandler.AddToCart)).Methods("POST")
	router.Handle("/cart/{id}", authed(cartHandler.GetCartItem)).Methods("GET")
	router.Handle("/cart/{id}", authed(cartHandler.DeleteCartItem)).Methods("DELETE")

	// Payments
	router.Handle("/create-payment-intent", authed(paymentHandler.CreateIntent)).Methods("POST")
	router.Handle("/payments", authed(paymentHandler.CompletePayment)).Methods("POST")
	router.Handle("/payments", authed(paymentHandler.GetPayments)).Methods("GET")
	router.Handle("/enroll/classes", authed(paymentHandler.GetEnrolledClasses)).Methods("GET")

	// Public content
	router.HandleFunc("/sliders", contentHandler.GetSliders).Methods("GET")
	router.HandleFunc("/reviews", contentHandler.GetReviews).Methods("GET")

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      cors(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(server.ListenAndServe())
}
