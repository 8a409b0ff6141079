package main

import (
	"os"
	"time"

	"github.com/brianmwangi/estatelink-backend/internal/database"
	"github.com/brianmwangi/estatelink-backend/internal/handlers"
	"github.com/brianmwangi/estatelink-backend/internal/middleware"
	"github.com/brianmwangi/estatelink-backend/internal/models"
	"github.com/brianmwangi/estatelink-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, relying on environment")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Firebase is optional, push notifications degrade to no-ops without it
	if err := services.InitFirebase(); err != nil {
		log.Warnf("Firebase initialization warning: %v", err)
	}

	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	hub := services.NewHub()
	go hub.Run()

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Session-ID"}
	r.Use(cors.New(config))

	// Serve locally stored uploads when S3 is not configured
	r.Static("/uploads", "./uploads")

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
			auth.POST("/verify-email", handlers.VerifyEmail(db))
			auth.POST("/forgot-password", handlers.RequestPasswordReset(db))
			auth.POST("/verify-otp", handlers.VerifyOTP(db))
			auth.POST("/reset-password", handlers.ResetPassword(db))
		}

		// Public listing browsing, no auth required
		listings := api.Group("/listings")
		{
			listings.GET("", handlers.SearchListings(db))
			listings.GET("/featured", handlers.GetFeaturedListings(db))
			listings.GET("/nearby", handlers.GetNearbyListings(db))
			listings.GET("/time-slots", handlers.GetTimeSlots())
			listings.GET("/:id", handlers.GetListing(db))
		}

		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
				users.POST("/avatar", handlers.UploadAvatar(db))
				users.PUT("/password", handlers.ChangePassword(db))
				users.GET("/favorites", handlers.GetUserFavorites(db))
			}

			protected.POST("/listings/:id/favorite", handlers.ToggleFavorite(db))

			// Listing writes are vendor operations; ownership is checked in the
			// handlers, and admins may also delete.
			protected.POST("/listings",
				middleware.RequireUserType(string(models.UserTypeVendor)), handlers.CreateListing(db))
			protected.PUT("/listings/:id",
				middleware.RequireUserType(string(models.UserTypeVendor)), handlers.UpdateListing(db))
			protected.DELETE("/listings/:id",
				middleware.RequireUserType(string(models.UserTypeVendor), string(models.UserTypeAdmin)),
				handlers.DeleteListing(db))

			bookings := protected.Group("/bookings")
			{
				bookings.POST("", handlers.CreateBooking(db, hub))
				bookings.GET("/client", handlers.GetClientBookings(db))
				bookings.GET("/vendor", handlers.GetVendorBookings(db))
				bookings.PATCH("/:id/status", handlers.UpdateBookingStatus(db, hub))
				bookings.POST("/:id/reschedule", handlers.RescheduleBooking(db, hub))
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", handlers.GetNotifications(db))
				notifications.PATCH("/:id/read", handlers.MarkNotificationRead(db))
				notifications.PATCH("/read-all", handlers.MarkAllNotificationsRead(db))
				notifications.POST("/register-token", handlers.RegisterFCMToken(db))
				notifications.DELETE("/remove-token", handlers.RemoveFCMToken(db))
				notifications.GET("/preferences", handlers.GetNotificationPreferences(db))
				notifications.PUT("/preferences", handlers.UpdateNotificationPreferences(db))
			}

			vendor := protected.Group("/vendor")
			vendor.Use(middleware.RequireUserType(string(models.UserTypeVendor)))
			{
				vendor.GET("/listings", handlers.GetVendorListings(db))
				vendor.GET("/stats", handlers.GetVendorStats(db))
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireUserType(string(models.UserTypeAdmin)))
			{
				admin.GET("/listings/pending", handlers.GetPendingListings(db))
				admin.PATCH("/listings/:id/moderate", handlers.ModerateListing(db, hub))
				admin.GET("/stats", handlers.AdminStats(db))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
