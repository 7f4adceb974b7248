package routes

import (
	"net/http"
	"time"

	userRepo "meddirect/database/repository/user"
	"meddirect/handlers"
	"meddirect/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerSet groups the endpoint handlers and the user repository needed
// by the auth middleware.
type HandlerSet struct {
	UserRepo userRepo.UserRepository

	Users        *handlers.UserHandler
	Doctors      *handlers.DoctorHandler
	Hospitals    *handlers.HospitalHandler
	Appointments *handlers.AppointmentHandler
	Payments     *handlers.PaymentHandler
	Medicines    *handlers.MedicineHandler
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hs.Users.RegisterHandler)
		api.POST("/login", hs.Users.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hs.UserRepo))
		api.GET("/me", hs.Users.ProfileHandler)
		api.PUT("/me", hs.Users.UpdateProfileHandler)
		api.POST("/logout", hs.Users.LogoutHandler)
		api.DELETE("/me", hs.Users.DeleteAccountHandler)
	}
}

// RegisterDoctorRoutes registers the doctor directory endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/doctors")
	{
		api.GET("", hs.Doctors.ListDoctorsHandler)
		api.GET("/:id", hs.Doctors.GetDoctorHandler)

		// Directory management requires authentication.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hs.UserRepo))
		protected.POST("", hs.Doctors.CreateDoctorHandler)
		protected.PUT("/:id", hs.Doctors.UpdateDoctorHandler)
		protected.DELETE("/:id", hs.Doctors.DeleteDoctorHandler)
	}
}

// RegisterHospitalRoutes registers the hospital directory endpoints.
func RegisterHospitalRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/hospitals")
	{
		api.GET("", hs.Hospitals.ListHospitalsHandler)
		api.GET("/search", hs.Hospitals.SearchHospitalsHandler)
		api.GET("/nearby", hs.Hospitals.NearbyHospitalsHandler)
		api.GET("/:id", hs.Hospitals.GetHospitalHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hs.UserRepo))
		protected.POST("", hs.Hospitals.CreateHospitalHandler)
		protected.PUT("/:id", hs.Hospitals.UpdateHospitalHandler)
		protected.DELETE("/:id", hs.Hospitals.DeleteHospitalHandler)
	}
}

// RegisterAppointmentRoutes registers the booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware(hs.UserRepo))
		api.POST("", hs.Appointments.BookHandler)
		api.GET("", hs.Appointments.ListHandler)
		api.GET("/:id", hs.Appointments.GetHandler)
		api.DELETE("/:id", hs.Appointments.CancelHandler)
	}
}

// RegisterPaymentRoutes registers the payment endpoints. The webhook route
// stays public: providers authenticate through signatures, not sessions.
func RegisterPaymentRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/payments")
	{
		api.GET("/methods", hs.Payments.ListMethodsHandler)
		api.POST("/webhook/:provider", hs.Payments.WebhookHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hs.UserRepo))
		protected.POST("/create-intent", hs.Payments.CreateIntentHandler)
		protected.POST("/confirm", hs.Payments.ConfirmHandler)
		protected.POST("/confirm-mock", hs.Payments.ConfirmMockHandler)
		protected.GET("/status/:appointmentId", hs.Payments.StatusHandler)
	}
}

// RegisterMedicineRoutes registers the drug label lookup endpoint.
func RegisterMedicineRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/medicines")
	{
		api.GET("/search", hs.Medicines.SearchHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm MedDirect"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hs *HandlerSet) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hs)
	RegisterDoctorRoutes(r, hs)
	RegisterHospitalRoutes(r, hs)
	RegisterAppointmentRoutes(r, hs)
	RegisterPaymentRoutes(r, hs)
	RegisterMedicineRoutes(r, hs)
	RegisterHealthRoute(r)
}
