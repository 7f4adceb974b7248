package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meddirect/config"
	"meddirect/cron"
	"meddirect/database"
	appointmentRepoPkg "meddirect/database/repository/appointment"
	doctorRepoPkg "meddirect/database/repository/doctor"
	hospitalRepoPkg "meddirect/database/repository/hospital"
	userRepoPkg "meddirect/database/repository/user"
	"meddirect/handlers"
	"meddirect/middleware"
	"meddirect/routes"
	"meddirect/services/appointment"
	"meddirect/services/doctor"
	"meddirect/services/hospital"
	"meddirect/services/medicine"
	"meddirect/services/notification"
	"meddirect/services/payment"
	"meddirect/services/tasks"
	"meddirect/services/user"
	"meddirect/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	hospitalRepo := hospitalRepoPkg.NewMongoHospitalRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()

	// Background mail queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	queue := &tasks.AsynqEnqueuer{Client: asynqClient}

	emailSender := notification.NewSMTPSender()
	cron.InitEmailWorker(emailSender)

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}
	doctorService := &doctor.DefaultDoctorService{Repo: doctorRepo}
	hospitalService := &hospital.DefaultHospitalService{Repo: hospitalRepo}
	bookingService := &appointment.DefaultBookingService{
		Appointments: appointmentRepo,
		Doctors:      doctorRepo,
		Users:        userRepo,
		Queue:        queue,
	}

	registry := payment.BuildRegistry(config.AppConfig)
	paymentService := &payment.DefaultPaymentService{
		Appointments: appointmentRepo,
		Doctors:      doctorRepo,
		Users:        userRepo,
		Registry:     registry,
		Resolver:     payment.NewMethodResolver(registry),
		Queue:        queue,
	}

	medicineService := medicine.NewMedicineService(utils.GetCacheClient())

	// Assemble the handler set.
	handlerSet := &routes.HandlerSet{
		UserRepo:     userRepo,
		Users:        handlers.NewUserHandler(userService),
		Doctors:      handlers.NewDoctorHandler(doctorService),
		Hospitals:    handlers.NewHospitalHandler(hospitalService),
		Appointments: handlers.NewAppointmentHandler(bookingService),
		Payments:     handlers.NewPaymentHandler(paymentService),
		Medicines:    handlers.NewMedicineHandler(medicineService),
	}

	routes.RegisterRoutes(router, handlerSet)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
