package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medipoint-service/internal/app/config"
	"medipoint-service/internal/app/delivery/http/controllers"
	"medipoint-service/internal/app/delivery/http/middlewares"
	"medipoint-service/internal/app/delivery/http/routers"
	"medipoint-service/internal/app/drivers/database"
	"medipoint-service/internal/app/drivers/logger"
	"medipoint-service/internal/app/drivers/messaging"
	"medipoint-service/internal/app/services/appointments"
	"medipoint-service/internal/app/services/doctors"
	"medipoint-service/internal/app/services/patients"
	"medipoint-service/internal/app/services/payments"
	"medipoint-service/internal/app/services/shared/locker"
	"medipoint-service/internal/app/services/shared/notifyqueue"
	"medipoint-service/internal/app/services/shared/payment_gateway"
	"medipoint-service/internal/app/services/shared/redis"
	"medipoint-service/internal/app/services/shared/sessions"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConn := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoClient.Database(driverConfig.MongoDB.DbName),
		MongoClient:    mongoClient,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQConn,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Error closing application resources: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	sessionService := sessions.NewSessionService(redisRepository)

	// Messaging
	notificationPublisher, err := notifyqueue.NewNotifyQueueService(
		bootstrap.RabbitMQ,
		bootstrap.Logger,
		bootstrap.InternalConfig.App.RabbitMQNotificationQueue,
	)
	if err != nil {
		logrus.Fatalf("Failed to initialize notification queue: %v", err)
	}

	// Payment gateway
	paymentGateway := payment_gateway.NewRazorpayService(bootstrap.InternalConfig)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(sessionService, bootstrap.InternalConfig, bootstrap.Logger)

	// Repositories
	dbName := bootstrap.DriverConfig.MongoDB.DbName
	doctorMongoRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoClient, dbName)
	patientMongoRepository := patients.NewPatientMongoRepository(bootstrap.MongoClient, dbName)
	appointmentMongoRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoClient, dbName)

	// Usecases
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentMongoRepository,
		doctorMongoRepository,
		patientMongoRepository,
		doctorMongoRepository,
		lockerService,
		notificationPublisher,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	doctorUsecase := doctors.NewDoctorUsecase(
		doctorMongoRepository,
		patientMongoRepository,
		appointmentMongoRepository,
		bootstrap.Logger,
	)
	paymentUsecase := payments.NewPaymentUsecase(
		appointmentMongoRepository,
		paymentGateway,
		lockerService,
		notificationPublisher,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)

	// Controllers
	doctorController := controllers.NewDoctorController(bootstrap.Logger, doctorUsecase)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase)
	paymentController := controllers.NewPaymentController(bootstrap.Logger, paymentUsecase)
	adminController := controllers.NewAdminController(bootstrap.Logger, doctorUsecase, appointmentUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		doctorController,
		appointmentController,
		paymentController,
		adminController,
	)
}
