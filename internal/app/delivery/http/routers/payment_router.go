package routers

import (
	"time"

	"medipoint-service/internal/app/config"
	"medipoint-service/internal/app/delivery/http/controllers"
	"medipoint-service/internal/app/delivery/http/middlewares"
	"medipoint-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(router chi.Router, mw *middlewares.Middlewares, internalConfig *config.InternalConfig, paymentController *controllers.PaymentController) {
	// Payment routes get their own per-IP limiter on top of the global one.
	paymentLimiter := middlewares.NewRateLimiter(internalConfig.Booking.PaymentRateLimitPerSecond, time.Second, time.Minute)

	router.Use(paymentLimiter.Limit)
	router.With(mw.Authenticate, mw.RequireRoles(constvars.RolePatient, constvars.RoleAdmin)).Post("/order", paymentController.CreateOrder)
	router.With(mw.Authenticate, mw.RequireRoles(constvars.RolePatient, constvars.RoleAdmin)).Post("/verify", paymentController.VerifyPayment)
}
