package routers

import (
	"medipoint-service/internal/app/delivery/http/controllers"
	"medipoint-service/internal/app/delivery/http/middlewares"
	"medipoint-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.With(middlewares.Authenticate).Get("/", appointmentController.FindAll)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RolePatient)).Post("/", appointmentController.BookAppointment)
	router.With(middlewares.Authenticate).Post("/{appointmentID}/cancel", appointmentController.CancelAppointment)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleDoctor, constvars.RoleAdmin)).Post("/{appointmentID}/complete", appointmentController.CompleteAppointment)
}
