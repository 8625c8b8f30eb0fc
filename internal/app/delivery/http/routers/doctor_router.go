package routers

import (
	"medipoint-service/internal/app/delivery/http/controllers"
	"medipoint-service/internal/app/delivery/http/middlewares"
	"medipoint-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, middlewares *middlewares.Middlewares, doctorController *controllers.DoctorController) {
	router.Get("/", doctorController.FindAll)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleDoctor)).Post("/availability", doctorController.ToggleAvailability)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleDoctor)).Get("/dashboard", doctorController.Dashboard)
}
