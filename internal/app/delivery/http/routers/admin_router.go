package routers

import (
	"medipoint-service/internal/app/delivery/http/controllers"
	"medipoint-service/internal/app/delivery/http/middlewares"
	"medipoint-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAdminRoutes(router chi.Router, middlewares *middlewares.Middlewares, adminController *controllers.AdminController) {
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleAdmin)).Get("/dashboard", adminController.Dashboard)
	router.With(middlewares.Authenticate, middlewares.RequireRoles(constvars.RoleAdmin)).Get("/appointments", adminController.FindAllAppointments)
}
