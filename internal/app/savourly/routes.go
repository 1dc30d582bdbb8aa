// Package savourly предоставляет маршруты для основного приложения.
package savourly

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/PraneshMithun-cse/Savorly/internal/credentials"
	consultationcreate "github.com/PraneshMithun-cse/Savorly/internal/http/handlers/consultation/create"
	consultationlist "github.com/PraneshMithun-cse/Savorly/internal/http/handlers/consultation/list"
	"github.com/PraneshMithun-cse/Savorly/internal/http/handlers/consultation/updatestatus"
	credentialadd "github.com/PraneshMithun-cse/Savorly/internal/http/handlers/credential/add"
	credentiallist "github.com/PraneshMithun-cse/Savorly/internal/http/handlers/credential/list"
	credentialremove "github.com/PraneshMithun-cse/Savorly/internal/http/handlers/credential/remove"
	"github.com/PraneshMithun-cse/Savorly/internal/http/handlers/health"
	helpcreate "github.com/PraneshMithun-cse/Savorly/internal/http/handlers/help/create"
	helplist "github.com/PraneshMithun-cse/Savorly/internal/http/handlers/help/list"
	helpupdate "github.com/PraneshMithun-cse/Savorly/internal/http/handlers/help/update"
	"github.com/PraneshMithun-cse/Savorly/internal/http/handlers/notify"
	orderclear "github.com/PraneshMithun-cse/Savorly/internal/http/handlers/order/clear"
	ordercreate "github.com/PraneshMithun-cse/Savorly/internal/http/handlers/order/create"
	"github.com/PraneshMithun-cse/Savorly/internal/http/handlers/order/customers"
	orderlist "github.com/PraneshMithun-cse/Savorly/internal/http/handlers/order/list"
	"github.com/PraneshMithun-cse/Savorly/internal/http/handlers/order/listown"
	orderread "github.com/PraneshMithun-cse/Savorly/internal/http/handlers/order/read"
	"github.com/PraneshMithun-cse/Savorly/internal/http/handlers/order/stats"
	"github.com/PraneshMithun-cse/Savorly/internal/http/handlers/order/transition"
	"github.com/PraneshMithun-cse/Savorly/internal/http/handlers/plan/plancreate"
	"github.com/PraneshMithun-cse/Savorly/internal/http/handlers/plan/planlist"
	"github.com/PraneshMithun-cse/Savorly/internal/http/handlers/plan/planremove"
	"github.com/PraneshMithun-cse/Savorly/internal/http/handlers/plan/planupdate"
	"github.com/PraneshMithun-cse/Savorly/internal/http/middlewarectx"
	jwtlib "github.com/PraneshMithun-cse/Savorly/internal/lib/jwt"
	"github.com/PraneshMithun-cse/Savorly/internal/models"
	consultationservice "github.com/PraneshMithun-cse/Savorly/internal/services/consultation"
	helpservice "github.com/PraneshMithun-cse/Savorly/internal/services/help"
	notifyservice "github.com/PraneshMithun-cse/Savorly/internal/services/notify"
	orderservice "github.com/PraneshMithun-cse/Savorly/internal/services/order"
	planservice "github.com/PraneshMithun-cse/Savorly/internal/services/plan"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, maker jwtlib.Maker,
	credStore *credentials.Store,
	orderService *orderservice.OrderService,
	planService *planservice.PlanService,
	consultationService *consultationservice.ConsultationService,
	helpService *helpservice.HelpService,
	notifyService *notifyservice.NotifyService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/health", health.New(logger).ServeHTTP)
			r.Get("/plans", planlist.New(logger, planService).ServeHTTP)
			r.Post("/consultations", consultationcreate.New(logger, consultationService).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(maker, credStore, logger))

			// Любая аутентифицированная роль
			r.Post("/orders", ordercreate.New(logger, orderService).ServeHTTP)
			r.Get("/orders/my", listown.New(logger, orderService).ServeHTTP)
			r.Post("/help", helpcreate.New(logger, helpService).ServeHTTP)

			// Персонал: stats и список раньше параметрического маршрута
			r.With(middlewarectx.RequireRole(logger, models.RoleAdmin)).
				Get("/orders/stats", stats.New(logger, orderService).ServeHTTP)
			r.With(middlewarectx.RequireRole(logger, models.RoleAdmin, models.RoleDelivery)).
				Get("/orders", orderlist.New(logger, orderService).ServeHTTP)
			r.Get("/orders/{id}", orderread.New(logger, orderService).ServeHTTP)
			r.With(middlewarectx.RequireRole(logger, models.RoleAdmin, models.RoleDelivery)).
				Patch("/orders/{id}/status", transition.New(logger, orderService).ServeHTTP)

			// Каталог планов правит только администратор
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))
				r.Post("/plans", plancreate.New(logger, planService).ServeHTTP)
				r.Patch("/plans/{id}", planupdate.New(logger, planService).ServeHTTP)
				r.Delete("/plans/{id}", planremove.New(logger, planService).ServeHTTP)
			})

			// Административный контур
			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))
				r.Delete("/orders", orderclear.New(logger, orderService).ServeHTTP)
				r.Get("/customers", customers.New(logger, orderService).ServeHTTP)
				r.Get("/consultations", consultationlist.New(logger, consultationService).ServeHTTP)
				r.Patch("/consultations/{id}/status", updatestatus.New(logger, consultationService).ServeHTTP)
				r.Get("/help", helplist.New(logger, helpService).ServeHTTP)
				r.Patch("/help/{id}", helpupdate.New(logger, helpService).ServeHTTP)
				r.Get("/credentials", credentiallist.New(logger, credStore).ServeHTTP)
				r.Post("/credentials", credentialadd.New(logger, credStore).ServeHTTP)
				r.Delete("/credentials", credentialremove.New(logger, credStore).ServeHTTP)
				r.Post("/notify", notify.New(logger, notifyService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
