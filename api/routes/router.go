package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/renewbay/renewbay-backend/api/controllers"
	"github.com/renewbay/renewbay-backend/api/middleware"
	"github.com/renewbay/renewbay-backend/internal/auth"
	"github.com/renewbay/renewbay-backend/internal/catalog"
	"github.com/renewbay/renewbay-backend/internal/orders"
	"github.com/renewbay/renewbay-backend/internal/repairs"
	"github.com/renewbay/renewbay-backend/internal/sellrequests"
	"github.com/renewbay/renewbay-backend/pkg/config"
	"github.com/renewbay/renewbay-backend/pkg/db"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	"github.com/renewbay/renewbay-backend/pkg/logger"
	"github.com/renewbay/renewbay-backend/pkg/metrics"
	"github.com/renewbay/renewbay-backend/pkg/redis"
	"github.com/renewbay/renewbay-backend/pkg/uploads"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	authService auth.Service,
	catalogService catalog.Service,
	ordersService orders.Service,
	repairsService repairs.Service,
	sellRequestsService sellrequests.Service,
	uploadSink uploads.Sink,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		metrics.HTTPMiddleware,
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.Register(authService, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(catalogService, logg))
		r.Get("/featured", controllers.ListFeaturedProducts(catalogService, logg))
		r.Get("/categories", controllers.ListCategories(catalogService, logg))
		r.Get("/{productID}", controllers.GetProduct(catalogService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.CreateOrder(ordersService, logg))
			r.Get("/", controllers.ListMyOrders(ordersService, logg))
		})
		r.Route("/repairs", func(r chi.Router) {
			r.Post("/", controllers.CreateRepairTicket(repairsService, logg))
			r.Get("/", controllers.ListMyRepairTickets(repairsService, logg))
		})
		r.Route("/sell-requests", func(r chi.Router) {
			r.Post("/", controllers.CreateSellRequest(sellRequestsService, logg))
			r.Get("/", controllers.ListMySellRequests(sellRequestsService, logg))
		})
		r.Post("/uploads", controllers.UploadImage(uploadSink, cfg.Uploads, logg))
	})

	r.Route("/api/staff/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireStaff(logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(catalogService, logg))
			r.Patch("/{productID}", controllers.UpdateProduct(catalogService, logg))
			r.Post("/{productID}/stock", controllers.AdjustProductStock(catalogService, logg))
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(ordersService, logg))
			r.Get("/{orderID}", controllers.GetOrder(ordersService, logg))
			r.Post("/{orderID}/approve", controllers.ApproveOrder(ordersService, logg))
			r.Post("/{orderID}/decline", controllers.DeclineOrder(ordersService, logg))
		})
		r.Route("/repairs", func(r chi.Router) {
			r.Get("/", controllers.ListRepairTickets(repairsService, logg))
			r.Get("/{ticketID}", controllers.GetRepairTicket(repairsService, logg))
			r.Post("/{ticketID}/status", controllers.SetRepairStatus(repairsService, logg))
			r.Post("/{ticketID}/schedule", controllers.ScheduleRepair(repairsService, logg))
			r.Post("/{ticketID}/contact", controllers.SetRepairContacted(repairsService, logg))
			r.Post("/{ticketID}/assign", controllers.AssignRepair(repairsService, logg))
		})
		r.Route("/sell-requests", func(r chi.Router) {
			r.Get("/", controllers.ListSellRequests(sellRequestsService, logg))
			r.Get("/{requestID}", controllers.GetSellRequest(sellRequestsService, logg))
			r.Post("/{requestID}/reject", controllers.RejectSellRequest(sellRequestsService, logg))
			r.Post("/{requestID}/convert", controllers.ConvertSellRequest(sellRequestsService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.RoleAdmin, logg))

		r.Post("/users/role", controllers.SetRole(authService, logg))
	})

	return r
}
