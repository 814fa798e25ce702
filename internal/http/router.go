package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Shoury7/EzyStayBackend/internal/config"
	"github.com/Shoury7/EzyStayBackend/internal/http/handlers"
	"github.com/Shoury7/EzyStayBackend/internal/http/middleware"
	"github.com/Shoury7/EzyStayBackend/internal/mailer"
	"github.com/Shoury7/EzyStayBackend/internal/modules/bookings"
	"github.com/Shoury7/EzyStayBackend/internal/modules/email"
	"github.com/Shoury7/EzyStayBackend/internal/modules/listings"
	"github.com/Shoury7/EzyStayBackend/internal/modules/orders"
	"github.com/Shoury7/EzyStayBackend/internal/modules/payments"
	"github.com/Shoury7/EzyStayBackend/internal/modules/summary"
	"github.com/Shoury7/EzyStayBackend/internal/modules/users"
	"github.com/Shoury7/EzyStayBackend/internal/storage"
)

func NewRouter(logger *slog.Logger, db *gorm.DB, cfg config.Config, store storage.Storage, mail mailer.Service) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.ErrorHandler(logger),
	)

	userRepo := users.NewRepo(db)
	listingRepo := listings.NewRepo(db)
	reviewRepo := listings.NewReviewRepo(db)
	orderRepo := orders.NewRepo(db)

	authSvc := users.NewAuthService(userRepo, cfg.JWTSecret, cfg.AdminKey,
		time.Duration(cfg.JWTExpireMin)*time.Minute)
	notifier := email.NewNotifier(mail, cfg.SMTP.FromAddr, cfg.SMTP.FromName)
	commitSvc := bookings.NewService(listingRepo, orderRepo, userRepo, notifier,
		[]byte(cfg.Razorpay.KeySecret), logger)

	authH := handlers.NewAuthHandler(authSvc)
	listingsH := handlers.NewListingsHandler(listingRepo, store)
	reviewsH := handlers.NewReviewsHandler(listingRepo, reviewRepo)
	paymentsH := handlers.NewPaymentsHandler(logger, payments.NewClient(cfg.Razorpay), commitSvc)
	ordersH := handlers.NewOrdersHandler(orderRepo)
	summaryH := handlers.NewSummaryHandler(summary.NewService(db))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)
	requireAdmin := middleware.RequireRole(users.RoleAdmin)

	l := api.Group("/listings")
	l.GET("", listingsH.List)
	l.GET("/:id", requireAuth, listingsH.Get)
	l.POST("", requireAuth, requireAdmin, listingsH.Create)
	l.PUT("/:id", requireAuth, requireAdmin, listingsH.Update)
	l.DELETE("/:id", requireAuth, requireAdmin, listingsH.Delete)

	l.POST("/:id/reviews", requireAuth, reviewsH.Add)
	l.GET("/:id/reviews", requireAuth, reviewsH.List)
	l.PUT("/:id/reviews", requireAuth, reviewsH.Update)
	l.DELETE("/:id/reviews", requireAuth, reviewsH.Delete)

	pay := api.Group("/payments")
	pay.POST("/create-order", paymentsH.CreateOrder)
	pay.POST("/verify", paymentsH.Verify)

	api.GET("/orders", requireAuth, ordersH.ListMine)

	api.GET("/summary", requireAuth, requireAdmin, summaryH.Get)

	return r
}
