// Package api is the HTTP surface: a gin router over the auth and
// return services.
package api

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sthanna/UsTaxesFree/internal/auth"
	"github.com/sthanna/UsTaxesFree/internal/observability/metrics"
	"github.com/sthanna/UsTaxesFree/internal/service"
)

// Handler bundles the services the routes dispatch to.
type Handler struct {
	Auth      *service.AuthService
	Returns   *service.ReturnService
	Users     service.UserStore
	JWTSecret []byte
}

// NewHandler constructs a handler.
func NewHandler(authSvc *service.AuthService, returnSvc *service.ReturnService, users service.UserStore, jwtSecret []byte) *Handler {
	return &Handler{
		Auth:      authSvc,
		Returns:   returnSvc,
		Users:     users,
		JWTSecret: jwtSecret,
	}
}

// NewRouter builds the full route table.
func NewRouter(h *Handler) *gin.Engine {
	metrics.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(metricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", h.Register)
	v1.POST("/auth/login", h.Login)

	protected := v1.Group("")
	protected.Use(auth.EnsureValidToken(h.JWTSecret))

	protected.POST("/returns", h.CreateReturn)
	protected.GET("/returns", h.ListReturns)
	protected.GET("/returns/:id", h.GetReturn)
	protected.DELETE("/returns/:id", h.DeleteReturn)

	protected.POST("/returns/:id/w2s", h.AddW2)
	protected.GET("/returns/:id/w2s", h.ListW2s)
	protected.DELETE("/returns/:id/w2s/:docId", h.DeleteW2)

	protected.POST("/returns/:id/form1099s", h.Add1099)
	protected.GET("/returns/:id/form1099s", h.List1099s)
	protected.DELETE("/returns/:id/form1099s/:docId", h.Delete1099)

	protected.POST("/returns/:id/transactions", h.AddTransaction)
	protected.GET("/returns/:id/transactions", h.ListTransactions)
	protected.DELETE("/returns/:id/transactions/:docId", h.DeleteTransaction)

	protected.POST("/returns/:id/dependents", h.AddDependent)
	protected.GET("/returns/:id/dependents", h.ListDependents)
	protected.DELETE("/returns/:id/dependents/:docId", h.DeleteDependent)

	protected.PUT("/returns/:id/schedule1", h.UpdateSchedule1)
	protected.PUT("/returns/:id/payments", h.UpdatePayments)
	protected.PUT("/returns/:id/schedule-a", h.SetItemized)
	protected.DELETE("/returns/:id/schedule-a", h.ClearItemized)

	protected.POST("/returns/:id/calculate", h.Calculate)
	protected.GET("/returns/:id/pdf", h.DownloadPDF)
	protected.GET("/returns/:id/xlsx", h.DownloadXLSX)
	protected.GET("/returns/:id/efile", h.DownloadEfile)

	return router
}

func corsMiddleware() gin.HandlerFunc {
	config := cors.DefaultConfig()

	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		config.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		origins := strings.Split(originsEnv, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		config.AllowOrigins = origins
	}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")

	return cors.New(config)
}
