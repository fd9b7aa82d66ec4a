package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eaugusto/vendas/dao"
	"github.com/eaugusto/vendas/domain"
)

// NewRouter wires the accessors to HTTP routes.
func NewRouter(clients *dao.ClientDAO, products *dao.ProductDAO, inventory *dao.InventoryDAO, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	codeRoutes[domain.Client](r.Group("/clients"), clients, func(c *domain.Client, code string) { c.Code = code }, logger)
	codeRoutes[domain.Product](r.Group("/products"), products, func(p *domain.Product, code string) { p.Code = code }, logger)

	inv := r.Group("/inventory")
	{
		// static routes first
		inv.GET("/sales", SalesByClientHandler(inventory, logger))
		inv.GET("", ListInventoryHandler(inventory, logger))
		inv.POST("", RegisterInventoryHandler(inventory, logger))
		inv.DELETE("/:id", DeleteInventoryHandler(inventory, logger))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

// RunServer serves r on addr until it fails.
func RunServer(addr string, r *gin.Engine, logger *zap.Logger) error {
	logger.Info("listening", zap.String("addr", addr))
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
