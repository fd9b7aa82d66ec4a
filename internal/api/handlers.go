package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eaugusto/vendas/dao"
	"github.com/eaugusto/vendas/domain"
	"github.com/eaugusto/vendas/sqlp"
)

// store is what the generic accessors offer per entity type.
type store[E sqlp.Persistable] interface {
	Create(ctx context.Context, e E) (int64, error)
	FetchByCode(ctx context.Context, code string) (*E, error)
	FetchAll(ctx context.Context) ([]E, error)
	Update(ctx context.Context, e E) (int64, error)
	Delete(ctx context.Context, e E) (int64, error)
}

// GET    /                list
// POST   /                create
// GET    /:code           fetch one
// PUT    /:code           update, the path code wins over the body's
// DELETE /:code           delete
func codeRoutes[E sqlp.Persistable](g *gin.RouterGroup, s store[E], setCode func(*E, string), logger *zap.Logger) {
	g.GET("", func(c *gin.Context) {
		all, err := s.FetchAll(c.Request.Context())
		if err != nil {
			fail(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, all)
	})

	g.POST("", func(c *gin.Context) {
		var e E
		if err := c.ShouldBindJSON(&e); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		if _, err := s.Create(c.Request.Context(), e); err != nil {
			fail(c, logger, err)
			return
		}
		created, err := s.FetchByCode(c.Request.Context(), e.EntityCode())
		if err != nil {
			fail(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	g.GET("/:code", func(c *gin.Context) {
		found, err := s.FetchByCode(c.Request.Context(), c.Param("code"))
		if err != nil {
			fail(c, logger, err)
			return
		}
		if found == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, found)
	})

	g.PUT("/:code", func(c *gin.Context) {
		var e E
		if err := c.ShouldBindJSON(&e); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		setCode(&e, c.Param("code"))
		n, err := s.Update(c.Request.Context(), e)
		if err != nil {
			fail(c, logger, err)
			return
		}
		if n == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		updated, err := s.FetchByCode(c.Request.Context(), e.EntityCode())
		if err != nil {
			fail(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	g.DELETE("/:code", func(c *gin.Context) {
		var e E
		setCode(&e, c.Param("code"))
		n, err := s.Delete(c.Request.Context(), e)
		if err != nil {
			fail(c, logger, err)
			return
		}
		if n == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Status(http.StatusNoContent)
	})
}

////////////////////////////////////////////////////////////////////////////////
// Inventory

// GET /inventory?clientId=&productId=
func ListInventoryHandler(inventory *dao.InventoryDAO, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter dao.InventoryFilter
		var ok bool
		if filter.ClientID, ok = queryID(c, "clientId"); !ok {
			return
		}
		if filter.ProductID, ok = queryID(c, "productId"); !ok {
			return
		}
		entries, err := inventory.Search(c.Request.Context(), filter)
		if err != nil {
			fail(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// POST /inventory
func RegisterInventoryHandler(inventory *dao.InventoryDAO, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var inv domain.Inventory
		if err := c.ShouldBindJSON(&inv); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		if _, err := inventory.Register(c.Request.Context(), inv); err != nil {
			fail(c, logger, err)
			return
		}
		c.Status(http.StatusCreated)
	}
}

// GET /inventory/sales
func SalesByClientHandler(inventory *dao.InventoryDAO, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sales, err := inventory.SalesByClient(c.Request.Context())
		if err != nil {
			fail(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, sales)
	}
}

// DELETE /inventory/:id
func DeleteInventoryHandler(inventory *dao.InventoryDAO, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
			return
		}
		n, err := inventory.DeleteByID(c.Request.Context(), id)
		if err != nil {
			fail(c, logger, err)
			return
		}
		if n == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

////////////////////////////////////////////////////////////////////////////////

func queryID(c *gin.Context, key string) (int64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": key + " must be an integer"})
		return 0, false
	}
	return id, true
}

// fail responds with the status matching err's kind.
func fail(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sqlp.ErrParameter):
		return http.StatusBadRequest
	case errors.Is(err, sqlp.ErrConnection):
		return http.StatusServiceUnavailable
	}
	// mapping and storage failures
	return http.StatusInternalServerError
}
