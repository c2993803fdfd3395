package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("orders", "/orders")
	group.GET("/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})
	r.Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/orders/42")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/orders/42").Code)
}

func TestRouterUse_OnlyWrapsAPI(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	r := NewRouter(engine)
	r.Use(func(c *gin.Context) {
		c.Header("X-Api", "1")
		c.Next()
	})
	g := NewDomainGroup("reports", "/reports")
	g.GET("/sales", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.Register(g).Setup()

	assert.Equal(t, "1", serve(engine, http.MethodGet, "/api/v1/reports/sales").Header().Get("X-Api"))
	assert.Empty(t, serve(engine, http.MethodGet, "/health").Header().Get("X-Api"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("catalog", "/products")
		assert.Equal(t, "catalog", g.Name())
		assert.Equal(t, "/products", g.Prefix())
	})

	t.Run("every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		g := NewDomainGroup("imports", "/imports")
		g.GET("", ok).
			POST("", ok).
			PUT("/:id", ok).
			PATCH("/:id", ok).
			DELETE("/:id", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		tests := []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/api/v1/imports"},
			{http.MethodPost, "/api/v1/imports"},
			{http.MethodPut, "/api/v1/imports/1"},
			{http.MethodPatch, "/api/v1/imports/1"},
			{http.MethodDelete, "/api/v1/imports/1"},
		}
		for _, tt := range tests {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
			assert.Equal(t, tt.method, w.Body.String())
		}
	})

	t.Run("middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("finance", "")
		g.Use(func(c *gin.Context) {
			c.Header("X-Group", "finance")
			c.Next()
		})
		g.POST("/transactions", func(c *gin.Context) { c.Status(http.StatusCreated) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodPost, "/api/v1/transactions")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "finance", w.Header().Get("X-Group"))
	})

	t.Run("subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("inventory", "/inventory")
		g.Group("report", "/report").GET("/by-date", func(c *gin.Context) {
			c.String(http.StatusOK, "by-date")
		})
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/inventory/report/by-date")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "by-date", w.Body.String())
	})
}
