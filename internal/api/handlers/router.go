// internal/api/handlers/router.go
package handlers

import (
	"fmt"
	"net/http"

	"dre-service/internal/api/views"
	"dre-service/internal/core/auth"
	"dre-service/internal/core/dre"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig reúne as dependências das rotas.
type RouterConfig struct {
	Auth         auth.Service
	DRE          dre.Service
	CookieName   string
	CookieSecure bool
	CardsPerRow  int
	Logger       *zap.Logger
}

// NewRouter monta o roteador do painel.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = auth.DefaultCookieName
	}

	tmpl, err := views.Load()
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar templates: %w", err)
	}

	authHandler := NewAuthHandler(cfg.Auth, cfg.CookieName, cfg.CookieSecure)
	dashboardHandler := NewDashboardHandler(cfg.DRE, cfg.CardsPerRow)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(cfg.Logger))
	router.SetHTMLTemplate(tmpl)

	router.GET("/", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, "/dre") })
	router.GET("/login", authHandler.LoginPage)
	router.POST("/login", authHandler.LoginForm)
	router.POST("/logout", authHandler.Logout)

	protected := router.Group("/", RequireSession(cfg.Auth, cfg.CookieName))
	{
		protected.GET("/dre", dashboardHandler.Page)
		protected.GET("/dre/export.xlsx", dashboardHandler.ExportXLSX)
		protected.GET("/dre/export.csv", dashboardHandler.ExportCSV)
	}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/login", authHandler.Login)
		apiV1.GET("/dre", RequireSession(cfg.Auth, cfg.CookieName), dashboardHandler.API)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "dre-dashboard"})
	})

	return router, nil
}
