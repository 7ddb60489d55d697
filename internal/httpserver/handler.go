package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"repo-relay/internal/middleware"
	"repo-relay/internal/model"
	subscriptionHTTP "repo-relay/internal/subscription/delivery/http"
)

// Handler exposes the routed engine, mainly for tests.
func (srv *HTTPServer) Handler() http.Handler {
	return srv.gin
}

func (srv *HTTPServer) mapHandlers() {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "HTTP mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP mode: %s", srv.environment)
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv *HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	srv.gin.POST(srv.webhookPath, srv.webhookHandler.HandleGitHubWebhook)
	srv.l.Infof(ctx, "GitHub webhook route registered at POST %s", srv.webhookPath)

	if srv.authHandler != nil {
		srv.gin.GET("/auth", srv.authHandler.HandleCallback)
		srv.l.Infof(ctx, "OAuth callback route registered at GET /auth")
	} else {
		srv.l.Infof(ctx, "Hook setup not configured, skipping OAuth callback route")
	}

	if srv.subscriptionUC != nil && srv.apiToken != "" {
		srv.setupSubscriptionDomain(ctx, srv.gin.Group("/api/v1"))
	} else {
		srv.l.Infof(ctx, "Operator API token not configured, skipping /api/v1 routes")
	}
}

// setupSubscriptionDomain mounts the operator API for subscriptions.
func (srv *HTTPServer) setupSubscriptionDomain(ctx context.Context, api *gin.RouterGroup) {
	mw := middleware.New(srv.l, srv.apiToken)
	h := subscriptionHTTP.New(srv.l, srv.subscriptionUC, srv.helpPrefix)
	subscriptionHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Subscription domain registered")
}
