// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/memberhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/memberhub/internal/app/features/health"
	membersfeature "github.com/dalemusser/memberhub/internal/app/features/members"
	memberuifeature "github.com/dalemusser/memberhub/internal/app/features/memberui"
	"github.com/dalemusser/memberhub/internal/app/system/httpmw"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It boots the template engine and then
// mounts the JSON API, the browser pages, health and metrics.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	return newRouter(appCfg, deps, logger), nil
}

// newRouter wires every route. It needs no template engine, so tests build
// it directly.
func newRouter(appCfg AppConfig, deps DBDeps, logger *zap.Logger) chi.Router {
	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	r.Use(httpmw.RequestID)
	r.Use(httpmw.Recover(logger))
	r.Use(httpmw.AccessLog(logger))
	if appCfg.MetricsEnabled {
		r.Use(httpmw.Metrics)
		r.Handle("/metrics", promhttp.Handler())
	}

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// JSON API, served at both paths.
	// Body caps are per route inside members.Routes (JSON vs CSV upload).
	membersHandler := membersfeature.NewHandler(deps.Members, errLog, logger)
	membersHandler.MaxBodyBytes = appCfg.MaxBodyBytes
	r.Group(func(api chi.Router) {
		api.Use(httpmw.RateLimit(float64(appCfg.RateLimitRPS), appCfg.RateLimitBurst))
		api.Use(httpmw.ConcurrencyLimit(appCfg.MaxConcurrentRequests))
		api.Mount("/api/members", membersfeature.Routes(membersHandler))
		api.Mount("/members", membersfeature.Routes(membersHandler))
	})

	// Browser pages
	uiHandler := memberuifeature.NewHandler(deps.Members, errLog, logger)
	r.Mount("/", memberuifeature.Routes(uiHandler))

	return r
}
