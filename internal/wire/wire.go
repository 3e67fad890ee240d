// internal/wire/wire.go
package wire

import (
	"encoding/json"
	"net/http"

	"event-booking/internal/data/repository"
	"event-booking/internal/graphql"
	"event-booking/internal/pubsub"
	"event-booking/internal/usecase"
	"event-booking/pkg/middleware"
	"event-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) (*App, error) {
	bus := pubsub.New()
	service := usecase.NewService(repo, bus, config, logger)

	schema, err := graphql.NewSchema(service, bus, logger)
	if err != nil {
		return nil, err
	}

	router := setupRouter(schema, repo, config, logger)

	return &App{
		Router: router,
	}, nil
}

// setupRouter configures the Chi router
func setupRouter(
	schema *graphql.Schema,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))
	r.Use(middleware.Auth(repo.User, config.JWT.Secret, logger))

	r.Post("/graphql", schema.HandleQuery)
	r.Get("/graphql/stream", schema.HandleSubscribe)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		health := repo.HealthCheck(req.Context())

		w.Header().Set("Content-Type", "application/json")
		if health.Status != repository.StatusHealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		if err := json.NewEncoder(w).Encode(health); err != nil {
			logger.Error("Failed to write health response", zap.Error(err))
		}
	})

	return r
}
