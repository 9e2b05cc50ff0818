package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"cueclub/internal/service"
)

// Server wires the HTTP surface to the service layer.
type Server struct {
	auth      *service.AuthService
	registry  *service.RegistryService
	bookings  *service.BookingService
	sessions  *service.SessionService
	wallet    *service.WalletService
	ledger    *service.LedgerService
	stats     *service.StatsService
	inventory *service.InventoryService
}

// NewServer creates a new Server instance.
func NewServer(
	auth *service.AuthService,
	registry *service.RegistryService,
	bookings *service.BookingService,
	sessions *service.SessionService,
	wallet *service.WalletService,
	ledger *service.LedgerService,
	stats *service.StatsService,
	inventory *service.InventoryService,
) *Server {
	return &Server{
		auth:      auth,
		registry:  registry,
		bookings:  bookings,
		sessions:  sessions,
		wallet:    wallet,
		ledger:    ledger,
		stats:     stats,
		inventory: inventory,
	}
}

// health is a simple health check handler.
func health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

// Router builds the router with all routes.
func (s *Server) Router() *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", health)

	s.addAuthRoutes(router)
	s.addClubRoutes(router)
	s.addBookingRoutes(router)
	s.addSessionRoutes(router)
	s.addPlayerRoutes(router)
	s.addLedgerRoutes(router)
	s.addStatsRoutes(router)
	s.addInventoryRoutes(router)

	return router
}

// loggingMiddleware logs each request method, path, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.RequestURI).
			Str("remote", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Handler wraps the router with CORS and request logging.
func (s *Server) Handler() http.Handler {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(s.Router())

	return loggingMiddleware(corsHandler)
}
