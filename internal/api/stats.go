package api

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

func (s *Server) addStatsRoutes(router *httprouter.Router) {
	router.GET("/api/clubs/:clubid/stats", s.clubStats)
	router.GET("/api/clubs/:clubid/stats/bookings", s.bookingStats)
}

func (s *Server) clubStats(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	stats, err := s.stats.ClubStats(r.Context(), ps.ByName("clubid"), time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, stats)
}

func (s *Server) bookingStats(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	stats, err := s.stats.BookingStats(r.Context(), ps.ByName("clubid"), time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, stats)
}
