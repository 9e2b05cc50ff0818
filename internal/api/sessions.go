package api

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

func (s *Server) addSessionRoutes(router *httprouter.Router) {
	router.POST("/api/clubs/:clubid/sessions", s.startSession)
	router.GET("/api/clubs/:clubid/sessions", s.listSessions)
	router.POST("/api/clubs/:clubid/sessions/:sessionid/end", s.endSession)
	router.POST("/api/clubs/:clubid/sessions/:sessionid/food", s.orderFood)
	router.POST("/api/clubs/:clubid/sessions/:sessionid/pay", s.paySession)
	router.GET("/api/clubs/:clubid/tables/status", s.tableStatuses)
}

type startSessionRequest struct {
	TableID    string     `json:"tableId"`
	PlayerName string     `json:"playerName"`
	StartTime  *time.Time `json:"startTime,omitempty"`
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req startSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	start := time.Now()
	if req.StartTime != nil {
		start = *req.StartTime
	}
	session, err := s.sessions.StartSession(r.Context(), ps.ByName("clubid"), req.TableID, req.PlayerName, start)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, session)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessions, err := s.sessions.ListSessions(r.Context(), ps.ByName("clubid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, sessions)
}

func (s *Server) endSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := s.sessions.EndSession(r.Context(), ps.ByName("clubid"), ps.ByName("sessionid"), time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, session)
}

type orderFoodRequest struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

func (s *Server) orderFood(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req orderFoodRequest
	if !decodeBody(w, r, &req) {
		return
	}
	session, err := s.sessions.OrderFood(r.Context(), ps.ByName("clubid"), ps.ByName("sessionid"), req.MenuItemID, req.Quantity)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, session)
}

type paySessionRequest struct {
	PlayerID string `json:"playerId"`
	Method   string `json:"method"`
}

func (s *Server) paySession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req paySessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	session, err := s.wallet.PaySession(r.Context(), ps.ByName("clubid"), ps.ByName("sessionid"), req.PlayerID, req.Method)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, session)
}

func (s *Server) tableStatuses(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	statuses, err := s.sessions.TableStatuses(r.Context(), ps.ByName("clubid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, statuses)
}
