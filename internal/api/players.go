package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"cueclub/internal/service"
)

func (s *Server) addPlayerRoutes(router *httprouter.Router) {
	router.POST("/api/clubs/:clubid/players", s.addPlayer)
	router.GET("/api/clubs/:clubid/players", s.listPlayers)
	router.GET("/api/clubs/:clubid/players/:playerid", s.getPlayer)
	router.POST("/api/clubs/:clubid/players/:playerid/topup", s.topUp)
	router.POST("/api/clubs/:clubid/players/:playerid/spend", s.spend)
}

func (s *Server) addPlayer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in service.AddPlayerInput
	if !decodeBody(w, r, &in) {
		return
	}
	player, err := s.wallet.AddPlayer(r.Context(), ps.ByName("clubid"), in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, player)
}

func (s *Server) listPlayers(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	players, err := s.wallet.ListPlayers(r.Context(), ps.ByName("clubid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, players)
}

func (s *Server) getPlayer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	player, err := s.wallet.GetPlayer(r.Context(), ps.ByName("clubid"), ps.ByName("playerid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, player)
}

type topUpRequest struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
}

func (s *Server) topUp(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req topUpRequest
	if !decodeBody(w, r, &req) {
		return
	}
	player, err := s.wallet.TopUp(r.Context(), ps.ByName("clubid"), ps.ByName("playerid"), req.Amount, req.Method)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, player)
}

type spendRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

func (s *Server) spend(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req spendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	player, err := s.wallet.Spend(r.Context(), ps.ByName("clubid"), ps.ByName("playerid"), req.Amount, req.Description)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, player)
}
