package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"cueclub/internal/model"
)

func (s *Server) addAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/login", s.login)
	router.POST("/api/auth/register", s.register)
	router.GET("/api/users/:userid/clubs", s.availableClubs)
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Credential string `json:"credential"`
	Role       string `json:"role"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	session, err := s.auth.Login(r.Context(), req.Identifier, req.Credential, req.Role)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, session)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var user model.User
	if !decodeBody(w, r, &user) {
		return
	}
	created, err := s.auth.Register(r.Context(), user)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, created)
}

func (s *Server) availableClubs(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, err := s.auth.GetUser(r.Context(), ps.ByName("userid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	clubs, err := s.auth.AvailableClubs(r.Context(), &model.AuthSession{UserID: user.ID, Role: user.Role})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, clubs)
}
