package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"cueclub/internal/model"
	"cueclub/internal/service"
)

func (s *Server) addClubRoutes(router *httprouter.Router) {
	router.POST("/api/clubs", s.createClub)
	router.GET("/api/clubs/:clubid", s.getClub)
	router.PUT("/api/clubs/:clubid", s.updateClub)
	router.GET("/api/owners/:ownerid/clubs", s.listOwnerClubs)
	router.POST("/api/clubs/:clubid/tables", s.addTable)
	router.DELETE("/api/clubs/:clubid/tables/:tableid", s.deactivateTable)
	router.POST("/api/clubs/:clubid/menu", s.addMenuItem)
	router.PUT("/api/clubs/:clubid/menu/:itemid", s.updateMenuItem)
	router.PUT("/api/clubs/:clubid/menu/:itemid/availability", s.setMenuAvailability)
	router.POST("/api/clubs/:clubid/staff", s.addStaff)
	router.POST("/api/clubs/:clubid/staff/:staffid/clubs", s.assignStaffClub)
}

func (s *Server) createClub(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in service.CreateClubInput
	if !decodeBody(w, r, &in) {
		return
	}
	club, err := s.registry.CreateClub(r.Context(), in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, club)
}

func (s *Server) getClub(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	club, err := s.registry.GetClub(r.Context(), ps.ByName("clubid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, club)
}

func (s *Server) updateClub(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var upd service.ClubUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	club, err := s.registry.UpdateClub(r.Context(), ps.ByName("clubid"), upd)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, club)
}

func (s *Server) listOwnerClubs(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	clubs, err := s.registry.ListClubsForOwner(r.Context(), ps.ByName("ownerid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, clubs)
}

type addTableRequest struct {
	Number      int    `json:"number"`
	RatePerHour int64  `json:"ratePerHour"`
	Description string `json:"description"`
}

func (s *Server) addTable(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req addTableRequest
	if !decodeBody(w, r, &req) {
		return
	}
	club, err := s.registry.AddTable(r.Context(), ps.ByName("clubid"), req.Number, req.RatePerHour, req.Description)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, club)
}

func (s *Server) deactivateTable(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	club, err := s.registry.DeactivateTable(r.Context(), ps.ByName("clubid"), ps.ByName("tableid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, club)
}

func (s *Server) addMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in service.MenuItemInput
	if !decodeBody(w, r, &in) {
		return
	}
	club, err := s.registry.AddMenuItem(r.Context(), ps.ByName("clubid"), in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, club)
}

func (s *Server) updateMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var upd service.MenuItemUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	club, err := s.registry.UpdateMenuItem(r.Context(), ps.ByName("clubid"), ps.ByName("itemid"), upd)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, club)
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

func (s *Server) setMenuAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req availabilityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	club, err := s.registry.SetMenuItemAvailability(r.Context(), ps.ByName("clubid"), ps.ByName("itemid"), req.Available)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, club)
}

func (s *Server) addStaff(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var member model.StaffMember
	if !decodeBody(w, r, &member) {
		return
	}
	club, err := s.registry.AddStaff(r.Context(), ps.ByName("clubid"), member)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, club)
}

type assignClubRequest struct {
	ClubID string `json:"clubId"`
}

func (s *Server) assignStaffClub(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req assignClubRequest
	if !decodeBody(w, r, &req) {
		return
	}
	club, err := s.registry.AssignStaffClub(r.Context(), ps.ByName("clubid"), ps.ByName("staffid"), req.ClubID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, club)
}
