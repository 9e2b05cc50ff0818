package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"cueclub/internal/service"
)

func (s *Server) addInventoryRoutes(router *httprouter.Router) {
	router.POST("/api/clubs/:clubid/inventory", s.addInventoryItem)
	router.GET("/api/clubs/:clubid/inventory", s.listInventory)
	router.GET("/api/clubs/:clubid/inventory/low", s.lowStock)
	router.POST("/api/clubs/:clubid/inventory/:itemid/adjust", s.adjustStock)
}

func (s *Server) addInventoryItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in service.InventoryItemInput
	if !decodeBody(w, r, &in) {
		return
	}
	item, err := s.inventory.AddItem(r.Context(), ps.ByName("clubid"), in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, item)
}

func (s *Server) listInventory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	items, err := s.inventory.ListItems(r.Context(), ps.ByName("clubid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, items)
}

func (s *Server) lowStock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	items, err := s.inventory.LowStock(r.Context(), ps.ByName("clubid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, items)
}

type adjustStockRequest struct {
	Delta int `json:"delta"`
}

func (s *Server) adjustStock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req adjustStockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	item, err := s.inventory.AdjustStock(r.Context(), ps.ByName("clubid"), ps.ByName("itemid"), req.Delta)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, item)
}
