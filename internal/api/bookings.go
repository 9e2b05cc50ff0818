package api

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"cueclub/internal/model"
	"cueclub/internal/service"
)

func (s *Server) addBookingRoutes(router *httprouter.Router) {
	router.POST("/api/clubs/:clubid/bookings", s.createBooking)
	router.GET("/api/clubs/:clubid/bookings", s.listBookings)
	router.GET("/api/clubs/:clubid/bookings/:bookingid", s.getBooking)
	router.PUT("/api/clubs/:clubid/bookings/:bookingid", s.updateBooking)
	router.POST("/api/clubs/:clubid/bookings/:bookingid/cancel", s.cancelBooking)
	router.POST("/api/clubs/:clubid/bookings/:bookingid/complete", s.completeBooking)
	router.POST("/api/clubs/:clubid/bookings/:bookingid/noshow", s.markNoShow)
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in service.CreateBookingInput
	if !decodeBody(w, r, &in) {
		return
	}
	in.ClubID = ps.ByName("clubid")
	result, err := s.bookings.CreateBooking(r.Context(), in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, result)
}

// listBookings returns a club's bookings ascending by start time. A
// `date` query param (RFC 3339 or 2006-01-02) restricts to one local
// day; `tableId` and `status` filter further.
func (s *Server) listBookings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	clubID := ps.ByName("clubid")
	q := r.URL.Query()

	if raw := q.Get("date"); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, "invalid date")
			return
		}
		bookings, err := s.bookings.ListBookingsForDate(r.Context(), clubID, date)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		RespondWithJSON(w, http.StatusOK, bookings)
		return
	}

	filter := model.BookingFilter{
		TableID: q.Get("tableId"),
		Status:  q.Get("status"),
	}
	bookings, err := s.bookings.ListBookings(r.Context(), clubID, filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, bookings)
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

func (s *Server) getBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := s.bookings.GetBooking(r.Context(), ps.ByName("clubid"), ps.ByName("bookingid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, booking)
}

func (s *Server) updateBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var upd service.BookingUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	booking, err := s.bookings.UpdateBooking(r.Context(), ps.ByName("clubid"), ps.ByName("bookingid"), upd)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, booking)
}

type cancelRequest struct {
	Reason      string `json:"reason"`
	CancelledBy string `json:"cancelledBy"`
}

func (s *Server) cancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req cancelRequest
	if !decodeBody(w, r, &req) {
		return
	}
	booking, err := s.bookings.CancelBooking(r.Context(), ps.ByName("clubid"), ps.ByName("bookingid"), req.Reason, req.CancelledBy)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, booking)
}

func (s *Server) completeBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := s.bookings.CompleteBooking(r.Context(), ps.ByName("clubid"), ps.ByName("bookingid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, booking)
}

func (s *Server) markNoShow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := s.bookings.MarkNoShow(r.Context(), ps.ByName("clubid"), ps.ByName("bookingid"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, booking)
}
