package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"holidaze-server/models"
	services "holidaze-server/service"
)

// AccountHandler serves sign-in, bookings and profiles.
type AccountHandler struct {
	authService    *services.AuthService
	bookingService *services.BookingService
	venueService   *services.VenueService
}

func NewAccountHandler(
	authService *services.AuthService,
	bookingService *services.BookingService,
	venueService *services.VenueService) *AccountHandler {

	return &AccountHandler{
		authService:    authService,
		bookingService: bookingService,
		venueService:   venueService,
	}
}

// Register handles POST /v1/auth/register. It does not sign in.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	profile, err := h.authService.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.ProfileResponse{Data: *profile})
}

// Login handles POST /v1/auth/login. The token stays server side.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	profile, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	out := *profile
	out.AccessToken = ""
	writeJSON(w, http.StatusOK, models.ProfileResponse{Data: out})
}

// Logout handles POST /v1/auth/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createBookingRequest struct {
	VenueID  string `json:"venueId"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Guests   int    `json:"guests"`
}

// CreateBooking handles POST /v1/bookings
func (h *AccountHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookingService.Book(r.Context(), req.VenueID, req.DateFrom, req.DateTo, req.Guests)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.BookingResponse{Data: *booking})
}

// CancelBooking handles DELETE /v1/bookings/{id}?venueId=
func (h *AccountHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	err := h.bookingService.Cancel(r.Context(), mux.Vars(r)["id"], r.URL.Query().Get("venueId"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetProfile handles GET /v1/profiles/{name}?bookings=&venues=
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	bookings, _ := strconv.ParseBool(vals.Get("bookings"))
	venues, _ := strconv.ParseBool(vals.Get("venues"))

	profile, err := h.venueService.GetProfile(r.Context(), mux.Vars(r)["name"], models.ProfileParams{
		Bookings: bookings,
		Venues:   venues,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ProfileResponse{Data: *profile})
}

// ListProfileVenues handles GET /v1/profiles/{name}/venues?page=&limit=
func (h *AccountHandler) ListProfileVenues(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	page, _ := strconv.Atoi(vals.Get("page"))
	limit, _ := strconv.Atoi(vals.Get(LIMIT_ARG))

	resp, err := h.venueService.ListVenuesByProfile(r.Context(), mux.Vars(r)["name"], page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateProfile handles PUT /v1/profiles/{name} for the signed-in user.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update models.ProfileUpdate
	if err := decodeBody(r, &update); err != nil {
		writeError(w, err)
		return
	}
	profile, err := h.authService.UpdateProfile(r.Context(), mux.Vars(r)["name"], update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ProfileResponse{Data: *profile})
}

type listBookingsResponse struct {
	Data []models.Booking `json:"data"`
}

// ListProfileBookings handles GET /v1/profiles/{name}/bookings
func (h *AccountHandler) ListProfileBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingService.ListBookings(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listBookingsResponse{Data: bookings})
}
