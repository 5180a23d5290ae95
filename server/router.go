package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// IVenueHandler is the venue side of the API.
type IVenueHandler interface {
	ListVenues(w http.ResponseWriter, r *http.Request)
	LoadMore(w http.ResponseWriter, r *http.Request)
	GetVenue(w http.ResponseWriter, r *http.Request)
	Occupancy(w http.ResponseWriter, r *http.Request)
	CreateVenue(w http.ResponseWriter, r *http.Request)
	UpdateVenue(w http.ResponseWriter, r *http.Request)
	DeleteVenue(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

// IAccountHandler is the auth, booking and profile side of the API.
type IAccountHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	CreateBooking(w http.ResponseWriter, r *http.Request)
	CancelBooking(w http.ResponseWriter, r *http.Request)
	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	ListProfileVenues(w http.ResponseWriter, r *http.Request)
	ListProfileBookings(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	venueHandler   IVenueHandler
	accountHandler IAccountHandler
	router         *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	venueHandler IVenueHandler,
	accountHandler IAccountHandler,
	router *mux.Router) *Router {
	return &Router{
		venueHandler:   venueHandler,
		accountHandler: accountHandler,
		router:         router,
	}
}

func (r *Router) RegisterRoutes() {
	// expects ?q=&dateFrom=&dateTo=&sort=&sortOrder=&limit=
	r.router.HandleFunc("/v1/venues", r.venueHandler.ListVenues).Methods("GET")
	// expects ?cursor=
	r.router.HandleFunc("/v1/venues/more", r.venueHandler.LoadMore).Methods("GET")
	r.router.HandleFunc("/v1/venues", r.venueHandler.CreateVenue).Methods("POST")
	r.router.HandleFunc("/v1/venues/{id}", r.venueHandler.GetVenue).Methods("GET")
	r.router.HandleFunc("/v1/venues/{id}", r.venueHandler.UpdateVenue).Methods("PUT")
	r.router.HandleFunc("/v1/venues/{id}", r.venueHandler.DeleteVenue).Methods("DELETE")
	// expects ?from=&to=
	r.router.HandleFunc("/v1/venues/{id}/occupancy", r.venueHandler.Occupancy).Methods("GET")

	r.router.HandleFunc("/v1/auth/register", r.accountHandler.Register).Methods("POST")
	r.router.HandleFunc("/v1/auth/login", r.accountHandler.Login).Methods("POST")
	r.router.HandleFunc("/v1/auth/logout", r.accountHandler.Logout).Methods("POST")
	r.router.HandleFunc("/v1/bookings", r.accountHandler.CreateBooking).Methods("POST")
	r.router.HandleFunc("/v1/bookings/{id}", r.accountHandler.CancelBooking).Methods("DELETE")
	r.router.HandleFunc("/v1/profiles/{name}", r.accountHandler.GetProfile).Methods("GET")
	r.router.HandleFunc("/v1/profiles/{name}", r.accountHandler.UpdateProfile).Methods("PUT")
	r.router.HandleFunc("/v1/profiles/{name}/venues", r.accountHandler.ListProfileVenues).Methods("GET")
	r.router.HandleFunc("/v1/profiles/{name}/bookings", r.accountHandler.ListProfileBookings).Methods("GET")

	r.router.HandleFunc("/ping", r.venueHandler.Ping).Methods("GET")
}
