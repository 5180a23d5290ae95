package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"holidaze-server/internaltypes"
	"holidaze-server/models"
	"holidaze-server/models/venue"
	services "holidaze-server/service"
	"holidaze-server/util"
)

const (
	QUERY_ARG      = "q"
	DATE_FROM_ARG  = "dateFrom"
	DATE_TO_ARG    = "dateTo"
	SORT_ARG       = "sort"
	SORT_ORDER_ARG = "sortOrder"
	LIMIT_ARG      = "limit"
	CURSOR_ARG     = "cursor"
	FROM_ARG       = "from"
	TO_ARG         = "to"
)

// ListMeta is the meta object of listing responses.
type ListMeta struct {
	Cursor   *string `json:"cursor"`
	NextPage *int    `json:"nextPage"`
	Count    int     `json:"count"`
}

type ListVenuesResponse struct {
	Data []venue.Venue `json:"data"`
	Meta ListMeta      `json:"meta"`
}

type VenueHandler struct {
	venueService *services.VenueService
}

func NewVenueHandler(venueService *services.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

// ListVenues handles GET /v1/venues
func (h *VenueHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	params, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return // error already written
	}

	rs, err := h.venueService.Search(r.Context(), r.Header.Get(SESSION_HEADER), params)
	if err != nil {
		log.Println("Error listing venues:", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toListResponse(rs))
}

// LoadMore handles GET /v1/venues/more
func (h *VenueHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get(CURSOR_ARG)
	if cursor == "" {
		writeError(w, internaltypes.NewValidationError("Missing argument "+CURSOR_ARG))
		return
	}
	rs, err := h.venueService.LoadMore(r.Context(), cursor)
	if err != nil {
		log.Println("Error loading more venues:", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toListResponse(rs))
}

// GetVenue handles GET /v1/venues/{id}
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	v, err := h.venueService.GetVenue(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.VenueResponse{Data: *v})
}

// Occupancy handles GET /v1/venues/{id}/occupancy and renders an HTML chart.
func (h *VenueHandler) Occupancy(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	v, days, err := h.venueService.Occupancy(r.Context(), mux.Vars(r)["id"], vals.Get(FROM_ARG), vals.Get(TO_ARG))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := util.PlotOccupancy(w, v.Name, days); err != nil {
		log.Println("Error rendering occupancy chart:", err)
	}
}

// CreateVenue handles POST /v1/venues
func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var in models.VenueInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	v, err := h.venueService.CreateVenue(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.VenueResponse{Data: *v})
}

// UpdateVenue handles PUT /v1/venues/{id}
func (h *VenueHandler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	var in models.VenueInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	v, err := h.venueService.UpdateVenue(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.VenueResponse{Data: *v})
}

// DeleteVenue handles DELETE /v1/venues/{id}
func (h *VenueHandler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	if err := h.venueService.DeleteVenue(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VenueHandler) parseArgs(vals url.Values, w http.ResponseWriter) (params services.SearchParams, ok bool) {
	params = services.SearchParams{
		Query:     vals.Get(QUERY_ARG),
		DateFrom:  vals.Get(DATE_FROM_ARG),
		DateTo:    vals.Get(DATE_TO_ARG),
		Sort:      vals.Get(SORT_ARG),
		SortOrder: vals.Get(SORT_ORDER_ARG),
	}
	if s := vals.Get(LIMIT_ARG); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 {
			writeError(w, internaltypes.NewValidationError("Invalid argument "+LIMIT_ARG))
			return
		}
		params.Limit = limit
	}
	ok = true
	return
}

func toListResponse(rs *models.VenueResultSet) ListVenuesResponse {
	meta := ListMeta{NextPage: rs.NextPage, Count: len(rs.Venues)}
	if rs.Cursor != "" {
		c := rs.Cursor
		meta.Cursor = &c
	}
	return ListVenuesResponse{Data: rs.Venues, Meta: meta}
}

// Ping handles GET /ping
func (h *VenueHandler) Ping(w http.ResponseWriter, r *http.Request) {
	log.Println("Pinging server")
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}
