package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Facility describes a primary health center near the caller.
type Facility struct {
	Name     string   `json:"name"`
	Distance string   `json:"distance"`
	Phone    string   `json:"phone"`
	Services []string `json:"services"`
	Hours    string   `json:"hours"`
}

// FacilityHandler handles health facility lookup endpoints.
//
// The directory is static placeholder data until a real facility
// registry is integrated.
type FacilityHandler struct {
	logger *slog.Logger
}

// NewFacilityHandler creates a new facility handler.
func NewFacilityHandler(logger *slog.Logger) *FacilityHandler {
	return &FacilityHandler{logger: logger}
}

// RegisterRoutes registers facility routes on the given mux.
func (h *FacilityHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/facilities/nearby", h.nearby)
}

// NearbyRequest is the request body for the nearby facility lookup.
type NearbyRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NearbyResponse is the response body for the nearby facility lookup.
type NearbyResponse struct {
	Facilities []Facility `json:"health_centers"`
}

// nearby returns the primary health centers closest to the given coordinates.
func (h *FacilityHandler) nearby(w http.ResponseWriter, r *http.Request) {
	var req NearbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "latitude or longitude out of range")
		return
	}

	writeJSON(w, http.StatusOK, NearbyResponse{Facilities: nearbyFacilities()})
}

func nearbyFacilities() []Facility {
	return []Facility{
		{
			Name:     "Primary Health Center, Village A",
			Distance: "2.3 km",
			Phone:    "+91-1234567890",
			Services: []string{"General Medicine", "Maternity", "Emergency"},
			Hours:    "24/7",
		},
		{
			Name:     "Community Health Center, Town B",
			Distance: "5.7 km",
			Phone:    "+91-0987654321",
			Services: []string{"General Medicine", "Surgery", "Pediatrics"},
			Hours:    "8 AM - 8 PM",
		},
	}
}
