package handlers

import (
	"net/http"

	"github.com/blood-heros/apiserver/internal/services"
	"github.com/sirupsen/logrus"
)

// LocationHandler serves the read-only district and upazila lists.
type LocationHandler struct {
	locations *services.LocationService
	responder
}

func NewLocationHandler(locations *services.LocationService, logger logrus.FieldLogger) *LocationHandler {
	return &LocationHandler{locations: locations, responder: responder{logger: logger}}
}

func (h *LocationHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/upazilas", Access: Public, Handler: h.ListUpazilas},
		{Method: http.MethodGet, Pattern: "/districts", Access: Public, Handler: h.ListDistricts},
	}
}

func (h *LocationHandler) ListUpazilas(w http.ResponseWriter, r *http.Request) {
	upazilas, err := h.locations.ListUpazilas(r.Context())
	if err != nil {
		h.fail(w, r, err, "upazila", "failed to list upazilas")
		return
	}
	writeJSON(w, http.StatusOK, upazilas)
}

func (h *LocationHandler) ListDistricts(w http.ResponseWriter, r *http.Request) {
	districts, err := h.locations.ListDistricts(r.Context())
	if err != nil {
		h.fail(w, r, err, "district", "failed to list districts")
		return
	}
	writeJSON(w, http.StatusOK, districts)
}
