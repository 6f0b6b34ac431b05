package handlers

import (
	"context"
	"net/http"

	"github.com/blood-heros/apiserver/internal/services"
	"github.com/blood-heros/apiserver/types"
	"github.com/sirupsen/logrus"
)

// updateFunc is a single-field transition applied to the record with id.
type updateFunc func(ctx context.Context, id string) (types.UpdateResult, error)

// DonationHandler provides HTTP handlers for donation requests.
type DonationHandler struct {
	donations *services.DonationService
	responder
}

func NewDonationHandler(donations *services.DonationService, logger logrus.FieldLogger) *DonationHandler {
	return &DonationHandler{donations: donations, responder: responder{logger: logger}}
}

func (h *DonationHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/all-donation-request", Access: AdminOnly, Handler: h.ListRequests},
		{Method: http.MethodGet, Pattern: "/pending-request", Access: Public, Handler: h.ListPending},
		{Method: http.MethodGet, Pattern: "/pending-donation-details/{id}", Access: Public, Handler: h.GetRequest},
		{Method: http.MethodGet, Pattern: "/my-donation-request", Access: Authenticated, Handler: h.ListMine},
		{Method: http.MethodGet, Pattern: "/donation-request/{id}", Access: Authenticated, Handler: h.GetRequest},
		{Method: http.MethodPost, Pattern: "/create-donation-request", Access: Authenticated, Handler: h.CreateRequest},
		{Method: http.MethodPut, Pattern: "/update-donation-request/{id}", Access: Authenticated, Handler: h.UpdateRequest},
		{Method: http.MethodPut, Pattern: "/handle-donate/{id}", Access: Authenticated, Handler: h.ClaimRequest},
		{Method: http.MethodDelete, Pattern: "/donation-data/{id}", Access: Authenticated, Handler: h.DeleteRequest},
		{Method: http.MethodPatch, Pattern: "/donation/done/{id}", Access: Authenticated, Handler: h.MarkDone},
		{Method: http.MethodPatch, Pattern: "/donation/canceled/{id}", Access: Authenticated, Handler: h.MarkCanceled},
	}
}

func (h *DonationHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.donations.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "donation request", "failed to list donation requests")
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *DonationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.donations.ListPending(r.Context())
	if err != nil {
		h.fail(w, r, err, "donation request", "failed to list donation requests")
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *DonationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		email = emailFromContext(r.Context())
	}
	requests, err := h.donations.ListByRequester(r.Context(), email)
	if err != nil {
		h.fail(w, r, err, "donation request", "failed to list donation requests")
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *DonationHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	req, err := h.donations.Get(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err, "donation request", "failed to fetch donation request")
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *DonationHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req types.DonationRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.donations.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "donation request", "failed to create donation request")
		return
	}
	writeJSON(w, http.StatusCreated, types.InsertResult{Acknowledged: true, InsertedID: created.ID})
}

func (h *DonationHandler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	var req types.DonationDetails
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.donations.UpdateDetails(r.Context(), idParam(r), req)
	if err != nil {
		h.fail(w, r, err, "donation request", "failed to update donation request")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *DonationHandler) ClaimRequest(w http.ResponseWriter, r *http.Request) {
	var req types.DonorClaim
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.donations.ClaimDonor(r.Context(), idParam(r), req)
	if err != nil {
		h.fail(w, r, err, "donation request", "failed to update donation request")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *DonationHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	result, err := h.donations.Delete(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err, "donation request", "failed to delete donation request")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *DonationHandler) MarkDone(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.donations.MarkDone)
}

func (h *DonationHandler) MarkCanceled(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.donations.MarkCanceled)
}

func (h *DonationHandler) transition(w http.ResponseWriter, r *http.Request, apply updateFunc) {
	result, err := apply(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err, "donation request", "failed to update donation request")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
