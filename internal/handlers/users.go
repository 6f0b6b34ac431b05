package handlers

import (
	"net/http"

	"github.com/blood-heros/apiserver/internal/services"
	"github.com/blood-heros/apiserver/types"
	"github.com/sirupsen/logrus"
)

// UserHandler provides HTTP handlers for users.
type UserHandler struct {
	users *services.UserService
	responder
}

func NewUserHandler(users *services.UserService, logger logrus.FieldLogger) *UserHandler {
	return &UserHandler{users: users, responder: responder{logger: logger}}
}

func (h *UserHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/all-users", Access: AdminOnly, Handler: h.ListUsers},
		{Method: http.MethodGet, Pattern: "/search", Access: Public, Handler: h.SearchUsers},
		{Method: http.MethodGet, Pattern: "/users", Access: Public, Handler: h.GetUser},
		{Method: http.MethodPost, Pattern: "/users", Access: Public, Handler: h.CreateUser},
		{Method: http.MethodPatch, Pattern: "/users", Access: Authenticated, Handler: h.UpdateProfile},
		{Method: http.MethodPatch, Pattern: "/blocked-user/{id}", Access: AdminOnly, Handler: h.BlockUser},
		{Method: http.MethodPatch, Pattern: "/active-user/{id}", Access: AdminOnly, Handler: h.ActivateUser},
		{Method: http.MethodPatch, Pattern: "/users/admin/{id}", Access: AdminOnly, Handler: h.MakeAdmin},
		{Method: http.MethodPatch, Pattern: "/users/volunteer/{id}", Access: AdminOnly, Handler: h.MakeVolunteer},
	}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "user", "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.users.Search(r.Context(), types.UserSearch{
		BloodGroup: normalizeBloodGroup(q.Get("bloodGroup")),
		District:   q.Get("district"),
		Upazila:    q.Get("upazila"),
	})
	if err != nil {
		h.fail(w, r, err, "user", "failed to search users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.fail(w, r, err, "user", "failed to fetch user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req types.User
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.users.Register(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "user", "failed to create user")
		return
	}
	writeJSON(w, http.StatusCreated, types.InsertResult{Acknowledged: true, InsertedID: created.ID})
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req types.UserProfile
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.users.UpdateProfile(r.Context(), r.URL.Query().Get("email"), req)
	if err != nil {
		h.fail(w, r, err, "user", "failed to update user")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *UserHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.users.Block)
}

func (h *UserHandler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.users.Activate)
}

func (h *UserHandler) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.users.MakeAdmin)
}

func (h *UserHandler) MakeVolunteer(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.users.MakeVolunteer)
}

func (h *UserHandler) transition(w http.ResponseWriter, r *http.Request, apply updateFunc) {
	result, err := apply(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err, "user", "failed to update user")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
