package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/blood-heros/apiserver/internal/services"
	"github.com/blood-heros/apiserver/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const defaultTokenTTL = time.Hour

const (
	msgUnauthorized = "unauthorized access"
	msgForbidden    = "forbidden access"
)

type contextKey string

const contextClaimsKey contextKey = "claims"

// AuthHandler issues access tokens and provides the authentication and
// admin gates.
type AuthHandler struct {
	users    *services.UserService
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
	responder
}

// NewAuthHandler constructs an AuthHandler. A non-positive ttl selects the
// one hour default.
func NewAuthHandler(users *services.UserService, secret string, ttl time.Duration, logger logrus.FieldLogger) *AuthHandler {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthHandler{
		users:     users,
		secret:    []byte(secret),
		tokenTTL:  ttl,
		now:       time.Now,
		responder: responder{logger: logger},
	}
}

func (h *AuthHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodPost, Pattern: "/jwt", Access: Public, Handler: h.IssueToken},
	}
}

// Gates returns the middleware used by Mount for protected routes.
func (h *AuthHandler) Gates() Gates {
	return Gates{Authenticate: h.RequireAuth, Authorize: h.RequireAdmin}
}

// IssueToken signs the posted JSON object as the claims of a short-lived
// token. The identity provider on the client has already authenticated the
// caller; this endpoint only converts that identity into an API credential.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{}
	if err := decodeJSON(w, r, &payload, true); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	token, err := issueToken(payload, h.secret, h.now(), h.tokenTTL)
	if err != nil {
		h.fail(w, r, err, "token", "failed to create token")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token claims in the request context.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		claims, err := verifyToken(tokenString, h.secret, h.now)
		if err != nil {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), contextClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after RequireAuth. It loads the caller by the email
// claim and only lets admins through.
func (h *AuthHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := emailFromContext(r.Context())
		if email == "" {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		isAdmin, err := h.users.IsAdmin(r.Context(), email)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			h.fail(w, r, err, "user", "failed to load user")
			return
		}
		if !isAdmin {
			writeError(w, http.StatusForbidden, msgForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type TokenResponse struct {
	Token string `json:"token"`
}

func issueToken(payload map[string]any, secret []byte, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{}
	for key, value := range payload {
		claims[key] = value
	}
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verifyToken(tokenString string, secret []byte, now func() time.Time) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func bearerToken(r *http.Request) (string, error) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}

func claimsFromContext(ctx context.Context) jwt.MapClaims {
	claims, _ := ctx.Value(contextClaimsKey).(jwt.MapClaims)
	return claims
}

func emailFromContext(ctx context.Context) string {
	email, _ := claimsFromContext(ctx)["email"].(string)
	return strings.TrimSpace(email)
}
