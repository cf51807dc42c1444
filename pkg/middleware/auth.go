package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "hotelms/pkg/errors"
	httputil "hotelms/pkg/http"
	"hotelms/pkg/logger"
	"hotelms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	userKey contextKey = "user"

	MsgNoToken   = "No token, authorization denied"
	MsgAdminOnly = "Access denied: Admin only"
)

// Authenticator resolves a bearer token to the stored principal. It returns an
// Unauthorized AppError when the token or the principal is rejected.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// Guard protects httprouter handles with the bearer token gate and the admin
// role gate.
type Guard struct {
	authenticator Authenticator
	log           *logger.Logger
}

func NewGuard(authenticator Authenticator, log *logger.Logger) *Guard {
	return &Guard{
		authenticator: authenticator,
		log:           log,
	}
}

func (g *Guard) Auth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		raw, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			g.reject(w, r, apperrors.Unauthorized(MsgNoToken))
			return
		}

		user, err := g.authenticator.Authenticate(r.Context(), raw)
		if err != nil {
			g.reject(w, r, err)
			return
		}

		next(w, r.WithContext(WithUser(r.Context(), user)), ps)
	}
}

// Admin runs the bearer gate and then requires the admin role.
func (g *Guard) Admin(next httprouter.Handle) httprouter.Handle {
	return g.Auth(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		user, ok := UserFromContext(r.Context())
		if !ok || user.Role != model.RoleAdmin {
			g.reject(w, r, apperrors.Forbidden(MsgAdminOnly))
			return
		}
		next(w, r, ps)
	})
}

func (g *Guard) reject(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		g.log.Error("Authentication failed",
			"request_id", RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	} else {
		g.log.Warn("Request rejected by auth gate",
			"request_id", RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"status", appErr.StatusCode(),
			"reason", appErr.Message,
		)
	}
	if writeErr := httputil.WriteError(w, appErr); writeErr != nil {
		g.log.Error("failed to write error response", "handler", "Guard", "operation", "WriteError", "error", writeErr)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, raw, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}
