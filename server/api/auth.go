package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/usherkit/usher/hterror"
	"github.com/usherkit/usher/route"
)

// authenticate verifies the Base58-encoded bearer token on requests to
// mutating endpoints. With no token configured, authentication is disabled.
func (h *Handler) authenticate(_ http.ResponseWriter, r *http.Request) error {
	if h.cfg.AuthToken == "" {
		return nil
	}

	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return hterror.New("missing bearer token", hterror.WithStatus(http.StatusUnauthorized))
	}

	token, err := base58.Decode(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return hterror.New("malformed bearer token",
			hterror.WithStatus(http.StatusUnauthorized), hterror.WithCause(err))
	}

	want, err := base58.Decode(h.cfg.AuthToken)
	if err != nil {
		return hterror.ServerInternal("invalid configured auth token", err.Error())
	}

	if subtle.ConstantTimeCompare(token, want) != 1 {
		return hterror.New("invalid bearer token", hterror.WithStatus(http.StatusUnauthorized))
	}

	return nil
}

// authorize checks the caller's role against the role policy for the given
// action. The role comes from the X-Role header, defaulting to "reader".
// It's written as continuation-style middleware so the policy check could be
// delegated to an external decision point without changing the route chain.
func (h *Handler) authorize(action string) route.NextFunc {
	return func(_ http.ResponseWriter, r *http.Request, proceed func(error)) {
		roleID := r.Header.Get("X-Role")
		if roleID == "" {
			roleID = "reader"
		}

		role, ok := h.roles[roleID]
		if !ok {
			proceed(hterror.New("unknown role "+roleID, hterror.WithStatus(http.StatusForbidden)))
			return
		}

		can, err := role.Can(action, r.URL.Path)
		if err != nil {
			proceed(hterror.ServerInternal("failed evaluating role policy", err.Error()))
			return
		}
		if !can {
			proceed(hterror.New("role "+roleID+" may not "+action,
				hterror.WithStatus(http.StatusForbidden)))
			return
		}

		proceed(nil)
	}
}
