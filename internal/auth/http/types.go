package http

import (
	"github.com/plantkeeper/plantkeeper-backend/internal/auth"
	"github.com/plantkeeper/plantkeeper-backend/internal/session"
	"github.com/plantkeeper/plantkeeper-backend/internal/users"
)

// Handler bundles the dependencies for session and profile endpoints.
type Handler struct {
	verifier auth.TokenVerifier
	updater  auth.ProfileUpdater
	users    *users.Repo
	gate     *session.Gate
	bus      *session.Broadcaster
}

// New builds the handler. updater may be nil in development mode, in which
// case profile updates only touch the local store.
func New(verifier auth.TokenVerifier, updater auth.ProfileUpdater, userRepo *users.Repo, gate *session.Gate, bus *session.Broadcaster) *Handler {
	return &Handler{
		verifier: verifier,
		updater:  updater,
		users:    userRepo,
		gate:     gate,
		bus:      bus,
	}
}

type createSessionReq struct {
	Token string `json:"token"`
}

type updateProfileReq struct {
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl"`
}
