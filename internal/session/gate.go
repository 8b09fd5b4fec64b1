// Package session holds the process-wide authentication state: who is
// signed in, whether the first session check has completed, and the policy
// for gating protected routes on that state.
package session

import (
	"sync"
)

// Identity is the authenticated user's profile as reported by the identity
// provider.
type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// Snapshot is a point-in-time read of the gate's state.
type Snapshot struct {
	Identity  *Identity `json:"identity"`
	Resolving bool      `json:"isResolving"`
}

// State is the gate's position in its lifecycle.
type State int

const (
	StatePending State = iota
	StateUnauthenticated
	StateAuthenticated
)

// State derives the lifecycle state from a snapshot.
func (s Snapshot) State() State {
	switch {
	case s.Resolving:
		return StatePending
	case s.Identity == nil:
		return StateUnauthenticated
	default:
		return StateAuthenticated
	}
}

// Decision is the outcome of a route-guard check.
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionRedirect Decision = "redirect"
	DecisionAllowed  Decision = "allowed"
)

// Outcome carries a guard decision plus the navigation data the caller
// needs: where to send the user and where to return them afterwards.
type Outcome struct {
	Decision   Decision `json:"decision"`
	RedirectTo string   `json:"redirectTo,omitempty"`
	From       string   `json:"from,omitempty"`
}

// Notification is one identity-provider report. Seq increases monotonically
// per provider; the gate drops notifications whose Seq is not newer than the
// last applied one, so late deliveries cannot regress state.
type Notification struct {
	Seq      uint64
	Identity *Identity
}

// Provider is the identity-change subscription surface. Subscribe registers
// fn and returns an unsubscribe func. Providers that already know the
// current session state deliver it to fn immediately.
type Provider interface {
	Subscribe(fn func(Notification)) (func(), error)
}

// Gate is the single source of truth for the current session. It starts
// resolving, transitions out of resolving exactly once on the first
// notification, and may oscillate between authenticated and unauthenticated
// afterwards — never back to resolving.
type Gate struct {
	provider  Provider
	loginPath string

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    func()

	mu        sync.Mutex
	identity  *Identity
	resolving bool
	lastSeq   uint64
}

// NewGate builds a gate over the given provider. loginPath is where denied
// guards redirect to.
func NewGate(p Provider, loginPath string) *Gate {
	if loginPath == "" {
		loginPath = "/login"
	}
	return &Gate{
		provider:  p,
		loginPath: loginPath,
		resolving: true,
	}
}

// Start subscribes to the provider. Repeated calls are no-ops, so a remount
// can never create a duplicate subscription. If the subscription itself
// fails, the gate resolves as unauthenticated rather than staying pending
// forever; the error is returned for logging.
func (g *Gate) Start() error {
	var err error
	g.startOnce.Do(func() {
		var cancel func()
		cancel, err = g.provider.Subscribe(g.apply)
		if err != nil {
			g.apply(Notification{Seq: 0, Identity: nil})
			return
		}
		g.cancel = cancel
	})
	return err
}

// Stop unsubscribes from the provider. Safe to call more than once.
func (g *Gate) Stop() {
	g.stopOnce.Do(func() {
		if g.cancel != nil {
			g.cancel()
		}
	})
}

func (g *Gate) apply(n Notification) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if n.Seq != 0 && n.Seq <= g.lastSeq {
		return
	}
	if n.Seq != 0 {
		g.lastSeq = n.Seq
	}

	g.identity = n.Identity
	g.resolving = false
}

// Current returns the session snapshot synchronously.
func (g *Gate) Current() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{Identity: g.identity, Resolving: g.resolving}
}

// Require is the guard policy for a protected navigation target: pending
// while the first session check is outstanding, a login redirect carrying
// the original target when signed out, allowed otherwise.
func (g *Gate) Require(target string) Outcome {
	switch g.Current().State() {
	case StatePending:
		return Outcome{Decision: DecisionPending}
	case StateUnauthenticated:
		return Outcome{Decision: DecisionRedirect, RedirectTo: g.loginPath, From: target}
	default:
		return Outcome{Decision: DecisionAllowed}
	}
}
