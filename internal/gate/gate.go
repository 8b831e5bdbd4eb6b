// Package gate decides whether a session may see a screen. Authorization is
// structural: the only outcomes are rendering the screen or redirecting to
// the one the session is entitled to. The gate never produces an error
// notice.
package gate

import "github.com/punchcardhq/punchcard/pkg/domain"

// Decision is the gate's verdict for one (required role, session) pair.
type Decision struct {
	Allowed bool
	// Target is the route to redirect to when not allowed.
	Target domain.Route
}

// Allow is the verdict that lets the screen render.
var Allow = Decision{Allowed: true}

// Redirect builds a deny verdict pointing at the given route.
func Redirect(target domain.Route) Decision {
	return Decision{Target: target}
}

// Guard maps a screen's required role and the current session to a verdict.
// An empty required role means the screen only needs authentication. Role
// comparison is exact; the role strings come from the service verbatim.
func Guard(required domain.Role, sess domain.Session) Decision {
	if !sess.LoggedIn() {
		return Redirect(domain.RouteLogin)
	}
	if required != "" && sess.Role() != required {
		return Redirect(sess.Role().Home())
	}
	return Allow
}
