// Package access decides whether a request may reach a route. The decision is
// a pure function over the request's session and the route's required role
// class; callers translate the verdict into a redirect or an HTTP status.
package access

import "github.com/Eddy-C127/dance-academy/core/user"

// Session is the request-scoped authentication state. Present is false for a
// logged-out request; UserID and Role are only meaningful when Present.
type Session struct {
	Present bool
	UserID  string
	Role    string
}

// Anonymous is the session of a request carrying no credentials.
var Anonymous = Session{}

// NewSession returns a present session for the given identity.
func NewSession(userID, role string) Session {
	return Session{Present: true, UserID: userID, Role: role}
}

// RoleClass is a route's access requirement.
type RoleClass int

const (
	// AnyAuthenticated admits every logged-in identity.
	AnyAuthenticated RoleClass = iota
	// AdminOnly admits administrators only.
	AdminOnly
	// TeacherHinted marks routes meant for teachers. Route access stays open
	// to any authenticated identity; the teacher requirement is enforced on
	// the write operations themselves, not on page access.
	TeacherHinted
)

// Verdict is the policy outcome for one request.
type Verdict int

const (
	Allow Verdict = iota
	RedirectToLogin
	RedirectToHome
)

func (v Verdict) String() string {
	switch v {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToHome:
		return "redirect-to-home"
	}
	return "unknown"
}

// Decide resolves the authorization verdict for a session against a route's
// role class. Rules are evaluated in order:
//  1. no session -> RedirectToLogin
//  2. admin route and role is not admin -> RedirectToHome
//  3. otherwise -> Allow
//
// The decision reads nothing beyond its arguments and performs no I/O.
func Decide(sess Session, required RoleClass) Verdict {
	if !sess.Present {
		return RedirectToLogin
	}
	if required == AdminOnly && sess.Role != user.RoleAdmin {
		return RedirectToHome
	}
	return Allow
}
