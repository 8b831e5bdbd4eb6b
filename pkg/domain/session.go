package domain

// Session is the cached identity and bearer credential for the current user.
// User and Token are set and cleared together: User == nil exactly when
// Token == "". A Session with a token but no decodable user is never
// constructed; rehydration treats that state as logged out.
type Session struct {
	User  *UserRecord `json:"user"`
	Token string      `json:"token"`
}

// LoggedIn reports whether the session carries a credential.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// Role returns the session user's role, or the empty Role when logged out.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
