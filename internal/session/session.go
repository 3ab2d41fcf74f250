// Package session holds the identity of the signed-in user.
package session

import "errors"

var ErrSessionActive = errors.New("a user is already logged in")

// AuthSession is a single login slot. The zero value is logged out.
type AuthSession struct {
	username string
	active   bool
}

// Login records username as the current user. It fails if someone is
// already logged in.
func (s *AuthSession) Login(username string) error {
	if s.active {
		return ErrSessionActive
	}
	s.username = username
	s.active = true
	return nil
}

// Logout clears the slot. Logging out while logged out does nothing.
func (s *AuthSession) Logout() {
	s.username = ""
	s.active = false
}

// Current returns the logged-in username, if any.
func (s *AuthSession) Current() (string, bool) {
	return s.username, s.active
}
