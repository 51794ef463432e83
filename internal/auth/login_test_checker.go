package auth

import "context"

// LoginTestChecker is used in unit tests as a stand-in for the redis backed LoginChecker
type LoginTestChecker struct {
	LoggedSessions map[string]bool
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: make(map[string]bool),
	}
}

func (tc *LoginTestChecker) IsLogged(_ context.Context, token string) (bool, error) {
	logged, ok := tc.LoggedSessions[token]
	if !ok {
		return false, nil
	}
	return logged, nil
}
