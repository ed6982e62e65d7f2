package session

import "context"

const pkg = "sessionHandler/"

type SessionManager interface {
	Login(ctx context.Context, email string, password string) (string, error)
	Logout(ctx context.Context, token string) error
}
