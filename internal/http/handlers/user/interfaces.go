package user

import "context"

const pkg = "userHandler/"

type Registrar interface {
	Register(ctx context.Context, email string, name string, password string) (string, error)
}
