package user

import (
	"context"
)

type Repository interface {
	FetchUsers(ctx context.Context) (Users, error)
	CreateUser(ctx context.Context, draft Fields) error
	UpdateUser(ctx context.Context, u User) error
	DeleteUser(ctx context.Context, id ID) error
}
