package ports

import (
	"context"

	"user-manager-form/internal/domain/form"
	"user-manager-form/internal/domain/user"
)

type Synchronizer interface {
	ListAll(ctx context.Context) error
	Create(ctx context.Context) error
	Update(ctx context.Context) error
	Delete(ctx context.Context, id user.ID) error
	Edit(id user.ID) error
	SetField(f user.Field, value string) error
	Snapshot() form.Snapshot
}
