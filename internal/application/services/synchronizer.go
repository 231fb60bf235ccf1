package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"user-manager-form/internal/application/ports"
	"user-manager-form/internal/domain/form"
	"user-manager-form/internal/domain/user"
	"user-manager-form/internal/infrastructure/metrics"
)

var (
	// ErrOperationFailed wraps every transport, status and decoding failure.
	ErrOperationFailed = errors.New("operation failed")
	ErrUnknownUser     = errors.New("user is not in the list")
)

type (
	// Mutation describes a change the server accepted.
	Mutation struct {
		Method string
		User   user.User
	}
	// Hook runs after every successful mutation, in registration order.
	Hook func(ctx context.Context, m Mutation)
)

type Synchronizer struct {
	repo     user.Repository
	state    *form.State
	logger   *zap.Logger
	mCounter *prometheus.CounterVec
	hooks    []Hook
}

// NewSynchronizer wires repo to state. The refetch hook always runs first;
// extra hooks run after it.
func NewSynchronizer(
	repo user.Repository,
	state *form.State,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
	hooks ...Hook,
) ports.Synchronizer {
	s := &Synchronizer{
		repo:     repo,
		state:    state,
		logger:   logger,
		mCounter: mCounter,
	}
	s.hooks = append([]Hook{s.refetch}, hooks...)

	return s
}

func (s *Synchronizer) ListAll(ctx context.Context) error {
	us, err := s.repo.FetchUsers(ctx)
	if err != nil {
		return s.failed("Error fetching users", err)
	}

	s.state.ReplaceUsers(us)
	s.inc(metrics.UsersListed)

	return nil
}

func (s *Synchronizer) Create(ctx context.Context) error {
	draft := s.state.Draft()
	if err := s.repo.CreateUser(ctx, draft); err != nil {
		return s.failed("Error creating user", err)
	}

	s.state.ResetDraft()
	s.inc(metrics.UserCreated)
	s.afterMutation(ctx, Mutation{Method: http.MethodPost, User: user.User{Fields: draft}})

	return nil
}

// Update is a no-op outside edit mode.
func (s *Synchronizer) Update(ctx context.Context) error {
	m, ok := s.state.Mode().(form.Editing)
	if !ok {
		return nil
	}

	if err := s.repo.UpdateUser(ctx, m.User); err != nil {
		return s.failed("Error updating user", err)
	}

	s.state.ClearEdit()
	s.inc(metrics.UserUpdated)
	s.afterMutation(ctx, Mutation{Method: http.MethodPut, User: m.User})

	return nil
}

func (s *Synchronizer) Delete(ctx context.Context, id user.ID) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return s.failed("Error deleting user", err)
	}

	s.inc(metrics.UserDeleted)
	s.afterMutation(ctx, Mutation{Method: http.MethodDelete, User: user.User{ID: id}})

	return nil
}

// Edit loads the listed record with the given id into the form.
func (s *Synchronizer) Edit(id user.ID) error {
	u, ok := s.state.Users().Find(id)
	if !ok {
		return fmt.Errorf("%w: id %s", ErrUnknownUser, id)
	}

	s.state.Edit(u)

	return nil
}

func (s *Synchronizer) SetField(f user.Field, value string) error {
	return s.state.SetField(f, value)
}

func (s *Synchronizer) Snapshot() form.Snapshot { return s.state.Snapshot() }

func (s *Synchronizer) afterMutation(ctx context.Context, m Mutation) {
	for _, h := range s.hooks {
		h(ctx, m)
	}
}

// refetch errors are logged by ListAll and never retried.
func (s *Synchronizer) refetch(ctx context.Context, _ Mutation) {
	_ = s.ListAll(ctx)
}

func (s *Synchronizer) failed(msg string, err error) error {
	s.logger.Error(msg, zap.Error(err))
	s.inc(metrics.OperationFailed)

	return fmt.Errorf("%w: %w", ErrOperationFailed, err)
}

func (s *Synchronizer) inc(label string) {
	if s.mCounter != nil {
		s.mCounter.WithLabelValues(label).Inc()
	}
}
