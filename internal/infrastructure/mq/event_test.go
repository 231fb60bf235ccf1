package mq

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-manager-form/config"
	domain "user-manager-form/internal/domain/user"
)

func TestNewEvent_NeverCarriesPassword(t *testing.T) {
	src := uuid.New()
	u := domain.User{ID: 1, Fields: domain.Fields{FirstNames: "Ana", Email: "ana@new.com", Password: "s3cret"}}

	e := NewEvent(http.MethodPut, u, src)

	assert.Equal(t, "1", e.UserID)
	assert.Equal(t, src, e.Source)
	assert.NotEqual(t, uuid.Nil, e.Id)

	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "s3cret")
	assert.NotContains(t, string(b), "password")
	assert.Contains(t, string(b), `"event_action":"PUT"`)
	assert.Contains(t, string(b), `"email":"ana@new.com"`)
}

func TestNewEvent_DraftHasNoUserID(t *testing.T) {
	e := NewEvent(http.MethodPost, domain.User{Fields: domain.Fields{FirstNames: "Luis"}}, uuid.New())
	assert.Empty(t, e.UserID)
	assert.Zero(t, e.Payload.ID)
}

func TestConnect_InvalidDSN(t *testing.T) {
	r := New(config.MQ{}, zap.NewNop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	err := r.Connect(ctx, "amqp://bad:://dsn")
	require.Error(t, err)
	assert.Nil(t, r.GetConn())
	assert.NotNil(t, r.GetInputChan())
}
