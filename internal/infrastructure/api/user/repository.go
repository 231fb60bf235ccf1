package user

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"user-manager-form/internal/domain/user"
	"user-manager-form/internal/infrastructure/api"
	"user-manager-form/internal/infrastructure/jwt"
)

// cap on response bodies the client reads but ignores
const maxDiscardSize = 1 << 20

type Repository struct {
	client     *http.Client
	collection string
	token      *jwt.Token
}

// NewRepository talks to the records collection at collectionURL,
// e.g. http://localhost:8080/api/usuarios.
func NewRepository(client *http.Client, collectionURL string, token *jwt.Token) user.Repository {
	if client == nil {
		client = http.DefaultClient
	}
	return &Repository{
		client:     client,
		collection: collectionURL,
		token:      token,
	}
}

func (r *Repository) FetchUsers(ctx context.Context) (user.Users, error) {
	var us Users
	if err := r.do(ctx, http.MethodGet, r.collection, nil, &us); err != nil {
		return nil, err
	}

	return fromWireModels(us), nil
}

func (r *Repository) CreateUser(ctx context.Context, draft user.Fields) error {
	return r.do(ctx, http.MethodPost, r.collection, toWireDraft(draft), nil)
}

func (r *Repository) UpdateUser(ctx context.Context, u user.User) error {
	return r.do(ctx, http.MethodPut, r.itemURL(u.ID), toWireModel(u), nil)
}

func (r *Repository) DeleteUser(ctx context.Context, id user.ID) error {
	return r.do(ctx, http.MethodDelete, r.itemURL(id), nil, nil)
}

func (r *Repository) itemURL(id user.ID) string {
	return r.collection + "/" + id.String()
}

func (r *Repository) do(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", method, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(api.HeaderRequestID, uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h := r.token.AuthorizationHeader(); h != "" {
		req.Header.Set("Authorization", h)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDiscardSize))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, URL: url, Code: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	return nil
}
