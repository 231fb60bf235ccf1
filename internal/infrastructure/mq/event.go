package mq

import (
	"time"

	"github.com/google/uuid"

	domain "user-manager-form/internal/domain/user"
)

type (
	Event struct {
		Id      uuid.UUID `json:"event_id"`
		TS      time.Time `json:"time_stamp"`
		Method  string    `json:"event_action"`
		UserID  string    `json:"user_id,omitempty"`
		Source  uuid.UUID `json:"source"`
		Payload User      `json:"user_payload"`
	}
	// User is the event view of a record; the password never leaves the form.
	User struct {
		ID         uint64 `json:"id,omitempty"`
		FirstNames string `json:"firstNames,omitempty"`
		LastNames  string `json:"lastNames,omitempty"`
		TaxID      int64  `json:"taxId,omitempty"`
		CheckDigit string `json:"checkDigit,omitempty"`
		BirthDate  string `json:"birthDate,omitempty"`
		Email      string `json:"email,omitempty"`
	}
)

// NewEvent builds the event for a mutation accepted by the records API.
// source identifies the client instance that made the change.
func NewEvent(method string, u domain.User, source uuid.UUID) Event {
	e := Event{
		Id:     uuid.New(),
		TS:     time.Now().UTC(),
		Method: method,
		Source: source,
		Payload: User{
			ID:         uint64(u.ID),
			FirstNames: u.FirstNames,
			LastNames:  u.LastNames,
			TaxID:      u.TaxID,
			CheckDigit: u.CheckDigit,
			BirthDate:  u.BirthDate,
			Email:      u.Email,
		},
	}
	if u.Persisted() {
		e.UserID = u.ID.String()
	}

	return e
}
