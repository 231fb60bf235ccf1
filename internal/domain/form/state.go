package form

import (
	"sync"

	"user-manager-form/internal/domain/user"
)

type (
	// Mode is either Drafting or Editing.
	Mode interface{ isMode() }

	Drafting struct{ Draft user.Fields }
	Editing  struct{ User user.User }

	Snapshot struct {
		Users user.Users
		Draft user.Fields
		Mode  Mode
	}
)

func (Drafting) isMode() {}
func (Editing) isMode()  {}

// State holds the listed records, the creation draft and the optional record
// under edit. The draft survives while editing. Writers come from the UI loop
// and from request goroutines, so every access goes through mu.
type State struct {
	mu      sync.RWMutex
	users   user.Users
	draft   user.Fields
	editing *user.User
}

func NewState() *State {
	return &State{users: user.Users{}}
}

func (s *State) Users() user.Users {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(user.Users(nil), s.users...)
}

// ReplaceUsers swaps the whole list; it is never patched in place.
func (s *State) ReplaceUsers(us user.Users) {
	cp := append(user.Users{}, us...)
	s.mu.Lock()
	s.users = cp
	s.mu.Unlock()
}

func (s *State) Draft() user.Fields {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

func (s *State) ResetDraft() {
	s.mu.Lock()
	s.draft = user.Fields{}
	s.mu.Unlock()
}

// Edit loads u into the edit slot, dropping unsaved changes to any record
// already being edited.
func (s *State) Edit(u user.User) {
	s.mu.Lock()
	s.editing = &u
	s.mu.Unlock()
}

func (s *State) ClearEdit() {
	s.mu.Lock()
	s.editing = nil
	s.mu.Unlock()
}

func (s *State) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modeLocked()
}

func (s *State) modeLocked() Mode {
	if s.editing != nil {
		return Editing{User: *s.editing}
	}
	return Drafting{Draft: s.draft}
}

// Value is the bound value of f for whichever record the form shows.
func (s *State) Value(f user.Field) string {
	return s.Snapshot().Value(f)
}

// SetField writes value into the edit record when one is set, otherwise into
// the draft. The other slot is left untouched.
func (s *State) SetField(f user.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch m := s.modeLocked().(type) {
	case Editing:
		fs, err := m.User.Fields.With(f, value)
		if err != nil {
			return err
		}
		s.editing = &user.User{ID: m.User.ID, Fields: fs}
	case Drafting:
		fs, err := m.Draft.With(f, value)
		if err != nil {
			return err
		}
		s.draft = fs
	}

	return nil
}

// Value is the bound value of f in the snapshot's mode.
func (s Snapshot) Value(f user.Field) string {
	switch m := s.Mode.(type) {
	case Editing:
		return m.User.Get(f)
	case Drafting:
		return m.Draft.Get(f)
	}
	return ""
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Users: append(user.Users(nil), s.users...),
		Draft: s.draft,
		Mode:  s.modeLocked(),
	}
}
