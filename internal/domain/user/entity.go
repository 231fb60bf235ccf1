package user

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidTaxID = errors.New("taxId must be an integer")

type (
	// ID is server-assigned; zero means the record was never persisted.
	ID     uint64
	Fields struct {
		FirstNames string
		LastNames  string
		TaxID      int64
		CheckDigit string
		// BirthDate is an ISO-8601 date kept verbatim, e.g. "1990-04-21".
		BirthDate string
		Email     string
		Password  string
	}
	User struct {
		ID ID
		Fields
	}
	Users []User
)

// Field names one editable attribute of a record.
type Field int

const (
	FirstNames Field = iota
	LastNames
	TaxID
	CheckDigit
	BirthDate
	Email
	Password
)

// AllFields lists the editable attributes in form order.
var AllFields = []Field{FirstNames, LastNames, TaxID, CheckDigit, BirthDate, Email, Password}

func (f Field) String() string {
	switch f {
	case FirstNames:
		return "firstNames"
	case LastNames:
		return "lastNames"
	case TaxID:
		return "taxId"
	case CheckDigit:
		return "checkDigit"
	case BirthDate:
		return "birthDate"
	case Email:
		return "email"
	case Password:
		return "password"
	}
	return "field(" + strconv.Itoa(int(f)) + ")"
}

func (id ID) String() string { return strconv.FormatUint(uint64(id), 10) }

// Persisted reports whether the record has a server-assigned id.
func (u User) Persisted() bool { return u.ID != 0 }

// Get returns the display value of f.
func (fs Fields) Get(f Field) string {
	switch f {
	case FirstNames:
		return fs.FirstNames
	case LastNames:
		return fs.LastNames
	case TaxID:
		// zero renders as an empty input, matching With("")
		if fs.TaxID == 0 {
			return ""
		}
		return strconv.FormatInt(fs.TaxID, 10)
	case CheckDigit:
		return fs.CheckDigit
	case BirthDate:
		return fs.BirthDate
	case Email:
		return fs.Email
	case Password:
		return fs.Password
	}
	return ""
}

// With returns a copy of fs with f replaced by value. The receiver is never
// modified; on error the original value is returned unchanged.
func (fs Fields) With(f Field, value string) (Fields, error) {
	out := fs
	switch f {
	case FirstNames:
		out.FirstNames = value
	case LastNames:
		out.LastNames = value
	case TaxID:
		v := strings.TrimSpace(value)
		if v == "" {
			out.TaxID = 0
			break
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fs, ErrInvalidTaxID
		}
		out.TaxID = n
	case CheckDigit:
		out.CheckDigit = value
	case BirthDate:
		out.BirthDate = value
	case Email:
		out.Email = value
	case Password:
		out.Password = value
	default:
		return fs, errors.New("unknown field " + f.String())
	}

	return out, nil
}

// Find returns the record with the given id.
func (us Users) Find(id ID) (User, bool) {
	for _, u := range us {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}
