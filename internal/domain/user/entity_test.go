package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_With(t *testing.T) {
	base := Fields{FirstNames: "Ana", TaxID: 11}

	tests := []struct {
		name    string
		field   Field
		value   string
		want    Fields
		wantErr error
	}{
		{name: "first names", field: FirstNames, value: "Luis", want: Fields{FirstNames: "Luis", TaxID: 11}},
		{name: "last names", field: LastNames, value: "Diaz", want: Fields{FirstNames: "Ana", LastNames: "Diaz", TaxID: 11}},
		{name: "tax id", field: TaxID, value: "12345678", want: Fields{FirstNames: "Ana", TaxID: 12345678}},
		{name: "empty tax id is zero", field: TaxID, value: "", want: Fields{FirstNames: "Ana"}},
		{name: "non numeric tax id", field: TaxID, value: "12a", want: base, wantErr: ErrInvalidTaxID},
		{name: "check digit", field: CheckDigit, value: "K", want: Fields{FirstNames: "Ana", TaxID: 11, CheckDigit: "K"}},
		{name: "birth date kept verbatim", field: BirthDate, value: "1990-04-21", want: Fields{FirstNames: "Ana", TaxID: 11, BirthDate: "1990-04-21"}},
		{name: "email not validated", field: Email, value: "not-an-email", want: Fields{FirstNames: "Ana", TaxID: 11, Email: "not-an-email"}},
		{name: "password in clear", field: Password, value: "s3cret", want: Fields{FirstNames: "Ana", TaxID: 11, Password: "s3cret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := base.With(tt.field, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, Fields{FirstNames: "Ana", TaxID: 11}, base, "receiver must not change")
		})
	}
}

func TestFields_With_UnknownField(t *testing.T) {
	_, err := Fields{}.With(Field(99), "x")
	require.Error(t, err)
}

func TestFields_GetRoundTrip(t *testing.T) {
	fs := Fields{
		FirstNames: "Luis",
		LastNames:  "Soto",
		TaxID:      12345678,
		CheckDigit: "5",
		BirthDate:  "1985-01-02",
		Email:      "l@x.com",
		Password:   "pw",
	}

	var rebuilt Fields
	for _, f := range AllFields {
		var err error
		rebuilt, err = rebuilt.With(f, fs.Get(f))
		require.NoError(t, err, f.String())
	}
	assert.Equal(t, fs, rebuilt)
	assert.Empty(t, Fields{}.Get(TaxID))
}

func TestUsers_Find(t *testing.T) {
	us := Users{{ID: 1}, {ID: 7, Fields: Fields{Email: "b@x.com"}}}

	u, ok := us.Find(7)
	require.True(t, ok)
	assert.Equal(t, "b@x.com", u.Email)
	assert.True(t, u.Persisted())

	_, ok = us.Find(3)
	assert.False(t, ok)
}
