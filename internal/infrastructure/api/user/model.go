package user

type (
	// Draft is the create payload: a record without id.
	Draft struct {
		FirstNames string `json:"firstNames"`
		LastNames  string `json:"lastNames"`
		TaxID      int64  `json:"taxId"`
		CheckDigit string `json:"checkDigit"`
		BirthDate  string `json:"birthDate"`
		Email      string `json:"email"`
		Password   string `json:"password"`
	}
	User struct {
		ID uint64 `json:"id"`
		Draft
	}
	Users []User
)
