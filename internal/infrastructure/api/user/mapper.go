package user

import (
	domain "user-manager-form/internal/domain/user"
)

func fromWireModel(model User) domain.User {
	return domain.User{
		ID: domain.ID(model.ID),
		Fields: domain.Fields{
			FirstNames: model.FirstNames,
			LastNames:  model.LastNames,
			TaxID:      model.TaxID,
			CheckDigit: model.CheckDigit,
			BirthDate:  model.BirthDate,
			Email:      model.Email,
			Password:   model.Password,
		},
	}
}

func fromWireModels(models Users) domain.Users {
	us := make(domain.Users, len(models))
	for idx, u := range models {
		us[idx] = fromWireModel(u)
	}

	return us
}

func toWireDraft(fs domain.Fields) Draft {
	return Draft{
		FirstNames: fs.FirstNames,
		LastNames:  fs.LastNames,
		TaxID:      fs.TaxID,
		CheckDigit: fs.CheckDigit,
		BirthDate:  fs.BirthDate,
		Email:      fs.Email,
		Password:   fs.Password,
	}
}

func toWireModel(u domain.User) User {
	return User{ID: uint64(u.ID), Draft: toWireDraft(u.Fields)}
}
