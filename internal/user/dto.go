// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

// UpdateProfileRequest is a sparse patch: only non-nil fields are applied.
// Avatar accepts either an http(s) URL or a base64 data URL that gets
// uploaded to the image store before persisting.
type UpdateProfileRequest struct {
	Username    *string `json:"username" validate:"omitempty,min=2,max=60"`
	Avatar      *string `json:"avatar" validate:"omitempty"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=30"`
	Country     *string `json:"country" validate:"omitempty,max=80"`
	PostalCode  *string `json:"postalCode" validate:"omitempty,max=20"`
	Sexe        *string `json:"sexe" validate:"omitempty,oneof=Homme Femme Autre"`
	DateOfBorn  *string `json:"dateOfBorn" validate:"omitempty,datetime=2006-01-02"`
	Newsletter  *bool   `json:"newsletter" validate:"omitempty"`
}

// Account is the public view of a user profile.
type Account struct {
	Username    string  `json:"username"`
	Avatar      *string `json:"avatar,omitempty"`
	Address     *string `json:"address,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Country     *string `json:"country,omitempty"`
	PostalCode  *string `json:"postalCode,omitempty"`
	Sexe        *string `json:"sexe,omitempty"`
	DateOfBorn  *string `json:"dateOfBorn,omitempty"`
	Newsletter  bool    `json:"newsletter"`
}

// ProfileResponse wraps the account together with its identifiers.
type ProfileResponse struct {
	UserID  string  `json:"userId"`
	Email   string  `json:"email"`
	Account Account `json:"account"`
}

// AccountOf projects the entity into its public view.
func AccountOf(u *User) Account {
	acct := Account{
		Username:    u.Username,
		Avatar:      u.Avatar,
		Address:     u.Address,
		PhoneNumber: u.PhoneNumber,
		Country:     u.Country,
		PostalCode:  u.PostalCode,
		Sexe:        u.Sexe,
		Newsletter:  u.Newsletter,
	}
	if u.DateOfBorn != nil {
		d := u.DateOfBorn.Format(time.DateOnly)
		acct.DateOfBorn = &d
	}
	return acct
}

// ProfileOf projects the entity into a full profile response.
func ProfileOf(u *User) *ProfileResponse {
	return &ProfileResponse{
		UserID:  u.ID,
		Email:   u.Email,
		Account: AccountOf(u),
	}
}
