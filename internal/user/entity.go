// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// User is the credential store record: login material plus the public
// account attributes. Hash, Salt and Token never leave this package.
type User struct {
	ID          string     `db:"id"`
	Email       string     `db:"email"`
	Username    string     `db:"username"`
	Avatar      *string    `db:"avatar"`
	Address     *string    `db:"address"`
	PhoneNumber *string    `db:"phone_number"`
	Country     *string    `db:"country"`
	PostalCode  *string    `db:"postal_code"`
	Sexe        *string    `db:"sexe"`
	DateOfBorn  *time.Time `db:"date_of_born"`
	Newsletter  bool       `db:"newsletter"`
	Hash        string     `db:"hash"`
	Salt        string     `db:"salt"`
	Token       *string    `db:"token"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

const (
	SexeHomme = "Homme"
	SexeFemme = "Femme"
	SexeAutre = "Autre"
)

// CanPasswordLogin reports whether the account carries credential material.
// Accounts created through Google login have none and must use that flow.
func (u *User) CanPasswordLogin() bool {
	return u.Hash != "" && u.Salt != ""
}
