package auth

import "github.com/golang-jwt/jwt/v5"

type User struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	Password []byte `json:"-"`
}

// Equal compares the public fields and the token. Password hashes are salted
// and never compared.
func (user *User) Equal(other *User) bool {
	if user == nil || other == nil {
		return user == other
	}
	return user.Email == other.Email &&
		user.Token == other.Token &&
		user.Username == other.Username &&
		user.Bio == other.Bio &&
		user.Image == other.Image
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPatch holds the fields of a profile update. Nil fields keep their value.
type UserPatch struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

type UserClaim struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio,omitempty"`
	Image    string `json:"image,omitempty"`

	jwt.RegisteredClaims
}
