package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/web"
	"golang.org/x/crypto/bcrypt"
)

var UserCtxKey = web.NewKey[*User]("user_data")

var (
	NotAuthenticatesUser  = xerrors.Message("Not authenticated user")
	ErrInvalidCredentials = xerrors.Message("Invalid credentials")
	ErrInvalidToken       = xerrors.Message("Invalid token")
)

func (user *User) SetPassword(plainTextPassword string, cost int) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), cost)

	if err != nil {
		return xerrors.New(err)
	}

	user.Password = hashedPassword
	return nil
}

func (user *User) IsPasswordMatch(plainTextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(user.Password, []byte(plainTextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, xerrors.New(err)
	}

	return true, nil
}

func (user *User) GenerateToken(secret []byte, duration time.Duration) (string, error) {
	now := time.Now()
	claim := UserClaim{
		Username: user.Username,
		Email:    user.Email,
		Bio:      user.Bio,
		Image:    user.Image,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claim)
	signedString, err := token.SignedString(secret)
	if err != nil {
		return "", xerrors.New(err)
	}
	return signedString, nil
}

// ParseToken verifies an HS256 token and returns its claims.
func ParseToken(tokenString string, secret []byte) (*UserClaim, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &UserClaim{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, xerrors.New("unexpected signing method")
		}
		return secret, nil
	})

	if err != nil {
		return nil, xerrors.New(errors.Join(ErrInvalidToken, err))
	}

	if !parsedToken.Valid {
		return nil, xerrors.New(ErrInvalidToken)
	}

	if claim, ok := parsedToken.Claims.(*UserClaim); ok {
		return claim, nil
	}
	return nil, xerrors.New(ErrInvalidToken)
}

func GetAuthenticatedUser(r *http.Request) (*User, error) {
	user, ok := web.GetValueFromContext(r, UserCtxKey)
	if !ok || user == nil {
		return nil, NotAuthenticatesUser
	}

	return user, nil
}

func SetAuthenticatedUser(r *http.Request, user *User) *http.Request {
	return web.AddValueToContext(r, UserCtxKey, user)
}

func IsUserAuthenticated(r *http.Request) bool {
	_, err := GetAuthenticatedUser(r)
	return err == nil
}
