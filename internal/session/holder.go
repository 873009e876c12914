// Package session holds the signed-in user of a client and publishes changes
// to it.
package session

import (
	"context"
	"log/slog"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/reactive"
)

// HomePath is where Logout navigates.
const HomePath = "/"

type Accounts interface {
	Login(ctx context.Context, credentials auth.Credentials) (*auth.User, error)
	Register(ctx context.Context, registration auth.Registration) (*auth.User, error)
	Update(ctx context.Context, patch auth.UserPatch) (*auth.User, error)
	CurrentUser(ctx context.Context, token string) (*auth.User, error)
}

type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

type Holder struct {
	log       *slog.Logger
	tokens    TokenStore
	accounts  Accounts
	navigator Navigator

	currentUser     *reactive.Cell[*auth.User]
	isAuthenticated *reactive.Cell[bool]
	stop            func()
}

func NewHolder(log *slog.Logger, tokens TokenStore, accounts Accounts, navigator Navigator) *Holder {
	currentUser := reactive.NewDistinctCell[*auth.User](nil, (*auth.User).Equal)
	isAuthenticated, stop := reactive.Map[*auth.User](currentUser, func(user *auth.User) bool {
		return user != nil
	})

	return &Holder{
		log:             log,
		tokens:          tokens,
		accounts:        accounts,
		navigator:       navigator,
		currentUser:     currentUser,
		isAuthenticated: isAuthenticated,
		stop:            stop,
	}
}

// CurrentUser publishes the session user, or nil when signed out. Setting an
// identical user does not notify again.
func (h *Holder) CurrentUser() reactive.Signal[*auth.User] { return h.currentUser }

func (h *Holder) IsAuthenticated() reactive.Signal[bool] { return h.isAuthenticated }

// SetAuth stores the user's token and publishes the user.
func (h *Holder) SetAuth(user *auth.User) error {
	if user == nil {
		return h.PurgeAuth()
	}
	if err := h.tokens.Save(user.Token); err != nil {
		return err
	}
	copied := *user
	h.currentUser.Set(&copied)
	return nil
}

// PurgeAuth destroys the stored token and publishes "no session".
func (h *Holder) PurgeAuth() error {
	err := h.tokens.Destroy()
	h.currentUser.Set(nil)
	return err
}

// Login signs in with the credentials. On a mismatch the session is left
// unset and the error is returned.
func (h *Holder) Login(ctx context.Context, credentials auth.Credentials) (*auth.User, error) {
	user, err := h.accounts.Login(ctx, credentials)
	if err != nil {
		h.log.LogAttrs(ctx, slog.LevelError, "Login failed",
			slog.String("email", credentials.Email),
			slog.String("stack", xerrors.Sprint(err)))
		if purgeErr := h.PurgeAuth(); purgeErr != nil {
			h.log.Error("Failed to purge session", "error", purgeErr)
		}
		return nil, err
	}

	return h.signIn(user)
}

func (h *Holder) Register(ctx context.Context, registration auth.Registration) (*auth.User, error) {
	user, err := h.accounts.Register(ctx, registration)
	if err != nil {
		return nil, err
	}

	return h.signIn(user)
}

func (h *Holder) Update(ctx context.Context, patch auth.UserPatch) (*auth.User, error) {
	user, err := h.accounts.Update(ctx, patch)
	if err != nil {
		return nil, err
	}

	return h.signIn(user)
}

// Logout ends the session and navigates home.
func (h *Holder) Logout() error {
	err := h.PurgeAuth()
	if h.navigator != nil {
		h.navigator.Navigate(HomePath)
	}
	return err
}

// Restore resumes the session of a stored token. It returns nil without an
// error when no token is stored; an unusable token is purged.
func (h *Holder) Restore(ctx context.Context) (*auth.User, error) {
	token, found, err := h.tokens.Get()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	user, err := h.accounts.CurrentUser(ctx, token)
	if err != nil {
		h.log.Warn("Stored token rejected", "error", err)
		if purgeErr := h.PurgeAuth(); purgeErr != nil {
			h.log.Error("Failed to purge session", "error", purgeErr)
		}
		return nil, err
	}

	return h.signIn(user)
}

// Close detaches the derived signals.
func (h *Holder) Close() {
	h.stop()
}

func (h *Holder) signIn(user *auth.User) (*auth.User, error) {
	if err := h.SetAuth(user); err != nil {
		return nil, err
	}
	return h.currentUser.Get(), nil
}
