package core

import (
	"context"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/models"
)

// ProfileView is a resolved profile and whether it belongs to the viewer.
type ProfileView struct {
	Profile models.Profile
	IsUser  bool
}

// LookupProfile resolves a route username. viewer is the session username
// or empty when nobody is signed in.
func (c *Core) LookupProfile(ctx context.Context, username, viewer string) (*ProfileView, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerrors.New(err)
	}

	c.profiles.mutex.RLock()
	defer c.profiles.mutex.RUnlock()

	profile, ok := c.profiles.byHandle[username]
	if !ok {
		return nil, xerrors.New(NoRecordFound)
	}

	return &ProfileView{
		Profile: *profile,
		IsUser:  viewer != "" && viewer == username,
	}, nil
}

func (c *Core) FollowProfile(ctx context.Context, username string) (*models.Profile, error) {
	return c.setFollowing(ctx, username, true)
}

func (c *Core) UnfollowProfile(ctx context.Context, username string) (*models.Profile, error) {
	return c.setFollowing(ctx, username, false)
}

func (c *Core) setFollowing(ctx context.Context, username string, following bool) (*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerrors.New(err)
	}

	c.profiles.mutex.Lock()
	defer c.profiles.mutex.Unlock()

	profile, ok := c.profiles.byHandle[username]
	if !ok {
		return nil, xerrors.New(NoRecordFound)
	}
	profile.Following = following

	c.log.Info("Profile follow state changed", "username", username, "following", following)
	p := *profile
	return &p, nil
}
