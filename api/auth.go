package api

import (
	"context"

	"github.com/mdrianislam0or1/admin-dashboard/cache"
	"github.com/mdrianislam0or1/admin-dashboard/client"
	"github.com/mdrianislam0or1/admin-dashboard/session"
)

// Login authenticates against POST /auth/login. On success the session
// receives the identity and tokens; the refresh token falls back to the
// empty string when the server does not issue one. The loading flag is set
// for the duration of the call. Invalidates Auth.
func (a *API) Login(ctx context.Context, req LoginRequest) (*session.User, error) {
	a.session.SetLoading(true)
	defer a.session.SetLoading(false)

	result, err := a.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		var env client.Envelope[LoginData]
		if err := a.client.Post(ctx, "/auth/login", req, &env); err != nil {
			return nil, err
		}
		return env.Data, nil
	}, cache.Wide(TagAuth))
	if err != nil {
		return nil, err
	}

	data := result.(LoginData)
	a.session.SetCredentials(ctx, data.User, data.AccessToken, data.RefreshToken)
	return data.User, nil
}

// Register creates an account via POST /auth/register. Success marks the
// session as awaiting verification for the returned user id; registration
// does not log the user in. Invalidates Auth.
func (a *API) Register(ctx context.Context, req RegisterRequest) (*session.User, error) {
	a.session.SetLoading(true)
	defer a.session.SetLoading(false)

	result, err := a.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		var env client.Envelope[session.User]
		if err := a.client.Post(ctx, "/auth/register", req, &env); err != nil {
			return nil, err
		}
		return &env.Data, nil
	}, cache.Wide(TagAuth))
	if err != nil {
		return nil, err
	}

	user := result.(*session.User)
	a.session.SetVerificationPending(user.ID)
	return user, nil
}

// GetProfile reads the authenticated identity through the cache.
func (a *API) GetProfile(ctx context.Context) (*session.User, error) {
	result, err := a.cache.Query(ctx, ProfileKey(), func(ctx context.Context) (any, error) {
		var env client.Envelope[session.User]
		if err := a.client.Get(ctx, "/auth/profile", nil, &env); err != nil {
			return nil, err
		}
		return &env.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*session.User), nil
}

// UpdateProfile writes partial identity fields via PUT /auth/profile. The
// refreshed identity replaces the one held by the session. Invalidates
// Profile.
func (a *API) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*session.User, error) {
	result, err := a.cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		var env client.Envelope[session.User]
		if err := a.client.Put(ctx, "/auth/profile", req, &env); err != nil {
			return nil, err
		}
		return &env.Data, nil
	}, cache.Wide(TagProfile))
	if err != nil {
		return nil, err
	}

	user := result.(*session.User)
	a.session.UpdateUser(ctx, user)
	return user, nil
}

// Logout clears the session locally; no server call is made.
func (a *API) Logout(ctx context.Context) {
	a.session.Logout(ctx)
}
