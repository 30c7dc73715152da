package api

import (
	"context"
	"net/http"

	"github.com/carejourney/client-go/internal/gateway"
	"github.com/carejourney/client-go/internal/types"
)

// GetProfile fetches a user's follow-graph view.
func GetProfile(ctx context.Context, gw *gateway.Gateway, userID string) (*types.FollowProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, err
	}
	var p types.FollowProfile
	if err := gw.Do(ctx, http.MethodGet, "/profile/"+userID, nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ToggleFollower toggles the acting user's follow on profileID. The server
// updates both sides of the relation atomically.
func ToggleFollower(ctx context.Context, gw *gateway.Gateway, profileID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(profileID, "profileId"); err != nil {
		return err
	}
	return gw.Do(ctx, http.MethodPost, "/profile/update-follower/"+profileID, nil, nil, nil)
}
