package client

import (
	"context"
	"time"

	"github.com/carejourney/client-go/internal/api"
	"github.com/carejourney/client-go/internal/cache"
	"github.com/carejourney/client-go/internal/mutate"
	"github.com/carejourney/client-go/internal/types"
)

// Write operations. Each applies its optimistic cache transformation
// synchronously — the cache reflects the assumed-successful result before
// the method returns — then settles on a per-key FIFO queue: the gateway
// call, followed by confirm (plus dependent invalidation) or rollback with
// a user-facing notification.

// cached-value accessors: cache values are stored as their concrete slice
// types; a nil or foreign value reads as empty.
func scheduleItemsOf(v any) []types.ScheduleItem { items, _ := v.([]types.ScheduleItem); return items }
func filesOf(v any) []types.FileInfo             { files, _ := v.([]types.FileInfo); return files }
func postsOf(v any) []types.Post                 { posts, _ := v.([]types.Post); return posts }
func namesOf(v any) []string                     { names, _ := v.([]string); return names }

// AddScheduleItem creates an appointment or medication. The collection
// immediately shows a placeholder item; on confirmation the placeholder is
// swapped for the server's canonical item with its assigned id.
func (c *Client) AddScheduleItem(ctx context.Context, req AddScheduleItemRequest) (*EnqueueAck, error) {
	if err := types.ValidateAddScheduleItem(req); err != nil {
		return nil, err
	}
	name := types.ScheduleAppointments
	if req.Kind == types.KindMedication {
		name = types.ScheduleMedications
	}
	key := types.SchedulesKey(name)
	placeholder := req.Item(types.PlaceholderID())

	var created *types.ScheduleItem
	return c.coord.Run(ctx, mutate.Mutation{
		Name: "add-schedule-item",
		Keys: []cache.Key{key},
		Apply: func() {
			c.cache.Set(key, func(old any) any {
				return types.AppendScheduleItem(scheduleItemsOf(old), placeholder)
			})
		},
		Call: func(ctx context.Context) error {
			item, err := api.AddScheduleItem(ctx, c.gw, req)
			if err != nil {
				return err
			}
			created = item
			return nil
		},
		Confirm: func() {
			if created == nil {
				return
			}
			c.cache.Set(key, func(old any) any {
				return types.ReplaceScheduleItem(scheduleItemsOf(old), placeholder.ID, *created)
			})
		},
	})
}

// UpdateScheduleItem patches one schedule item; the merge is exhaustive on
// the item's kind tag, so appointment patches never bleed into medication
// fields and vice versa.
func (c *Client) UpdateScheduleItem(ctx context.Context, name ScheduleName, id string, req UpdateScheduleItemRequest) (*EnqueueAck, error) {
	if err := types.ValidateScheduleName(name); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(id, "scheduleId"); err != nil {
		return nil, err
	}
	key := types.SchedulesKey(name)
	return c.coord.Run(ctx, mutate.Mutation{
		Name: "update-schedule-item",
		Keys: []cache.Key{key},
		Apply: func() {
			c.cache.Set(key, func(old any) any {
				return types.MergeScheduleItem(scheduleItemsOf(old), id, req)
			})
		},
		Call: func(ctx context.Context) error {
			return api.UpdateScheduleItem(ctx, c.gw, name, id, req)
		},
	})
}

// DeleteScheduleItem removes one schedule item. onSettled runs once the
// mutation settles, success or failure — the UI uses it to close the editor
// regardless of outcome. It may be nil.
func (c *Client) DeleteScheduleItem(ctx context.Context, name ScheduleName, id string, onSettled func(error)) (*EnqueueAck, error) {
	if err := types.ValidateScheduleName(name); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(id, "scheduleId"); err != nil {
		return nil, err
	}
	key := types.SchedulesKey(name)
	return c.coord.Run(ctx, mutate.Mutation{
		Name: "delete-schedule-item",
		Keys: []cache.Key{key},
		Apply: func() {
			c.cache.Set(key, func(old any) any {
				return types.RemoveScheduleItem(scheduleItemsOf(old), id)
			})
		},
		Call: func(ctx context.Context) error {
			return api.DeleteScheduleItem(ctx, c.gw, name, id)
		},
		OnSettled: onSettled,
	})
}

// UpdateFile patches a file's title and description.
func (c *Client) UpdateFile(ctx context.Context, folder, id string, req UpdateFileRequest) (*EnqueueAck, error) {
	if err := types.ValidateIDPresent(folder, "folderName"); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(id, "fileId"); err != nil {
		return nil, err
	}
	key := types.FilesKey(folder)
	return c.coord.Run(ctx, mutate.Mutation{
		Name: "update-file",
		Keys: []cache.Key{key},
		Apply: func() {
			c.cache.Set(key, func(old any) any {
				return types.MergeFile(filesOf(old), id, req)
			})
		},
		Call: func(ctx context.Context) error {
			return api.UpdateFile(ctx, c.gw, folder, id, req)
		},
	})
}

// DeleteFile removes a file. The folder-length counters depend on this
// mutation, so their cache entry is invalidated once the delete confirms.
func (c *Client) DeleteFile(ctx context.Context, folder, id string) (*EnqueueAck, error) {
	if err := types.ValidateIDPresent(folder, "folderName"); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(id, "fileId"); err != nil {
		return nil, err
	}
	key := types.FilesKey(folder)
	return c.coord.Run(ctx, mutate.Mutation{
		Name: "delete-file",
		Keys: []cache.Key{key},
		Apply: func() {
			c.cache.Set(key, func(old any) any {
				return types.RemoveFile(filesOf(old), id)
			})
		},
		Call: func(ctx context.Context) error {
			return api.DeleteFile(ctx, c.gw, folder, id)
		},
		Invalidate: []cache.Key{types.FoldersLengthKey()},
	})
}

// DeletePost removes a post from a feed. Only the owner may delete a post;
// the caller verifies ownership before invoking this.
func (c *Client) DeletePost(ctx context.Context, cancerType, postID, ownerID string) (*EnqueueAck, error) {
	if err := types.ValidateIDPresent(postID, "postId"); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(ownerID, "ownerId"); err != nil {
		return nil, err
	}
	key := types.PostsKey(cancerType)
	return c.coord.Run(ctx, mutate.Mutation{
		Name: "delete-post",
		Keys: []cache.Key{key},
		Apply: func() {
			c.cache.Set(key, func(old any) any {
				return types.RemovePost(postsOf(old), postID)
			})
		},
		Call: func(ctx context.Context) error {
			return api.DeletePost(ctx, c.gw, postID, ownerID)
		},
	})
}

// ToggleFavorite toggles userID's like on a post: present is removed,
// absent inserts a pending like with a placeholder id. The placeholder is
// reconciled away by the next authoritative feed fetch.
func (c *Client) ToggleFavorite(ctx context.Context, cancerType, postID, userID string) (*EnqueueAck, error) {
	if err := types.ValidateIDPresent(postID, "postId"); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, err
	}
	key := types.PostsKey(cancerType)
	return c.coord.Run(ctx, mutate.Mutation{
		Name: "toggle-favorite",
		Keys: []cache.Key{key},
		Apply: func() {
			c.cache.Set(key, func(old any) any {
				return types.TogglePostLike(postsOf(old), postID, userID, time.Now())
			})
		},
		Call: func(ctx context.Context) error {
			return api.TogglePostFavorite(ctx, c.gw, postID)
		},
	})
}

// ToggleReplyFavorite toggles userID's like on one reply of a post.
func (c *Client) ToggleReplyFavorite(ctx context.Context, cancerType, postID, replyID, userID string) (*EnqueueAck, error) {
	if err := types.ValidateIDPresent(postID, "postId"); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(replyID, "replyId"); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, err
	}
	key := types.PostsKey(cancerType)
	return c.coord.Run(ctx, mutate.Mutation{
		Name: "toggle-reply-favorite",
		Keys: []cache.Key{key},
		Apply: func() {
			c.cache.Set(key, func(old any) any {
				return types.ToggleReplyLike(postsOf(old), postID, replyID, userID, time.Now())
			})
		},
		Call: func(ctx context.Context) error {
			return api.ToggleReplyFavorite(ctx, c.gw, postID, replyID)
		},
	})
}

// AddReply appends userID's reply to a post. The reply shows up immediately
// as a pending entity; the server does not echo the created reply, so the
// placeholder stands until the next authoritative refetch replaces the
// reply list wholesale.
func (c *Client) AddReply(ctx context.Context, cancerType, postID, userID string, req AddReplyRequest) (*EnqueueAck, error) {
	if err := types.ValidateIDPresent(postID, "postId"); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, err
	}
	if err := types.ValidateAddReply(req); err != nil {
		return nil, err
	}
	key := types.PostsKey(cancerType)
	reply := types.Reply{
		ID:          types.PlaceholderID(),
		Owner:       userID,
		Description: req.Description,
		CreatedAt:   time.Now(),
		Pending:     true,
	}
	return c.coord.Run(ctx, mutate.Mutation{
		Name: "add-reply",
		Keys: []cache.Key{key},
		Apply: func() {
			c.cache.Set(key, func(old any) any {
				return types.AppendReply(postsOf(old), postID, reply)
			})
		},
		Call: func(ctx context.Context) error {
			return api.AddReply(ctx, c.gw, postID, req)
		},
	})
}

// DeleteReply removes a reply from a post. onSettled (may be nil) lets a
// detail view showing the single post re-render without a full refetch.
func (c *Client) DeleteReply(ctx context.Context, cancerType, postID, replyID string, onSettled func(error)) (*EnqueueAck, error) {
	if err := types.ValidateIDPresent(postID, "postId"); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(replyID, "replyId"); err != nil {
		return nil, err
	}
	key := types.PostsKey(cancerType)
	return c.coord.Run(ctx, mutate.Mutation{
		Name: "delete-reply",
		Keys: []cache.Key{key},
		Apply: func() {
			c.cache.Set(key, func(old any) any {
				return types.RemoveReply(postsOf(old), postID, replyID)
			})
		},
		Call: func(ctx context.Context) error {
			return api.DeleteReply(ctx, c.gw, postID, replyID)
		},
		OnSettled: onSettled,
	})
}

// ToggleFollow toggles userID's follow on profileID. Two aggregate views
// change at once — userID's followings and profileID's followers — keeping
// the relation's biconditional speculatively; on failure both sides roll
// back together from one atomic snapshot pair.
func (c *Client) ToggleFollow(ctx context.Context, userID, profileID string) (*EnqueueAck, error) {
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(profileID, "profileId"); err != nil {
		return nil, err
	}
	followingsKey := types.FollowingsKey(userID)
	followersKey := types.FollowersKey(profileID)
	return c.coord.Run(ctx, mutate.Mutation{
		Name: "toggle-follow",
		Keys: []cache.Key{followingsKey, followersKey},
		Apply: func() {
			c.cache.Set(followingsKey, func(old any) any {
				return types.ToggleMembership(namesOf(old), profileID)
			})
			c.cache.Set(followersKey, func(old any) any {
				return types.ToggleMembership(namesOf(old), userID)
			})
		},
		Call: func(ctx context.Context) error {
			return api.ToggleFollower(ctx, c.gw, profileID)
		},
	})
}
