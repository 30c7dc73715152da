package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/carejourney/client-go/internal/gateway"
	"github.com/carejourney/client-go/internal/types"
)

// GetPosts fetches one page of a cancer-type feed.
func GetPosts(ctx context.Context, gw *gateway.Gateway, cancerType string, limit, pageNo int) (*types.PostPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	if pageNo <= 0 {
		pageNo = 1
	}
	q := url.Values{
		"limit":      {strconv.Itoa(limit)},
		"pageNo":     {strconv.Itoa(pageNo)},
		"cancerType": {cancerType},
	}
	var page types.PostPage
	if err := gw.Do(ctx, http.MethodGet, "/post/get-posts", q, nil, &page); err != nil {
		return nil, err
	}
	page.PageNo = pageNo
	return &page, nil
}

// DeletePost removes a post. Ownership is the caller's responsibility: the
// UI verifies the acting user owns the post before invoking the mutation.
func DeletePost(ctx context.Context, gw *gateway.Gateway, postID, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(postID, "postId"); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(ownerID, "ownerId"); err != nil {
		return err
	}
	q := url.Values{"postId": {postID}, "ownerId": {ownerID}}
	return gw.Do(ctx, http.MethodDelete, "/post/post-delete", q, nil, nil)
}

// TogglePostFavorite toggles the acting user's like on a post. The server
// derives the user from the bearer credential.
func TogglePostFavorite(ctx context.Context, gw *gateway.Gateway, postID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(postID, "postId"); err != nil {
		return err
	}
	q := url.Values{"postId": {postID}}
	return gw.Do(ctx, http.MethodPost, "/post/update-post-favorite", q, nil, nil)
}

// ToggleReplyFavorite toggles the acting user's like on a reply.
func ToggleReplyFavorite(ctx context.Context, gw *gateway.Gateway, postID, replyID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(postID, "postId"); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(replyID, "replyId"); err != nil {
		return err
	}
	q := url.Values{"postId": {postID}, "replyId": {replyID}}
	return gw.Do(ctx, http.MethodPost, "/post/update-reply-favorite", q, nil, nil)
}

// AddReply posts a new reply.
func AddReply(ctx context.Context, gw *gateway.Gateway, postID string, req types.AddReplyRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(postID, "postId"); err != nil {
		return err
	}
	if err := types.ValidateAddReply(req); err != nil {
		return err
	}
	q := url.Values{"postId": {postID}}
	return gw.Do(ctx, http.MethodPost, "/post/add-reply", q, req, nil)
}

// DeleteReply removes a reply from a post.
func DeleteReply(ctx context.Context, gw *gateway.Gateway, postID, replyID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(postID, "postId"); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(replyID, "replyId"); err != nil {
		return err
	}
	q := url.Values{"postId": {postID}, "replyId": {replyID}}
	return gw.Do(ctx, http.MethodDelete, "/post/reply-delete", q, nil, nil)
}
