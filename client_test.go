package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/carejourney/client-go/internal/shardqueue"
)

// recordingNotifier captures mutation failure notifications for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ Severity, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *recordingNotifier) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	n := &recordingNotifier{}
	c := New(srv.URL, StaticCredential("test-token"),
		WithNotifier(n),
		WithShardConfig(ShardConfig{Shards: 1}),
	)
	t.Cleanup(func() { _ = c.Close() })
	return c, n
}

func TestSchedules_SecondReadServedFromCache(t *testing.T) {
	t.Parallel()
	var fetches int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		_ = json.NewEncoder(w).Encode([]ScheduleItem{{ID: "A1"}})
	}))

	ctx := context.Background()
	if _, err := c.Schedules(ctx, ScheduleAppointments); err != nil {
		t.Fatalf("first read: %v", err)
	}
	items, err := c.Schedules(ctx, ScheduleAppointments)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if len(items) != 1 || items[0].ID != "A1" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if got := atomic.LoadInt32(&fetches); got != 1 {
		t.Fatalf("server fetches = %d, want 1", got)
	}
}

func TestSchedules_ClearForcesRefetch(t *testing.T) {
	t.Parallel()
	var fetches int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		_ = json.NewEncoder(w).Encode([]ScheduleItem{{ID: "A1"}})
	}))

	ctx := context.Background()
	if _, err := c.Schedules(ctx, ScheduleAppointments); err != nil {
		t.Fatalf("read: %v", err)
	}
	c.Clear()
	if _, err := c.Schedules(ctx, ScheduleAppointments); err != nil {
		t.Fatalf("read after clear: %v", err)
	}
	if got := atomic.LoadInt32(&fetches); got != 2 {
		t.Fatalf("server fetches = %d, want 2", got)
	}
}

func TestDeleteScheduleItem_RollbackRestoresOrderAndNotifies(t *testing.T) {
	t.Parallel()
	proceed := make(chan struct{})
	var deletes int32
	mux := http.NewServeMux()
	mux.HandleFunc("/schedule/appointments", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]ScheduleItem{{ID: "A1", Title: "CT scan"}, {ID: "A2", Title: "Checkup"}})
	})
	mux.HandleFunc("/schedule/schedule-delete", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&deletes, 1)
		<-proceed
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"boom"}`)
	})
	c, n := newTestClient(t, mux)

	ctx := context.Background()
	before, err := c.Schedules(ctx, ScheduleAppointments)
	if err != nil || len(before) != 2 {
		t.Fatalf("seed read: items=%+v err=%v", before, err)
	}

	settled := make(chan error, 1)
	if _, err := c.DeleteScheduleItem(ctx, ScheduleAppointments, "A1", func(err error) { settled <- err }); err != nil {
		t.Fatalf("DeleteScheduleItem: %v", err)
	}

	// The server has not answered yet; the cache must already show the
	// optimistic removal.
	mid, err := c.Schedules(ctx, ScheduleAppointments)
	if err != nil {
		t.Fatalf("optimistic read: %v", err)
	}
	if len(mid) != 1 || mid[0].ID != "A2" {
		t.Fatalf("optimistic state = %+v, want only A2", mid)
	}

	close(proceed)
	if err := c.AwaitSettled(ctx, SchedulesKey(ScheduleAppointments)); err != nil {
		t.Fatalf("AwaitSettled: %v", err)
	}

	settleErr := <-settled
	if settleErr == nil {
		t.Fatal("settlement error = nil, want HTTP failure")
	}
	if !IsHTTPError(settleErr) {
		t.Fatalf("settlement error = %v, want HTTP classification", settleErr)
	}

	after, err := c.Schedules(ctx, ScheduleAppointments)
	if err != nil {
		t.Fatalf("post-rollback read: %v", err)
	}
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("rollback did not restore original order (-want +got):\n%s", diff)
	}
	if got := n.all(); len(got) != 1 || got[0] != "boom" {
		t.Fatalf("notifications = %v, want exactly [boom]", got)
	}
	// Error responses are terminal: no retry of the delete.
	if got := atomic.LoadInt32(&deletes); got != 1 {
		t.Fatalf("delete requests = %d, want 1", got)
	}
}

func TestDeleteScheduleItem_OverlappingFailuresRollBackBoth(t *testing.T) {
	t.Parallel()
	proceed := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/schedule/appointments", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]ScheduleItem{{ID: "A1"}, {ID: "A2"}})
	})
	mux.HandleFunc("/schedule/schedule-delete", func(w http.ResponseWriter, r *http.Request) {
		<-proceed
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"boom"}`)
	})
	c, n := newTestClient(t, mux)

	ctx := context.Background()
	before, err := c.Schedules(ctx, ScheduleAppointments)
	if err != nil || len(before) != 2 {
		t.Fatalf("seed read: items=%+v err=%v", before, err)
	}

	// Both deletes are in flight together: the second applies its optimistic
	// write while the first has not settled yet.
	if _, err := c.DeleteScheduleItem(ctx, ScheduleAppointments, "A1", nil); err != nil {
		t.Fatalf("delete A1: %v", err)
	}
	if _, err := c.DeleteScheduleItem(ctx, ScheduleAppointments, "A2", nil); err != nil {
		t.Fatalf("delete A2: %v", err)
	}
	if mid, _ := c.Schedules(ctx, ScheduleAppointments); len(mid) != 0 {
		t.Fatalf("optimistic state = %+v, want empty", mid)
	}

	close(proceed)
	if err := c.AwaitSettled(ctx, SchedulesKey(ScheduleAppointments)); err != nil {
		t.Fatalf("AwaitSettled: %v", err)
	}

	after, err := c.Schedules(ctx, ScheduleAppointments)
	if err != nil {
		t.Fatalf("post-rollback read: %v", err)
	}
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("both failed deletes must be undone (-want +got):\n%s", diff)
	}
	if got := n.all(); len(got) != 2 {
		t.Fatalf("notifications = %v, want one per failed delete", got)
	}
}

func TestToggleFollow_OptimisticBothSides(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/profile/u1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(FollowProfile{UserID: "u1", Followings: []string{"a"}})
	})
	mux.HandleFunc("/profile/update-follower/p1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true}`)
	})
	c, n := newTestClient(t, mux)

	ctx := context.Background()
	if _, err := c.Followings(ctx, "u1"); err != nil {
		t.Fatalf("seed followings: %v", err)
	}

	if _, err := c.ToggleFollow(ctx, "u1", "p1"); err != nil {
		t.Fatalf("ToggleFollow: %v", err)
	}

	followings, err := c.Followings(ctx, "u1")
	if err != nil {
		t.Fatalf("Followings: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "p1"}, followings); diff != "" {
		t.Fatalf("followings (-want +got):\n%s", diff)
	}
	// The other side of the relation was written too, without a fetch.
	followers, err := c.Followers(ctx, "p1")
	if err != nil {
		t.Fatalf("Followers: %v", err)
	}
	if diff := cmp.Diff([]string{"u1"}, followers); diff != "" {
		t.Fatalf("followers (-want +got):\n%s", diff)
	}

	if err := c.AwaitSettled(ctx, FollowingsKey("u1")); err != nil {
		t.Fatalf("AwaitSettled: %v", err)
	}
	followings, _ = c.Followings(ctx, "u1")
	if len(followings) != 2 {
		t.Fatalf("confirmed followings = %v", followings)
	}
	if got := n.all(); len(got) != 0 {
		t.Fatalf("unexpected notifications: %v", got)
	}
}

func TestToggleFollow_UnfetchedProfileRevalidates(t *testing.T) {
	t.Parallel()
	var profileReads int32
	mux := http.NewServeMux()
	mux.HandleFunc("/profile/p1", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&profileReads, 1)
		_ = json.NewEncoder(w).Encode(FollowProfile{UserID: "p1", Followers: []string{"a", "b", "c"}})
	})
	mux.HandleFunc("/profile/update-follower/p1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true}`)
	})
	c, _ := newTestClient(t, mux)

	ctx := context.Background()
	// No prior Followers fetch: the optimistic write fabricates the entry.
	if _, err := c.ToggleFollow(ctx, "u1", "p1"); err != nil {
		t.Fatalf("ToggleFollow: %v", err)
	}
	if err := c.AwaitSettled(ctx, FollowingsKey("u1")); err != nil {
		t.Fatalf("AwaitSettled: %v", err)
	}

	// The fabricated value is served while a revalidation fetches the
	// authoritative list; poll until the server truth lands.
	deadline := time.Now().Add(2 * time.Second)
	for {
		followers, err := c.Followers(ctx, "p1")
		if err != nil {
			t.Fatalf("Followers: %v", err)
		}
		if cmp.Diff([]string{"a", "b", "c"}, followers) == "" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("followers never revalidated: %v", followers)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := atomic.LoadInt32(&profileReads); got == 0 {
		t.Fatal("fabricated entry must not suppress the server read")
	}
}

func TestToggleFavorite_DoubleToggleIsIdempotent(t *testing.T) {
	t.Parallel()
	var toggles int32
	mux := http.NewServeMux()
	mux.HandleFunc("/post/get-posts", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(PostPage{Posts: []Post{{ID: "p1", Owner: "o1", Description: "hello"}}})
	})
	mux.HandleFunc("/post/update-post-favorite", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&toggles, 1)
		fmt.Fprint(w, `{"success":true}`)
	})
	c, n := newTestClient(t, mux)

	ctx := context.Background()
	if _, err := c.Posts(ctx, "bone", 10); err != nil {
		t.Fatalf("seed posts: %v", err)
	}

	if _, err := c.ToggleFavorite(ctx, "bone", "p1", "u1"); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	posts, _ := c.Posts(ctx, "bone", 10)
	if len(posts) != 1 || len(posts[0].Likes) != 1 {
		t.Fatalf("after first toggle: %+v", posts)
	}
	if !posts[0].Likes[0].Pending || posts[0].Likes[0].UserID != "u1" {
		t.Fatalf("like not pending for u1: %+v", posts[0].Likes[0])
	}

	if _, err := c.ToggleFavorite(ctx, "bone", "p1", "u1"); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	posts, _ = c.Posts(ctx, "bone", 10)
	if len(posts[0].Likes) != 0 {
		t.Fatalf("after second toggle likes = %+v, want none", posts[0].Likes)
	}

	if err := c.AwaitSettled(ctx, PostsKey("bone")); err != nil {
		t.Fatalf("AwaitSettled: %v", err)
	}
	if got := atomic.LoadInt32(&toggles); got != 2 {
		t.Fatalf("toggle requests = %d, want 2", got)
	}
	if got := n.all(); len(got) != 0 {
		t.Fatalf("unexpected notifications: %v", got)
	}
}

func TestAddReply_PlaceholderDroppedOnRefetch(t *testing.T) {
	t.Parallel()
	var replied int32
	mux := http.NewServeMux()
	mux.HandleFunc("/post/get-posts", func(w http.ResponseWriter, r *http.Request) {
		post := Post{ID: "p1", Owner: "o1", Description: "hello"}
		if atomic.LoadInt32(&replied) == 1 {
			post.Replies = []Reply{{ID: "r-real", Owner: "u1", Description: "get well soon"}}
		}
		_ = json.NewEncoder(w).Encode(PostPage{Posts: []Post{post}})
	})
	mux.HandleFunc("/post/add-reply", func(w http.ResponseWriter, r *http.Request) {
		atomic.StoreInt32(&replied, 1)
		fmt.Fprint(w, `{"success":true}`)
	})
	c, _ := newTestClient(t, mux)

	ctx := context.Background()
	if _, err := c.Posts(ctx, "bone", 10); err != nil {
		t.Fatalf("seed posts: %v", err)
	}

	if _, err := c.AddReply(ctx, "bone", "p1", "u1", AddReplyRequest{Description: "get well soon"}); err != nil {
		t.Fatalf("AddReply: %v", err)
	}

	posts, _ := c.Posts(ctx, "bone", 10)
	if len(posts) != 1 || len(posts[0].Replies) != 1 {
		t.Fatalf("optimistic reply missing: %+v", posts)
	}
	optimistic := posts[0].Replies[0]
	if !optimistic.Pending || !strings.HasPrefix(optimistic.ID, "tmp-") {
		t.Fatalf("reply should be a pending placeholder: %+v", optimistic)
	}

	if err := c.AwaitSettled(ctx, PostsKey("bone")); err != nil {
		t.Fatalf("AwaitSettled: %v", err)
	}

	// An authoritative refetch replaces the list wholesale and drops the
	// placeholder in favour of the server-assigned reply.
	c.Clear()
	posts, err := c.Posts(ctx, "bone", 10)
	if err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if len(posts[0].Replies) != 1 {
		t.Fatalf("refetched replies: %+v", posts[0].Replies)
	}
	canonical := posts[0].Replies[0]
	if canonical.ID != "r-real" || canonical.Pending {
		t.Fatalf("canonical reply: %+v", canonical)
	}
}

func TestDeleteFile_InvalidatesFolderCounts(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	files := []FileInfo{{ID: "f1", Title: "CBC", URI: "https://signed.example/f1"}}

	mux := http.NewServeMux()
	mux.HandleFunc("/file/blood-tests", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		_ = json.NewEncoder(w).Encode(files)
	})
	mux.HandleFunc("/file/folders-length", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		_ = json.NewEncoder(w).Encode(FolderLengths{"blood-tests": len(files)})
	})
	mux.HandleFunc("/file/file-delete", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		files = nil
		mu.Unlock()
		fmt.Fprint(w, `{"success":true}`)
	})
	c, n := newTestClient(t, mux)

	ctx := context.Background()
	if _, err := c.Files(ctx, "blood-tests"); err != nil {
		t.Fatalf("seed files: %v", err)
	}
	lengths, err := c.FoldersLength(ctx)
	if err != nil || lengths["blood-tests"] != 1 {
		t.Fatalf("seed lengths: %v err=%v", lengths, err)
	}

	if _, err := c.DeleteFile(ctx, "blood-tests", "f1"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	got, _ := c.Files(ctx, "blood-tests")
	if len(got) != 0 {
		t.Fatalf("optimistic files = %+v, want empty", got)
	}

	if err := c.AwaitSettled(ctx, FilesKey("blood-tests")); err != nil {
		t.Fatalf("AwaitSettled: %v", err)
	}

	// The counters entry was invalidated; a stale read serves the old value
	// while revalidating, so poll until the refreshed count lands.
	deadline := time.Now().Add(2 * time.Second)
	for {
		lengths, err = c.FoldersLength(ctx)
		if err != nil {
			t.Fatalf("FoldersLength: %v", err)
		}
		if lengths["blood-tests"] == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("folder count never refreshed: %v", lengths)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := n.all(); len(got) != 0 {
		t.Fatalf("unexpected notifications: %v", got)
	}
}

func TestMorePosts_AppendsWithoutDuplicates(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/post/get-posts", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("pageNo") {
		case "1":
			_ = json.NewEncoder(w).Encode(PostPage{Posts: []Post{{ID: "p1"}, {ID: "p2"}}})
		default:
			// Overlapping page, as happens when items shift between fetches.
			_ = json.NewEncoder(w).Encode(PostPage{Posts: []Post{{ID: "p2"}, {ID: "p3"}}})
		}
	})
	c, _ := newTestClient(t, mux)

	ctx := context.Background()
	if _, err := c.Posts(ctx, "bone", 2); err != nil {
		t.Fatalf("Posts: %v", err)
	}
	merged, err := c.MorePosts(ctx, "bone", 2, 2)
	if err != nil {
		t.Fatalf("MorePosts: %v", err)
	}
	var ids []string
	for _, p := range merged {
		ids = append(ids, p.ID)
	}
	if diff := cmp.Diff([]string{"p1", "p2", "p3"}, ids); diff != "" {
		t.Fatalf("merged feed (-want +got):\n%s", diff)
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()
	assertPanics := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	assertPanics("empty base URL", func() { New("", nil) })
	assertPanics("non-positive timeout", func() {
		c := New("http://localhost:1", nil, WithHTTPTimeout(0), WithShardConfig(ShardConfig{Shards: 1}))
		_ = c.Close()
	})
	assertPanics("nil notifier", func() {
		c := New("http://localhost:1", nil, WithNotifier(nil), WithShardConfig(ShardConfig{Shards: 1}))
		_ = c.Close()
	})
}

func TestClose_Idempotent(t *testing.T) {
	t.Parallel()
	c := New("http://localhost:1", nil, WithShardConfig(ShardConfig{Shards: 1}))
	if err := c.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestIsBackPressure(t *testing.T) {
	t.Parallel()
	if !IsBackPressure(&shardqueue.QueueFullError{Shard: 1, Length: 8, Capacity: 8}) {
		t.Fatal("QueueFullError should classify as back-pressure")
	}
	if IsBackPressure(errors.New("something else")) {
		t.Fatal("arbitrary error misclassified as back-pressure")
	}
}

func TestSchedules_RejectsUnknownCollection(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, http.NotFoundHandler())
	if _, err := c.Schedules(context.Background(), ScheduleName("diets")); err == nil {
		t.Fatal("expected validation error")
	}
}
