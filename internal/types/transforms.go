package types

import (
	"time"

	"github.com/google/uuid"
)

// Pure transforms applied by the mutation coordinator's optimistic phase.
// Each returns a fresh slice; inputs are never mutated in place because the
// cached value may be concurrently read by UI observers.

// PlaceholderID mints a client-generated id for a speculative entity. The
// id is never assumed stable; authoritative refetches drop it.
func PlaceholderID() string { return "tmp-" + uuid.NewString() }

// RemoveScheduleItem drops the item with the given id, keeping order.
func RemoveScheduleItem(items []ScheduleItem, id string) []ScheduleItem {
	out := make([]ScheduleItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// MergeScheduleItem applies a field-level patch to the item matched by id.
// The merge switches exhaustively on the item's kind tag: appointment
// patches never touch medication fields and vice versa.
func MergeScheduleItem(items []ScheduleItem, id string, patch UpdateScheduleItemRequest) []ScheduleItem {
	out := make([]ScheduleItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if patch.Date != nil {
			out[i].Date = *patch.Date
		}
		if patch.Notes != nil {
			out[i].Notes = *patch.Notes
		}
		switch out[i].Kind {
		case KindAppointment:
			if patch.Title != nil {
				out[i].Title = *patch.Title
			}
			if patch.Location != nil {
				out[i].Location = *patch.Location
			}
			if patch.Reminder != nil {
				out[i].Reminder = *patch.Reminder
			}
		case KindMedication:
			if patch.Name != nil {
				out[i].Name = *patch.Name
			}
			if patch.Frequency != nil {
				out[i].Frequency = *patch.Frequency
			}
			if patch.TimesPerDay != nil {
				out[i].TimesPerDay = *patch.TimesPerDay
			}
			if patch.SpecificDays != nil {
				out[i].SpecificDays = *patch.SpecificDays
			}
			if patch.Prescriber != nil {
				out[i].Prescriber = *patch.Prescriber
			}
			if patch.Photo != nil {
				out[i].Photo = *patch.Photo
			}
		}
		break
	}
	return out
}

// AppendScheduleItem adds item to the end of the collection.
func AppendScheduleItem(items []ScheduleItem, item ScheduleItem) []ScheduleItem {
	out := make([]ScheduleItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

// ReplaceScheduleItem swaps the placeholder item for the server's canonical
// one. If the placeholder is gone (e.g. a refetch already replaced the
// list) the collection is returned unchanged.
func ReplaceScheduleItem(items []ScheduleItem, placeholderID string, confirmed ScheduleItem) []ScheduleItem {
	out := make([]ScheduleItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == placeholderID {
			out[i] = confirmed
			break
		}
	}
	return out
}

// RemoveFile drops the file with the given id.
func RemoveFile(files []FileInfo, id string) []FileInfo {
	out := make([]FileInfo, 0, len(files))
	for _, f := range files {
		if f.ID != id {
			out = append(out, f)
		}
	}
	return out
}

// MergeFile patches title/description on the file matched by id.
func MergeFile(files []FileInfo, id string, patch UpdateFileRequest) []FileInfo {
	out := make([]FileInfo, len(files))
	copy(out, files)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if patch.Title != nil {
			out[i].Title = *patch.Title
		}
		if patch.Description != nil {
			out[i].Description = *patch.Description
		}
		break
	}
	return out
}

// RemovePost drops the post with the given id from a feed page.
func RemovePost(posts []Post, id string) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// ToggleLike toggles userID's membership in a likes set: present means
// remove, absent means insert a Pending like with a placeholder id.
func ToggleLike(likes []Like, userID string, now time.Time) []Like {
	out := make([]Like, 0, len(likes)+1)
	removed := false
	for _, l := range likes {
		if l.UserID == userID {
			removed = true
			continue
		}
		out = append(out, l)
	}
	if !removed {
		out = append(out, Like{ID: PlaceholderID(), UserID: userID, CreatedAt: now, Pending: true})
	}
	return out
}

// TogglePostLike applies ToggleLike to the post matched by postID.
func TogglePostLike(posts []Post, postID, userID string, now time.Time) []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	for i := range out {
		if out[i].ID == postID {
			out[i].Likes = ToggleLike(out[i].Likes, userID, now)
			break
		}
	}
	return out
}

// ToggleReplyLike applies ToggleLike to one reply of the post matched by
// postID.
func ToggleReplyLike(posts []Post, postID, replyID, userID string, now time.Time) []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	for i := range out {
		if out[i].ID != postID {
			continue
		}
		replies := make([]Reply, len(out[i].Replies))
		copy(replies, out[i].Replies)
		for j := range replies {
			if replies[j].ID == replyID {
				replies[j].Likes = ToggleLike(replies[j].Likes, userID, now)
				break
			}
		}
		out[i].Replies = replies
		break
	}
	return out
}

// AppendReply adds reply to the post matched by postID.
func AppendReply(posts []Post, postID string, reply Reply) []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	for i := range out {
		if out[i].ID == postID {
			replies := make([]Reply, len(out[i].Replies), len(out[i].Replies)+1)
			copy(replies, out[i].Replies)
			out[i].Replies = append(replies, reply)
			break
		}
	}
	return out
}

// RemoveReply drops the reply matched by replyID from the post matched by
// postID.
func RemoveReply(posts []Post, postID, replyID string) []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	for i := range out {
		if out[i].ID != postID {
			continue
		}
		replies := make([]Reply, 0, len(out[i].Replies))
		for _, r := range out[i].Replies {
			if r.ID != replyID {
				replies = append(replies, r)
			}
		}
		out[i].Replies = replies
		break
	}
	return out
}

// ToggleMembership toggles id's membership in an ordered string set, used
// for follower/following lists.
func ToggleMembership(list []string, id string) []string {
	out := make([]string, 0, len(list)+1)
	removed := false
	for _, v := range list {
		if v == id {
			removed = true
			continue
		}
		out = append(out, v)
	}
	if !removed {
		out = append(out, id)
	}
	return out
}

// Contains reports membership in an ordered string set.
func Contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
