package types

import "github.com/carejourney/client-go/internal/cache"

// Cache key constructors. One cached collection per key; discriminators
// follow the backend's resource families.

func SchedulesKey(name ScheduleName) cache.Key { return cache.NewKey("schedules", string(name)) }
func FilesKey(folder string) cache.Key         { return cache.NewKey("files", folder) }
func FoldersLengthKey() cache.Key              { return cache.NewKey("folders-length") }
func PostsKey(cancerType string) cache.Key     { return cache.NewKey("posts", cancerType) }
func FollowersKey(userID string) cache.Key     { return cache.NewKey("followers", userID) }
func FollowingsKey(userID string) cache.Key    { return cache.NewKey("followings", userID) }
