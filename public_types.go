package client

import (
	"github.com/carejourney/client-go/internal/cache"
	"github.com/carejourney/client-go/internal/gateway"
	"github.com/carejourney/client-go/internal/shardqueue"
	"github.com/carejourney/client-go/internal/types"
)

// Public type aliases so SDK consumers can import only the client package.

type (
	// Domain entities
	ScheduleItem  = types.ScheduleItem
	ScheduleKind  = types.ScheduleKind
	ScheduleName  = types.ScheduleName
	FileInfo      = types.FileInfo
	Post          = types.Post
	Like          = types.Like
	Reply         = types.Reply
	FollowProfile = types.FollowProfile

	// Requests
	AddScheduleItemRequest    = types.AddScheduleItemRequest
	UpdateScheduleItemRequest = types.UpdateScheduleItemRequest
	UpdateFileRequest         = types.UpdateFileRequest
	AddReplyRequest           = types.AddReplyRequest

	// Responses
	EnqueueAck    = types.EnqueueAck
	PostPage      = types.PostPage
	FolderLengths = types.FolderLengths

	// Cache addressing
	Key = cache.Key

	// Settlement executor tuning (see WithShardConfig)
	ShardConfig = shardqueue.Config

	// Credentials
	CredentialSource = gateway.CredentialSource
	StaticCredential = gateway.StaticCredential
)

const (
	KindAppointment = types.KindAppointment
	KindMedication  = types.KindMedication

	ScheduleAppointments = types.ScheduleAppointments
	ScheduleMedications  = types.ScheduleMedications
)

// Cache key constructors, re-exported for AwaitSettled and observability.
var (
	SchedulesKey     = types.SchedulesKey
	FilesKey         = types.FilesKey
	FoldersLengthKey = types.FoldersLengthKey
	PostsKey         = types.PostsKey
	FollowersKey     = types.FollowersKey
	FollowingsKey    = types.FollowingsKey
)
