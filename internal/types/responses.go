package types

// ------------------------------
// Response Types
// ------------------------------

// EnqueueAck acknowledges that a mutation was applied optimistically and
// its settlement queued. Key is the canonical form of the primary cache key
// the mutation touches; pass it to AwaitSettled to flush.
type EnqueueAck struct {
	Key    string `json:"key"`
	Status string `json:"status"`
}

// PostPage is one page of a cancer-type feed.
type PostPage struct {
	Posts      []Post `json:"posts"`
	PageNo     int    `json:"pageNo"`
	TotalPages int    `json:"totalPages"`
}

// FolderLengths maps folder name to item count, as returned by
// /file/folders-length.
type FolderLengths map[string]int

// OKResponse mirrors the backend's bare success envelope.
type OKResponse struct {
	Success bool `json:"success"`
}
