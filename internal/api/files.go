package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/carejourney/client-go/internal/gateway"
	"github.com/carejourney/client-go/internal/types"
)

// GetFiles lists a folder. The returned URIs are time-limited signed URLs
// minted per request; callers must not cache them past the folder entry's
// freshness window.
func GetFiles(ctx context.Context, gw *gateway.Gateway, folder string) ([]types.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(folder, "folderName"); err != nil {
		return nil, err
	}
	var files []types.FileInfo
	if err := gw.Do(ctx, http.MethodGet, "/file/"+folder, nil, nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// GetFoldersLength fetches per-folder item counts.
func GetFoldersLength(ctx context.Context, gw *gateway.Gateway) (types.FolderLengths, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var lengths types.FolderLengths
	if err := gw.Do(ctx, http.MethodGet, "/file/folders-length", nil, nil, &lengths); err != nil {
		return nil, err
	}
	return lengths, nil
}

// UpdateFile patches a file's title and description.
func UpdateFile(ctx context.Context, gw *gateway.Gateway, folder, id string, req types.UpdateFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(folder, "folderName"); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(id, "fileId"); err != nil {
		return err
	}
	q := url.Values{"fileId": {id}, "folderName": {folder}}
	return gw.Do(ctx, http.MethodPatch, "/file/file-update", q, req, nil)
}

// DeleteFile removes a file from a folder.
func DeleteFile(ctx context.Context, gw *gateway.Gateway, folder, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(folder, "folderName"); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(id, "fileId"); err != nil {
		return err
	}
	q := url.Values{"fileId": {id}, "folderName": {folder}}
	return gw.Do(ctx, http.MethodDelete, "/file/file-delete", q, nil, nil)
}
