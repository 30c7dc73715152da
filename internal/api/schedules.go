package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/carejourney/client-go/internal/gateway"
	"github.com/carejourney/client-go/internal/types"
)

// GetSchedules fetches the appointments or medications collection.
func GetSchedules(ctx context.Context, gw *gateway.Gateway, name types.ScheduleName) ([]types.ScheduleItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateScheduleName(name); err != nil {
		return nil, err
	}
	var items []types.ScheduleItem
	if err := gw.Do(ctx, http.MethodGet, "/schedule/"+string(name), nil, nil, &items); err != nil {
		return nil, err
	}
	// The tag is client-side; the backend infers the variant from the
	// collection, so stamp it on the way in.
	kind := name.Kind()
	for i := range items {
		items[i].Kind = kind
	}
	return items, nil
}

// AddScheduleItem creates a new appointment or medication and returns the
// server's canonical item (with its assigned id).
func AddScheduleItem(ctx context.Context, gw *gateway.Gateway, req types.AddScheduleItemRequest) (*types.ScheduleItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateAddScheduleItem(req); err != nil {
		return nil, err
	}
	path := "/schedule/add-appointment"
	if req.Kind == types.KindMedication {
		path = "/schedule/add-medication"
	}
	var created types.ScheduleItem
	if err := gw.Do(ctx, http.MethodPost, path, nil, req, &created); err != nil {
		return nil, err
	}
	created.Kind = req.Kind
	return &created, nil
}

// UpdateScheduleItem patches one schedule item.
func UpdateScheduleItem(ctx context.Context, gw *gateway.Gateway, name types.ScheduleName, id string, req types.UpdateScheduleItemRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateScheduleName(name); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(id, "scheduleId"); err != nil {
		return err
	}
	q := url.Values{"scheduleId": {id}, "scheduleName": {string(name)}}
	return gw.Do(ctx, http.MethodPatch, "/schedule/"+name.Singular()+"-update", q, req, nil)
}

// DeleteScheduleItem removes one schedule item.
func DeleteScheduleItem(ctx context.Context, gw *gateway.Gateway, name types.ScheduleName, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateScheduleName(name); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(id, "scheduleId"); err != nil {
		return err
	}
	q := url.Values{"scheduleId": {id}, "scheduleName": {string(name)}}
	return gw.Do(ctx, http.MethodDelete, "/schedule/schedule-delete", q, nil, nil)
}
