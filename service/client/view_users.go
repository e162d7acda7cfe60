package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/itiky/game-console/model"
)

// UserView is the page paginated users list.
type UserView struct {
	sync.Mutex
	dispatcher *Dispatcher
	config     viewConfig
	// State
	filter model.UserFilter
	page   model.Page
	result model.UserList
	state  model.RequestState
}

// Reset fetches the first page for filter.
func (v *UserView) Reset(ctx context.Context, filter model.UserFilter) error {
	return v.Restore(ctx, filter, 0)
}

// Restore fetches the page for filter, used to reproduce a view from its Location.
func (v *UserView) Restore(ctx context.Context, filter model.UserFilter, page model.Page) error {
	if _, err := model.NewListUsersRequest(filter, int(page)); err != nil {
		v.Lock()
		v.state.Fail(err.Error())
		v.Unlock()
		return err
	}

	v.Lock()
	v.filter = filter
	v.page = page
	v.Unlock()

	return v.fetch(ctx)
}

// ShowAll lists live users keeping the text filter.
func (v *UserView) ShowAll(ctx context.Context) error {
	return v.Reset(ctx, model.UserFilter{Filter: v.Filter().Filter})
}

// ShowBanned lists banned users keeping the text filter.
func (v *UserView) ShowBanned(ctx context.Context) error {
	return v.Reset(ctx, model.UserFilter{Filter: v.Filter().Filter, Banned: true})
}

// ShowTombstones lists deleted users keeping the text filter.
func (v *UserView) ShowTombstones(ctx context.Context) error {
	return v.Reset(ctx, model.UserFilter{Filter: v.Filter().Filter, Tombstones: true})
}

// Advance fetches the next page, it is a no-op unless the last page was full.
func (v *UserView) Advance(ctx context.Context) (bool, error) {
	v.Lock()
	if len(v.result.Users) < v.config.pageSize {
		v.Unlock()
		return false, nil
	}
	v.page = v.page.Next()
	v.Unlock()

	return true, v.fetch(ctx)
}

// Retreat fetches the previous page, it is a no-op on the first page.
func (v *UserView) Retreat(ctx context.Context) (bool, error) {
	v.Lock()
	page, ok := v.page.Prev()
	if !ok {
		v.Unlock()
		return false, nil
	}
	v.page = page
	v.Unlock()

	return true, v.fetch(ctx)
}

// Delete removes a user after confirmation and refreshes the first page of the current filter.
func (v *UserView) Delete(ctx context.Context, id string) (bool, error) {
	req, err := model.NewUserRequest(id)
	if err != nil {
		return false, err
	}
	if !v.config.confirm(fmt.Sprintf("Delete user %s?", req.Id)) {
		return false, nil
	}

	if err := v.dispatcher.DeleteUser(ctx, req); err != nil {
		v.setFailure(err)
		return false, err
	}

	return true, v.Reset(ctx, v.Filter())
}

// DeleteAll removes all users after confirmation and refreshes the unfiltered list.
func (v *UserView) DeleteAll(ctx context.Context) (bool, error) {
	if !v.config.confirm("Delete all users?") {
		return false, nil
	}

	if err := v.dispatcher.DeleteAllUsers(ctx); err != nil {
		v.setFailure(err)
		return false, err
	}

	return true, v.Reset(ctx, model.UserFilter{})
}

// Ban disables a user and refreshes the displayed page.
func (v *UserView) Ban(ctx context.Context, id string) error {
	return v.mutate(ctx, id, v.dispatcher.BanUser)
}

// Unban enables a user and refreshes the displayed page.
func (v *UserView) Unban(ctx context.Context, id string) error {
	return v.mutate(ctx, id, v.dispatcher.UnbanUser)
}

// Filter returns the displayed filter.
func (v *UserView) Filter() model.UserFilter {
	v.Lock()
	defer v.Unlock()

	return v.filter
}

// Page returns the displayed page index.
func (v *UserView) Page() model.Page {
	v.Lock()
	defer v.Unlock()

	return v.page
}

// Result returns the last fetched page.
func (v *UserView) Result() model.UserList {
	v.Lock()
	defer v.Unlock()

	return v.result
}

// State returns the last request state.
func (v *UserView) State() model.RequestState {
	v.Lock()
	defer v.Unlock()

	return v.state
}

// Location returns the route reproducing the view.
func (v *UserView) Location() string {
	v.Lock()
	defer v.Unlock()

	return model.UsersLocation(v.filter, v.page)
}

func (v *UserView) mutate(ctx context.Context, id string, call func(context.Context, model.UserRequest) error) error {
	req, err := model.NewUserRequest(id)
	if err != nil {
		return err
	}

	if err := call(ctx, req); err != nil {
		v.setFailure(err)
		return err
	}

	return v.fetch(ctx)
}

// fetch requests the current page, the last response to resolve wins.
func (v *UserView) fetch(ctx context.Context) error {
	v.Lock()
	req := model.ListUsersRequest{UserFilter: v.filter, Page: int(v.page)}
	v.state.Begin()
	v.Unlock()

	list, err := v.dispatcher.ListUsers(ctx, req)

	v.Lock()
	defer v.Unlock()

	if err != nil {
		v.state.Fail(inlineMessage(err))
		return err
	}
	v.result = list
	v.state.Succeed()

	return nil
}

func (v *UserView) setFailure(err error) {
	v.Lock()
	defer v.Unlock()

	v.state.Fail(inlineMessage(err))
}

// NewUserView creates a new UserView object.
func NewUserView(dispatcher *Dispatcher, opts ...ViewOption) *UserView {
	return &UserView{
		dispatcher: dispatcher,
		config:     newViewConfig(opts...),
	}
}
