package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/itiky/game-console/model"
)

// StorageView is the cursor paginated storage objects list.
// The empty cursor stands for the first page.
type StorageView struct {
	sync.Mutex
	dispatcher *Dispatcher
	config     viewConfig
	// State
	filter model.StorageFilter
	stack  model.CursorStack
	cursor string
	result model.StorageList
	state  model.RequestState
}

// Reset clears the pagination and fetches the first page for filter.
func (v *StorageView) Reset(ctx context.Context, filter model.StorageFilter) error {
	if _, err := model.NewListStorageRequest(filter, ""); err != nil {
		v.Lock()
		v.state.Fail(err.Error())
		v.Unlock()
		return err
	}

	v.Lock()
	v.filter = filter
	v.stack.Clear()
	v.cursor = ""
	v.Unlock()

	return v.fetch(ctx)
}

// Advance fetches the next page, it is a no-op if the last result has no cursor.
func (v *StorageView) Advance(ctx context.Context) (bool, error) {
	v.Lock()
	if v.result.Cursor == "" {
		v.Unlock()
		return false, nil
	}
	v.stack.Push(v.cursor)
	v.cursor = v.result.Cursor
	v.Unlock()

	return true, v.fetch(ctx)
}

// Retreat fetches the previous page, it is a no-op on the first page.
func (v *StorageView) Retreat(ctx context.Context) (bool, error) {
	v.Lock()
	cursor, ok := v.stack.Pop()
	if !ok {
		v.Unlock()
		return false, nil
	}
	v.cursor = cursor
	v.Unlock()

	return true, v.fetch(ctx)
}

// Delete removes a storage object after confirmation and refreshes the first page of the current filter.
func (v *StorageView) Delete(ctx context.Context, ref model.StorageObjectRequest) (bool, error) {
	prompt := fmt.Sprintf("Delete storage object %s/%s of user %s?", ref.Collection, ref.Key, ref.UserId)
	if !v.config.confirm(prompt) {
		return false, nil
	}

	if err := v.dispatcher.DeleteStorage(ctx, ref); err != nil {
		v.setFailure(err)
		return false, err
	}

	return true, v.Reset(ctx, v.Filter())
}

// DeleteAll removes all storage objects after confirmation and refreshes the unfiltered list.
func (v *StorageView) DeleteAll(ctx context.Context) (bool, error) {
	if !v.config.confirm("Delete all storage objects?") {
		return false, nil
	}

	if err := v.dispatcher.DeleteAllStorage(ctx); err != nil {
		v.setFailure(err)
		return false, err
	}

	return true, v.Reset(ctx, model.StorageFilter{})
}

// Import uploads storage import files and refreshes the first page of the current filter.
func (v *StorageView) Import(ctx context.Context, files []ImportFile) (int, error) {
	resp, err := v.dispatcher.ImportStorage(ctx, files)
	if err != nil {
		v.setFailure(err)
		return 0, err
	}

	return resp.Imported, v.Reset(ctx, v.Filter())
}

// Filter returns the displayed filter.
func (v *StorageView) Filter() model.StorageFilter {
	v.Lock()
	defer v.Unlock()

	return v.filter
}

// Cursor returns the displayed page cursor, empty for the first page.
func (v *StorageView) Cursor() string {
	v.Lock()
	defer v.Unlock()

	return v.cursor
}

// Depth returns the number of pages behind the displayed one.
func (v *StorageView) Depth() int {
	v.Lock()
	defer v.Unlock()

	return v.stack.Len()
}

// Result returns the last fetched page.
func (v *StorageView) Result() model.StorageList {
	v.Lock()
	defer v.Unlock()

	return v.result
}

// State returns the last request state.
func (v *StorageView) State() model.RequestState {
	v.Lock()
	defer v.Unlock()

	return v.state
}

// Location returns the route reproducing the view filter.
func (v *StorageView) Location() string {
	return model.StorageLocation(v.Filter())
}

// fetch requests the page at the current cursor, the last response to resolve wins.
func (v *StorageView) fetch(ctx context.Context) error {
	v.Lock()
	req := model.ListStorageRequest{StorageFilter: v.filter, Cursor: v.cursor}
	v.state.Begin()
	v.Unlock()

	list, err := v.dispatcher.ListStorage(ctx, req)

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

func (v *StorageView) setFailure(err error) {
	v.Lock()
	defer v.Unlock()

	v.state.Fail(inlineMessage(err))
}

// NewStorageView creates a new StorageView object.
func NewStorageView(dispatcher *Dispatcher, opts ...ViewOption) *StorageView {
	return &StorageView{
		dispatcher: dispatcher,
		config:     newViewConfig(opts...),
	}
}
