package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/itiky/game-console/model"
)

// TournamentView is the tournaments list, fetched all at once.
type TournamentView struct {
	sync.Mutex
	dispatcher *Dispatcher
	config     viewConfig
	// State
	result model.TournamentList
	state  model.RequestState
}

// Reset fetches all tournaments.
func (v *TournamentView) Reset(ctx context.Context) error {
	v.Lock()
	v.state.Begin()
	v.Unlock()

	list, err := v.dispatcher.ListTournaments(ctx)

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

// Create creates a tournament and refreshes the list.
func (v *TournamentView) Create(ctx context.Context, req model.CreateTournamentRequest) (model.Tournament, error) {
	if err := req.Validate(); err != nil {
		return model.Tournament{}, err
	}

	t, err := v.dispatcher.CreateTournament(ctx, req)
	if err != nil {
		v.setFailure(err)
		return model.Tournament{}, err
	}

	return t, v.Reset(ctx)
}

// Delete removes a tournament after confirmation and refreshes the list.
func (v *TournamentView) Delete(ctx context.Context, id string) (bool, error) {
	req, err := model.NewTournamentRequest(id)
	if err != nil {
		return false, err
	}
	if !v.config.confirm(fmt.Sprintf("Delete tournament %s?", req.Id)) {
		return false, nil
	}

	if err := v.dispatcher.DeleteTournament(ctx, req); err != nil {
		v.setFailure(err)
		return false, err
	}

	return true, v.Reset(ctx)
}

// Result returns the last fetched list.
func (v *TournamentView) Result() model.TournamentList {
	v.Lock()
	defer v.Unlock()

	return v.result
}

// State returns the last request state.
func (v *TournamentView) State() model.RequestState {
	v.Lock()
	defer v.Unlock()

	return v.state
}

func (v *TournamentView) setFailure(err error) {
	v.Lock()
	defer v.Unlock()

	v.state.Fail(inlineMessage(err))
}

// NewTournamentView creates a new TournamentView object.
func NewTournamentView(dispatcher *Dispatcher, opts ...ViewOption) *TournamentView {
	return &TournamentView{
		dispatcher: dispatcher,
		config:     newViewConfig(opts...),
	}
}
