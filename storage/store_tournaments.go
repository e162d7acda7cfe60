package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/itiky/game-console/model"
)

// ListTournaments returns all tournaments ordered by creation time.
func (s *Store) ListTournaments() model.TournamentList {
	s.RLock()
	defer s.RUnlock()

	items, _ := s.tournaments.Scan(nil, 0, nil)
	list := model.TournamentList{
		Tournaments: make([]model.Tournament, 0, len(items)),
		TotalCount:  len(items),
	}
	for _, item := range items {
		list.Tournaments = append(list.Tournaments, item.Value)
	}

	return list
}

// GetTournament returns a tournament by id.
func (s *Store) GetTournament(id string) (model.Tournament, error) {
	s.RLock()
	defer s.RUnlock()

	item, found := s.tournaments.Get(id)
	if !found {
		return model.Tournament{}, ErrNotFound
	}

	return item.Value, nil
}

// CreateTournament validates the request and creates a new tournament.
// A zero start time means the tournament starts now.
func (s *Store) CreateTournament(req model.CreateTournamentRequest, now time.Time) (model.Tournament, error) {
	if err := req.Validate(); err != nil {
		return model.Tournament{}, err
	}

	t := model.Tournament{
		Id:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		SortOrder:   req.SortOrder,
		Operator:    req.Operator,
		MaxSize:     req.MaxSize,
		MaxNumScore: req.MaxNumScore,
		Duration:    req.Duration,
		CreateTime:  now.Unix(),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Metadata:    req.Metadata,
	}
	if t.Metadata == nil {
		t.Metadata = model.Metadata{}
	}
	if t.StartTime == 0 {
		t.StartTime = now.Unix()
	}

	t.StartActive = t.StartTime
	t.EndActive = t.StartTime + t.Duration
	if t.EndTime != 0 && t.EndActive > t.EndTime {
		t.EndActive = t.EndTime
	}
	if req.Reset != "" {
		schedule, err := model.ParseResetSchedule(req.Reset)
		if err != nil {
			return model.Tournament{}, err
		}
		from := now
		if start := time.Unix(t.StartTime, 0); start.After(from) {
			from = start
		}
		t.NextReset = schedule.Next(from).Unix()
	}
	t.CanEnter = !req.JoinRequired && now.Unix() >= t.StartActive && now.Unix() < t.EndActive

	s.Lock()
	defer s.Unlock()

	s.tournaments.Set(t.Id, tournamentSortKey(t), t, now)

	return t, nil
}

// AddTournament stores a tournament as is, used by the seed loader.
func (s *Store) AddTournament(t model.Tournament, now time.Time) error {
	if _, err := uuid.Parse(t.Id); err != nil {
		return fmt.Errorf("%s: invalid: %w", "id", err)
	}

	s.Lock()
	defer s.Unlock()

	s.tournaments.Set(t.Id, tournamentSortKey(t), t, now)

	return nil
}

// DeleteTournament removes a tournament.
func (s *Store) DeleteTournament(id string, now time.Time) error {
	s.Lock()
	defer s.Unlock()

	if !s.tournaments.Delete(id, now) {
		return ErrNotFound
	}

	return nil
}

// tournamentSortKey orders tournaments by creation time.
func tournamentSortKey(t model.Tournament) string {
	return fmt.Sprintf("%020d", t.CreateTime)
}
