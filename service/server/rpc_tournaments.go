package server

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/itiky/game-console/model"
)

func (s *ConsoleService) listTournaments(ctx context.Context, payload string) (string, error) {
	var in model.ListTournamentsRequest
	if err := decodePayload(payload, &in); err != nil {
		return "", err
	}

	return encodeResult(s.store.ListTournaments())
}

func (s *ConsoleService) getTournament(ctx context.Context, payload string) (string, error) {
	req, err := decodeTournamentRequest(payload)
	if err != nil {
		return "", err
	}

	t, err := s.store.GetTournament(req.Id)
	if err != nil {
		return "", storeError(err, "No such tournament.")
	}

	return encodeResult(t)
}

func (s *ConsoleService) createTournament(ctx context.Context, payload string) (string, error) {
	var in model.CreateTournamentRequest
	if err := decodePayload(payload, &in); err != nil {
		return "", err
	}

	t, err := s.store.CreateTournament(in, s.now())
	if err != nil {
		return "", invalidArgument(err)
	}
	s.logger.Info("Tournament created", "id", t.Id, "title", t.Title)

	return encodeResult(t)
}

func (s *ConsoleService) deleteTournament(ctx context.Context, payload string) (string, error) {
	req, err := decodeTournamentRequest(payload)
	if err != nil {
		return "", err
	}

	if err := s.store.DeleteTournament(req.Id, s.now()); err != nil {
		return "", storeError(err, "No such tournament.")
	}

	return encodeResult(model.Empty{})
}

// decodeTournamentRequest decodes and validates a single tournament request.
func decodeTournamentRequest(payload string) (model.TournamentRequest, error) {
	var in model.TournamentRequest
	if err := decodePayload(payload, &in); err != nil {
		return model.TournamentRequest{}, err
	}

	req, err := model.NewTournamentRequest(in.Id)
	if err != nil {
		return model.TournamentRequest{}, status.Error(codes.InvalidArgument, "Requires a valid tournament ID.")
	}

	return req, nil
}
