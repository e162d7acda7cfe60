package server

import (
	"context"

	"github.com/itiky/game-console/model"
)

func (s *ConsoleService) listUsers(ctx context.Context, payload string) (string, error) {
	var in model.ListUsersRequest
	if err := decodePayload(payload, &in); err != nil {
		return "", err
	}

	req, err := model.NewListUsersRequest(in.UserFilter, in.Page)
	if err != nil {
		return "", invalidArgument(err)
	}

	list, err := s.store.ListUsers(req, s.usersPageSize)
	if err != nil {
		return "", storeError(err, "")
	}

	return encodeResult(list)
}

func (s *ConsoleService) getUser(ctx context.Context, payload string) (string, error) {
	req, err := decodeUserRequest(payload)
	if err != nil {
		return "", err
	}

	user, err := s.store.GetUser(req.Id)
	if err != nil {
		return "", storeError(err, "User not found.")
	}

	return encodeResult(user)
}

func (s *ConsoleService) deleteUser(ctx context.Context, payload string) (string, error) {
	req, err := decodeUserRequest(payload)
	if err != nil {
		return "", err
	}

	if err := s.store.DeleteUser(req.Id, s.now()); err != nil {
		return "", storeError(err, "User not found.")
	}

	return encodeResult(model.Empty{})
}

func (s *ConsoleService) deleteAllUsers(ctx context.Context, payload string) (string, error) {
	n := s.store.DeleteAllUsers(s.now())
	s.logger.Info("Users wiped", "users", n)

	return encodeResult(model.Empty{})
}

func (s *ConsoleService) banUser(ctx context.Context, payload string) (string, error) {
	req, err := decodeUserRequest(payload)
	if err != nil {
		return "", err
	}

	if err := s.store.BanUser(req.Id, s.now()); err != nil {
		return "", storeError(err, "User not found.")
	}

	return encodeResult(model.Empty{})
}

func (s *ConsoleService) unbanUser(ctx context.Context, payload string) (string, error) {
	req, err := decodeUserRequest(payload)
	if err != nil {
		return "", err
	}

	if err := s.store.UnbanUser(req.Id, s.now()); err != nil {
		return "", storeError(err, "User not found.")
	}

	return encodeResult(model.Empty{})
}

// decodeUserRequest decodes and validates a single user request.
func decodeUserRequest(payload string) (model.UserRequest, error) {
	var in model.UserRequest
	if err := decodePayload(payload, &in); err != nil {
		return model.UserRequest{}, err
	}

	req, err := model.NewUserRequest(in.Id)
	if err != nil {
		return model.UserRequest{}, invalidArgument(err)
	}

	return req, nil
}
