package server

import (
	"context"

	"github.com/itiky/game-console/model"
)

func (s *ConsoleService) listStorage(ctx context.Context, payload string) (string, error) {
	var in model.ListStorageRequest
	if err := decodePayload(payload, &in); err != nil {
		return "", err
	}

	req, err := model.NewListStorageRequest(in.StorageFilter, in.Cursor)
	if err != nil {
		return "", invalidArgument(err)
	}

	list, err := s.store.ListStorage(req, s.storagePageSize)
	if err != nil {
		return "", storeError(err, "")
	}

	return encodeResult(list)
}

func (s *ConsoleService) getStorage(ctx context.Context, payload string) (string, error) {
	ref, err := s.decodeStorageRef(payload)
	if err != nil {
		return "", err
	}

	obj, err := s.store.GetStorage(ref)
	if err != nil {
		return "", storeError(err, "Storage object not found.")
	}

	return encodeResult(obj)
}

func (s *ConsoleService) createStorage(ctx context.Context, payload string) (string, error) {
	var in model.StorageObject
	if err := decodePayload(payload, &in); err != nil {
		return "", err
	}

	obj, err := model.NewStorageObject(in.Collection, in.Key, in.UserId, in.Value, in.PermissionRead, in.PermissionWrite)
	if err != nil {
		return "", invalidArgument(err)
	}

	return encodeResult(s.store.WriteStorage(obj, s.now()))
}

func (s *ConsoleService) deleteStorage(ctx context.Context, payload string) (string, error) {
	ref, err := s.decodeStorageRef(payload)
	if err != nil {
		return "", err
	}

	if err := s.store.DeleteStorage(ref, s.now()); err != nil {
		return "", storeError(err, "Storage object not found.")
	}

	return encodeResult(model.Empty{})
}

func (s *ConsoleService) deleteAllStorage(ctx context.Context, payload string) (string, error) {
	n := s.store.DeleteAllStorage(s.now())
	s.logger.Info("Storage wiped", "objects", n)

	return encodeResult(model.Empty{})
}

// decodeStorageRef decodes and validates a storage object composite key.
func (s *ConsoleService) decodeStorageRef(payload string) (model.StorageObjectRequest, error) {
	var in model.StorageObjectRequest
	if err := decodePayload(payload, &in); err != nil {
		return model.StorageObjectRequest{}, err
	}

	ref, err := model.NewStorageObjectRequest(in.Collection, in.Key, in.UserId)
	if err != nil {
		return model.StorageObjectRequest{}, invalidArgument(err)
	}

	return ref, nil
}
