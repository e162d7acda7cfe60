package storage

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/itiky/game-console/model"
)

// Seed is the generated mock data file content.
type Seed struct {
	Users       []model.User
	Objects     []model.StorageObject
	Tournaments []model.Tournament
}

// GenAndSaveSeed generates random console resources and saves them to file system.
func GenAndSaveSeed(filePath string, users, objectsPerUser, tournaments int) error {
	if users <= 0 {
		return fmt.Errorf("%s: must be GT 0", "users")
	}
	if objectsPerUser < 0 {
		return fmt.Errorf("%s: must be GTE 0", "objectsPerUser")
	}
	if tournaments < 0 {
		return fmt.Errorf("%s: must be GTE 0", "tournaments")
	}

	slog.Info("Creating objects...")
	seed := NewSeedMock(users, objectsPerUser, tournaments, time.Now())

	slog.Info("GOB marshal...")
	seedRaw := new(bytes.Buffer)
	if err := gob.NewEncoder(seedRaw).Encode(seed); err != nil {
		return fmt.Errorf("GOB marshal: %w", err)
	}

	slog.Info("Saving file...", "path", filePath)
	if err := os.WriteFile(filePath, seedRaw.Bytes(), 0644); err != nil {
		return fmt.Errorf("write to file (%s): %w", filePath, err)
	}

	slog.Info("Done", "users", len(seed.Users), "objects", len(seed.Objects), "tournaments", len(seed.Tournaments))

	return nil
}

// NewStoreFromFile builds the Store object from the seed file.
func NewStoreFromFile(filePath string) (*Store, error) {
	slog.Info("Reading file...", "path", filePath)
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading file (%s): %w", filePath, err)
	}

	slog.Info("GOB unmarshal...")
	var seed Seed
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&seed); err != nil {
		return nil, fmt.Errorf("GOB unmarshal: %w", err)
	}

	store, err := NewStoreFromSeed(seed, time.Now())
	if err != nil {
		return nil, err
	}
	slog.Info("Store created", "users", store.users.Len(), "objects", store.objects.Len(), "tournaments", store.tournaments.Len())

	return store, nil
}

// NewStoreFromSeed builds the Store object from seed data, the system user is always added.
func NewStoreFromSeed(seed Seed, now time.Time) (*Store, error) {
	s := NewStore()

	if err := s.AddUser(newSystemUser(now), now); err != nil {
		return nil, err
	}
	for i, user := range seed.Users {
		if err := s.AddUser(user, now); err != nil {
			return nil, fmt.Errorf("user[%d]: %w", i, err)
		}
	}
	for i, obj := range seed.Objects {
		if _, err := model.NewStorageObjectRequest(obj.Collection, obj.Key, obj.UserId); err != nil {
			return nil, fmt.Errorf("object[%d]: %w", i, err)
		}
		id := storageObjectId(obj.Ref())
		s.objects.Set(id, id, obj, now)
	}
	for i, t := range seed.Tournaments {
		if err := s.AddTournament(t, now); err != nil {
			return nil, fmt.Errorf("tournament[%d]: %w", i, err)
		}
	}

	return s, nil
}

// NewSeedMock builds mock console resources, every tenth user is banned.
func NewSeedMock(users, objectsPerUser, tournaments int, now time.Time) Seed {
	seed := Seed{
		Users:       make([]model.User, 0, users),
		Objects:     make([]model.StorageObject, 0, users*objectsPerUser),
		Tournaments: make([]model.Tournament, 0, tournaments),
	}

	for i := 0; i < users; i++ {
		user := newUserMock(i, now)
		seed.Users = append(seed.Users, user)
		for j := 0; j < objectsPerUser; j++ {
			seed.Objects = append(seed.Objects, newStorageObjectMock(user.Id, j, now))
		}
	}
	for i := 0; i < tournaments; i++ {
		seed.Tournaments = append(seed.Tournaments, newTournamentMock(i, now))
	}

	return seed
}

// newSystemUser builds the system user.
func newSystemUser(now time.Time) model.User {
	return model.User{
		Id:         model.SystemUserID,
		Metadata:   model.Metadata{},
		CreateTime: now.Unix(),
		UpdateTime: now.Unix(),
	}
}

// newUserMock builds a mock user, every tenth one is banned.
func newUserMock(n int, now time.Time) model.User {
	user := model.User{
		Id:          uuid.New().String(),
		Username:    fmt.Sprintf("player%05d", n),
		DisplayName: fmt.Sprintf("Player %d", n),
		LangTag:     "en",
		Metadata:    model.Metadata{"level": float64(rand.Intn(100))},
		CreateTime:  now.Unix(),
		UpdateTime:  now.Unix(),
	}
	if n%10 == 9 {
		user.DisableTime = now.Unix()
	}

	return user
}

// newStorageObjectMock builds a mock storage object.
func newStorageObjectMock(userId string, n int, now time.Time) model.StorageObject {
	collections := []string{"inventory", "profile", "progress"}
	value := fmt.Sprintf(`{"score":%d}`, rand.Int31())
	obj := model.StorageObject{
		Collection:      collections[n%len(collections)],
		Key:             fmt.Sprintf("slot%d", n),
		UserId:          userId,
		Value:           value,
		PermissionRead:  1,
		PermissionWrite: 1,
		CreateTime:      now.Unix(),
		UpdateTime:      now.Unix(),
	}

	return obj
}

// newTournamentMock builds a mock weekly tournament.
func newTournamentMock(n int, now time.Time) model.Tournament {
	const week = int64(7 * 24 * 3600)

	return model.Tournament{
		Id:          uuid.New().String(),
		Title:       fmt.Sprintf("Weekly Cup #%d", n+1),
		Description: "Generated tournament",
		Category:    n % 128,
		SortOrder:   model.DescendingSortOrder,
		Operator:    model.BestOperator,
		MaxSize:     1000,
		MaxNumScore: 3,
		CanEnter:    true,
		Duration:    week,
		CreateTime:  now.Unix() + int64(n),
		StartTime:   now.Unix(),
		StartActive: now.Unix(),
		EndActive:   now.Unix() + week,
		Metadata:    model.Metadata{"season": float64(n)},
	}
}
