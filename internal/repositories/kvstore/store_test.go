package kvstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pixel-xp/internal/errors"
	"github.com/KirkDiggler/pixel-xp/internal/repositories/kvstore"
	"github.com/KirkDiggler/pixel-xp/internal/testutils"
)

// StoreContractSuite runs the same behaviour checks against every backend
type StoreContractSuite struct {
	suite.Suite
	newStore func() (kvstore.Store, func())
	store    kvstore.Store
	cleanup  func()
	ctx      context.Context
}

func (s *StoreContractSuite) SetupTest() {
	s.store, s.cleanup = s.newStore()
	s.ctx = context.Background()
}

func (s *StoreContractSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func (s *StoreContractSuite) TestGetMissingKey() {
	output, err := s.store.Get(s.ctx, kvstore.GetInput{Key: "pixelXpQuests"})

	s.Nil(output)
	s.True(errors.IsNotFound(err))
	s.Equal("pixelXpQuests", errors.GetMeta(err)["key"])
}

func (s *StoreContractSuite) TestSetThenGet() {
	_, err := s.store.Set(s.ctx, kvstore.SetInput{Key: "pixelXpUserXp", Value: "150"})
	s.Require().NoError(err)

	output, err := s.store.Get(s.ctx, kvstore.GetInput{Key: "pixelXpUserXp"})
	s.Require().NoError(err)
	s.Equal("150", output.Value)
}

func (s *StoreContractSuite) TestLastWriteWins() {
	_, err := s.store.Set(s.ctx, kvstore.SetInput{Key: "k", Value: "first"})
	s.Require().NoError(err)
	_, err = s.store.Set(s.ctx, kvstore.SetInput{Key: "k", Value: "second"})
	s.Require().NoError(err)

	output, err := s.store.Get(s.ctx, kvstore.GetInput{Key: "k"})
	s.Require().NoError(err)
	s.Equal("second", output.Value)
}

func (s *StoreContractSuite) TestEmptyValueIsStored() {
	_, err := s.store.Set(s.ctx, kvstore.SetInput{Key: "k", Value: ""})
	s.Require().NoError(err)

	output, err := s.store.Get(s.ctx, kvstore.GetInput{Key: "k"})
	s.Require().NoError(err)
	s.Equal("", output.Value)
}

func (s *StoreContractSuite) TestEmptyKeyRejected() {
	_, err := s.store.Get(s.ctx, kvstore.GetInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.store.Set(s.ctx, kvstore.SetInput{Value: "x"})
	s.True(errors.IsInvalidArgument(err))
}

func TestInMemoryStore(t *testing.T) {
	suite.Run(t, &StoreContractSuite{
		newStore: func() (kvstore.Store, func()) {
			return kvstore.NewInMemory(), nil
		},
	})
}

func TestRedisStore(t *testing.T) {
	suite.Run(t, &StoreContractSuite{
		newStore: func() (kvstore.Store, func()) {
			client, cleanup := testutils.CreateTestRedisClient(t)
			store, err := kvstore.NewRedis(&kvstore.RedisConfig{Client: client, Prefix: "pixelxp:"})
			if err != nil {
				t.Fatalf("creating redis store: %v", err)
			}
			return store, cleanup
		},
	})
}

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &StoreContractSuite{
		newStore: func() (kvstore.Store, func()) {
			path := filepath.Join(t.TempDir(), "nested", "pixelxp.db")
			db, err := kvstore.OpenSQLite(context.Background(), path)
			if err != nil {
				t.Fatalf("opening sqlite: %v", err)
			}
			store, err := kvstore.NewSQLite(&kvstore.SQLiteConfig{DB: db})
			if err != nil {
				t.Fatalf("creating sqlite store: %v", err)
			}
			return store, func() { _ = db.Close() }
		},
	})
}
