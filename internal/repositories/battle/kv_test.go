package battle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pixel-xp/internal/entities"
	"github.com/KirkDiggler/pixel-xp/internal/errors"
	"github.com/KirkDiggler/pixel-xp/internal/repositories/battle"
	"github.com/KirkDiggler/pixel-xp/internal/repositories/kvstore"
	kvstoremock "github.com/KirkDiggler/pixel-xp/internal/repositories/kvstore/mock"
)

type KVRepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *kvstore.InMemoryStore
	repo  battle.Repository
}

func TestKVRepositorySuite(t *testing.T) {
	suite.Run(t, new(KVRepositoryTestSuite))
}

func (s *KVRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = kvstore.NewInMemory()

	repo, err := battle.NewKVRepository(&battle.Config{Store: s.store})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *KVRepositoryTestSuite) set(key, value string) {
	_, err := s.store.Set(s.ctx, kvstore.SetInput{Key: key, Value: value})
	s.Require().NoError(err)
}

func (s *KVRepositoryTestSuite) TestNewKVRepositoryValidation() {
	_, err := battle.NewKVRepository(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = battle.NewKVRepository(&battle.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *KVRepositoryTestSuite) TestLoadEmptyStore() {
	output, err := s.repo.Load(s.ctx)
	s.Require().NoError(err)

	s.False(output.Found)
	s.Empty(output.Quests)
	s.NotNil(output.Quests)
	s.Zero(output.UserXP)
}

func (s *KVRepositoryTestSuite) TestSaveThenLoad() {
	quests := []*entities.Quest{
		{ID: "1", Title: "Run", XPValue: 50, DurationMinutes: 60, Timestamp: 1700000000000},
		{ID: "2", Title: "Read", XPValue: 20, DurationMinutes: 1440, IsComplete: true, Timestamp: 1700000001000},
	}

	_, err := s.repo.Save(s.ctx, battle.SaveInput{Quests: quests, UserXP: 20})
	s.Require().NoError(err)

	output, err := s.repo.Load(s.ctx)
	s.Require().NoError(err)
	s.True(output.Found)
	s.Equal(quests, output.Quests)
	s.Equal(20, output.UserXP)
}

func (s *KVRepositoryTestSuite) TestStoredLayout() {
	_, err := s.repo.Save(s.ctx, battle.SaveInput{
		Quests: []*entities.Quest{{ID: "1", Title: "Run", XPValue: 50, DurationMinutes: 60, Timestamp: 5}},
		UserXP: 150,
	})
	s.Require().NoError(err)

	quests, err := s.store.Get(s.ctx, kvstore.GetInput{Key: battle.QuestsKey})
	s.Require().NoError(err)
	s.JSONEq(`[{"id":"1","title":"Run","xpValue":50,"durationMinutes":60,"isComplete":false,"timestamp":5}]`, quests.Value)

	xp, err := s.store.Get(s.ctx, kvstore.GetInput{Key: battle.UserXPKey})
	s.Require().NoError(err)
	s.Equal("150", xp.Value)
}

func (s *KVRepositoryTestSuite) TestSaveNilQuestsWritesEmptyArray() {
	_, err := s.repo.Save(s.ctx, battle.SaveInput{})
	s.Require().NoError(err)

	quests, err := s.store.Get(s.ctx, kvstore.GetInput{Key: battle.QuestsKey})
	s.Require().NoError(err)
	s.Equal("[]", quests.Value)
}

func (s *KVRepositoryTestSuite) TestLoadOnlyUserXP() {
	s.set(battle.UserXPKey, "42")

	output, err := s.repo.Load(s.ctx)
	s.Require().NoError(err)
	s.True(output.Found)
	s.Empty(output.Quests)
	s.Equal(42, output.UserXP)
}

func (s *KVRepositoryTestSuite) TestLoadFractionalUserXPTruncates() {
	s.set(battle.UserXPKey, "42.9")

	output, err := s.repo.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(42, output.UserXP)
}

func (s *KVRepositoryTestSuite) TestLoadCorruptQuests() {
	s.set(battle.QuestsKey, "{not json")

	output, err := s.repo.Load(s.ctx)
	s.Nil(output)
	s.True(errors.IsDataLoss(err))
	s.Equal(battle.QuestsKey, errors.GetMeta(err)["key"])
}

func (s *KVRepositoryTestSuite) TestLoadNullQuestEntry() {
	s.set(battle.QuestsKey, `[null]`)

	_, err := s.repo.Load(s.ctx)
	s.True(errors.IsDataLoss(err))
}

func (s *KVRepositoryTestSuite) TestLoadCorruptUserXP() {
	s.set(battle.UserXPKey, `"lots"`)

	_, err := s.repo.Load(s.ctx)
	s.True(errors.IsDataLoss(err))
	s.Equal(battle.UserXPKey, errors.GetMeta(err)["key"])
}

func TestKVRepository_StoreFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := kvstoremock.NewMockStore(ctrl)

	repo, err := battle.NewKVRepository(&battle.Config{Store: store})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("get failure surfaces", func(t *testing.T) {
		store.EXPECT().
			Get(gomock.Any(), kvstore.GetInput{Key: battle.QuestsKey}).
			Return(nil, errors.Unavailable("connection refused"))

		_, err := repo.Load(context.Background())
		if !errors.IsUnavailable(err) {
			t.Fatalf("expected unavailable, got %v", err)
		}
	})

	t.Run("user xp not written when quests fail", func(t *testing.T) {
		store.EXPECT().
			Set(gomock.Any(), gomock.Any()).
			Return(nil, errors.Unavailable("connection refused"))

		_, err := repo.Save(context.Background(), battle.SaveInput{UserXP: 10})
		if !errors.IsUnavailable(err) {
			t.Fatalf("expected unavailable, got %v", err)
		}
	})
}
