package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pdlabs/pdgame/internal/model"
	"github.com/pdlabs/pdgame/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSetAndGet() {
	err := s.storage.Set(s.ctx, storage.KeyTheme, "dark")
	s.Require().NoError(err)

	value, err := s.storage.Get(s.ctx, storage.KeyTheme)
	s.Require().NoError(err)
	s.Equal("dark", value)
}

func (s *StorageSuite) TestGetAbsentKey() {
	_, err := s.storage.Get(s.ctx, storage.KeyPlayer)
	s.ErrorIs(err, model.ErrKeyNotFound)
}

func (s *StorageSuite) TestSetOverwrites() {
	_ = s.storage.Set(s.ctx, storage.KeyTheme, "light")
	_ = s.storage.Set(s.ctx, storage.KeyTheme, "dark")

	value, err := s.storage.Get(s.ctx, storage.KeyTheme)
	s.Require().NoError(err)
	s.Equal("dark", value)
}

func (s *StorageSuite) TestDelete() {
	_ = s.storage.Set(s.ctx, storage.KeyConnections, "[]")

	err := s.storage.Delete(s.ctx, storage.KeyConnections)
	s.Require().NoError(err)

	_, err = s.storage.Get(s.ctx, storage.KeyConnections)
	s.ErrorIs(err, model.ErrKeyNotFound)
}

func (s *StorageSuite) TestDeleteAbsentKeyIsNoop() {
	err := s.storage.Delete(s.ctx, "nonexistent")
	s.NoError(err)
}

func (s *StorageSuite) TestKeysAreIndependent() {
	_ = s.storage.Set(s.ctx, storage.KeyTheme, "dark")
	_ = s.storage.Set(s.ctx, storage.KeyConnections, "[]")

	_ = s.storage.Delete(s.ctx, storage.KeyTheme)

	value, err := s.storage.Get(s.ctx, storage.KeyConnections)
	s.Require().NoError(err)
	s.Equal("[]", value)
}

func (s *StorageSuite) TestConcurrentWriters() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.storage.Set(s.ctx, storage.KeyTheme, fmt.Sprintf("value-%d", i))
			_, _ = s.storage.Get(s.ctx, storage.KeyTheme)
		}(i)
	}
	wg.Wait()

	_, err := s.storage.Get(s.ctx, storage.KeyTheme)
	s.NoError(err)
}
