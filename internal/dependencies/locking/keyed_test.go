package locking

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type KeyedMutexSuite struct {
	suite.Suite
}

func TestKeyedMutexSuite(t *testing.T) {
	suite.Run(t, new(KeyedMutexSuite))
}

func (s *KeyedMutexSuite) TestSerializesSameKey() {
	km := New()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("match-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	s.Equal(workers, counter)
}

func (s *KeyedMutexSuite) TestIndependentKeysDoNotBlock() {
	km := New()

	unlockA := km.Lock("a")

	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("b")
		unlockB()
		close(done)
	}()

	<-done
	unlockA()
}

func (s *KeyedMutexSuite) TestEntriesAreReleased() {
	km := New()

	unlock := km.Lock("a")
	unlock()

	km.mu.Lock()
	defer km.mu.Unlock()
	s.Empty(km.entries)
}
