package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeCounter(t *testing.T) {
	sc := NewSafeCounter()
	assert.Equal(t, 0, sc.Value())

	assert.Equal(t, 1, sc.Increment())
	assert.Equal(t, 2, sc.Increment())

	sc.Set(10)
	assert.Equal(t, 10, sc.Value())
}

func TestSafeCounterConcurrent(t *testing.T) {
	sc := NewSafeCounter()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sc.Increment()
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, sc.Value())
}

func TestSafeFlag(t *testing.T) {
	sf := NewSafeFlag()
	assert.False(t, sf.Value())

	assert.True(t, sf.Set(true))
	assert.True(t, sf.Value())

	assert.False(t, sf.Toggle())
	assert.False(t, sf.Value())

	sf = NewSafeFlagWithValue(true)
	assert.True(t, sf.Value())
}
