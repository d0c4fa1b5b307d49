package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerState(t *testing.T) {
	m := NewManager()

	assert.Equal(t, None, m.GetUserState(1))

	m.SetUserState(1, WaitingForValue)
	assert.Equal(t, WaitingForValue, m.GetUserState(1))
	assert.Equal(t, None, m.GetUserState(2))

	m.ClearUserState(1)
	assert.Equal(t, None, m.GetUserState(1))
}

func TestManagerTempData(t *testing.T) {
	m := NewManager()

	_, ok := m.GetTempData(1, TempReadingContext)
	assert.False(t, ok)

	m.SetTempData(1, TempReadingContext, "fasting")
	value, ok := m.GetTempData(1, TempReadingContext)
	assert.True(t, ok)
	assert.Equal(t, "fasting", value)

	m.ClearTempData(1)
	_, ok = m.GetTempData(1, TempReadingContext)
	assert.False(t, ok)
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup

	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.SetUserState(id, WaitingForValue)
			m.SetTempData(id, TempReadingContext, "random")
			_ = m.GetUserState(id)
			_, _ = m.GetTempData(id, TempReadingContext)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, WaitingForValue, m.GetUserState(49))
}
