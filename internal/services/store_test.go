package services

import (
	"context"
	"time"

	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
)

// memStore is an in-memory history used by the service tests
type memStore struct {
	readings  []domain.Reading
	appendErr error
	readErr   error
}

func (m *memStore) Append(_ context.Context, r domain.Reading) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.readings = append(m.readings, r)
	return nil
}

func (m *memStore) Tail(_ context.Context, n int) ([]domain.Reading, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	if n <= 0 {
		return []domain.Reading{}, nil
	}
	if len(m.readings) > n {
		return append([]domain.Reading(nil), m.readings[len(m.readings)-n:]...), nil
	}
	return append([]domain.Reading{}, m.readings...), nil
}

func (m *memStore) FilterByContext(_ context.Context, c domain.ReadingContext) ([]domain.Reading, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := []domain.Reading{}
	for _, r := range m.readings {
		if r.Context == c {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) All(_ context.Context) ([]domain.Reading, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return append([]domain.Reading{}, m.readings...), nil
}

func (m *memStore) Close() error { return nil }

func seed(values ...int) *memStore {
	return seedCtx(domain.ContextRandom, values...)
}

func seedCtx(c domain.ReadingContext, values ...int) *memStore {
	m := &memStore{}
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local)
	for i, v := range values {
		m.readings = append(m.readings, domain.Reading{Timestamp: base.Add(time.Duration(i) * time.Hour), Context: c, Value: v})
	}
	return m
}
