package cache

import (
	"context"
	"errors"
	"testing"
)

// mockCacheService returns a canned result without calling fetchFn.
type mockCacheService struct {
	result any
	err    error
}

func (m *mockCacheService) GetOrFetch(ctx context.Context, key string, fetchFn FetchFn[any]) (any, error) {
	return m.result, m.err
}

func (m *mockCacheService) Get(ctx context.Context, key string) (any, bool) {
	return m.result, m.result != nil
}

func (m *mockCacheService) Delete(ctx context.Context, key string) error {
	return nil
}

func (m *mockCacheService) DeleteByPrefix(ctx context.Context, prefix string) error {
	return nil
}

func (m *mockCacheService) InvalidateKeys(ctx context.Context, keys []string) error {
	return nil
}

func TestGetOrFetch_NilInterfaceResult(t *testing.T) {
	mock := &mockCacheService{}

	type SomeInterface interface {
		DoSomething() string
	}

	result, err := GetOrFetch[SomeInterface](context.Background(), mock, "test-key", func(ctx context.Context) (SomeInterface, error) {
		return nil, nil
	})

	if err != nil {
		t.Errorf("expected no error but got: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result but got: %v", result)
	}
}

func TestGetOrFetch_TypedNilPointer(t *testing.T) {
	mock := &mockCacheService{result: (*string)(nil)}

	result, err := GetOrFetch[*string](context.Background(), mock, "test-key", func(ctx context.Context) (*string, error) {
		return nil, nil
	})

	if err != nil {
		t.Errorf("expected no error but got: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result but got: %v", result)
	}
}

func TestGetOrFetch_TypeAssertionFailure(t *testing.T) {
	mock := &mockCacheService{result: "wrong-type"}

	result, err := GetOrFetch[int](context.Background(), mock, "test-key", func(ctx context.Context) (int, error) {
		return 42, nil
	})

	if !errors.Is(err, ErrInvalidResultType) {
		t.Errorf("expected ErrInvalidResultType but got: %v", err)
	}
	if result != 0 {
		t.Errorf("expected zero value (0) but got: %v", result)
	}
}

func TestGetOrFetch_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	mock := &mockCacheService{result: "ignored", err: boom}

	result, err := GetOrFetch[string](context.Background(), mock, "test-key", func(ctx context.Context) (string, error) {
		return "", boom
	})

	if !errors.Is(err, boom) {
		t.Errorf("expected boom but got: %v", err)
	}
	if result != "" {
		t.Errorf("expected zero value but got: %q", result)
	}
}

func TestGetOrFetch_ThroughSturdyc(t *testing.T) {
	svc, err := NewCacheService(DefaultConfig())
	if err != nil {
		t.Fatalf("NewCacheService() failed: %v", err)
	}

	calls := 0
	fetch := func(ctx context.Context) ([]int, error) {
		calls++
		return []int{1, 2, 3}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := GetOrFetch(context.Background(), svc, "numbers#0", fetch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 3 {
			t.Errorf("expected 3 values, got %v", got)
		}
	}
	if calls != 1 {
		t.Errorf("expected a single fetch, got %d", calls)
	}
}

func TestConfig_RoundTripsThroughInternal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EarlyRefresh = &EarlyRefreshConfig{MinAsyncRefreshTime: 1, MaxAsyncRefreshTime: 2, SyncRefreshTime: 3, RetryBaseDelay: 4}

	back := convertFromInternal(cfg.toInternal())
	if back.Capacity != cfg.Capacity || back.TTL != cfg.TTL || *back.EarlyRefresh != *cfg.EarlyRefresh {
		t.Errorf("config did not survive conversion: %+v vs %+v", back, cfg)
	}
	if err := back.Validate(); err != nil {
		t.Errorf("expected valid config: %v", err)
	}
}
