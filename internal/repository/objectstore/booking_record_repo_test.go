package objectstore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njprem/Fit_city_Booking/internal/domain"
)

type memoryStorage struct {
	objects map[string][]byte
	types   map[string]string
	listErr error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryStorage) Upload(_ context.Context, bucket, objectName, contentType string, reader io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	key := bucket + "/" + objectName
	m.objects[key] = data
	m.types[key] = contentType
	return "memory://" + key, nil
}

func (m *memoryStorage) Download(_ context.Context, bucket, objectName string) ([]byte, error) {
	data, ok := m.objects[bucket+"/"+objectName]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func (m *memoryStorage) List(_ context.Context, bucket, prefix string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var names []string
	for key := range m.objects {
		name := strings.TrimPrefix(key, bucket+"/")
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}

func TestAppendAndListPreservesArrivalOrder(t *testing.T) {
	store := newMemoryStorage()
	repo, err := NewBookingRecordRepo(store, "fitcity-bookings")
	require.NoError(t, err)

	fixed := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	ctx := context.Background()
	payloads := []string{
		`{"id":"zeta","travelers":1}`,
		`{"id":"alpha","date":"2026-11-20"}`,
		`{"id":"mid/dle","user":{"name":"Ada"}}`,
	}
	for _, p := range payloads {
		var head struct{ ID string }
		require.NoError(t, json.Unmarshal([]byte(p), &head))
		require.NoError(t, repo.Append(ctx, domain.BookingRecord{ID: head.ID, Payload: json.RawMessage(p)}))
	}

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, p := range payloads {
		assert.Equal(t, p, string(got[i]))
	}

	for key, ct := range store.types {
		assert.Equal(t, "application/json", ct, key)
		assert.True(t, strings.HasPrefix(key, "fitcity-bookings/bookings/"))
	}
}

func TestListEmptyBucket(t *testing.T) {
	repo, err := NewBookingRecordRepo(newMemoryStorage(), "b")
	require.NoError(t, err)
	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListPropagatesErrors(t *testing.T) {
	store := newMemoryStorage()
	repo, err := NewBookingRecordRepo(store, "b")
	require.NoError(t, err)

	store.objects["b/bookings/bad.json"] = []byte("{")
	_, err = repo.List(context.Background())
	require.ErrorContains(t, err, "bad.json")

	store.listErr = errors.New("access denied")
	_, err = repo.List(context.Background())
	require.ErrorContains(t, err, "access denied")
}

func TestNewBookingRecordRepoValidation(t *testing.T) {
	_, err := NewBookingRecordRepo(nil, "b")
	require.Error(t, err)
	_, err = NewBookingRecordRepo(newMemoryStorage(), "")
	require.Error(t, err)
}
