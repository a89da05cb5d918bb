package forms

import (
	"context"
	"sync"
	"testing"
	"time"

	. "offerdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStore_NewStartsEmpty(t *testing.T) {
	store := NewStore(time.Minute)
	id := store.New(FormOfferLetter)

	inst, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, FormOfferLetter, inst.Kind)
	assert.Len(t, inst.Values, len(OfferLetterFieldNames))
	for _, name := range OfferLetterFieldNames {
		assert.Equal(t, "", inst.Values[name])
	}
}

func TestStore_SetAndReset(t *testing.T) {
	store := NewStore(time.Minute)
	id := store.New(FormContact)

	require.NoError(t, store.Set(id, FieldName, "Jane"))
	require.NoError(t, store.Set(id, FieldEmail, "jane@example.com"))

	inst, _ := store.Get(id)
	assert.Equal(t, "Jane", inst.Values[FieldName])

	require.NoError(t, store.Reset(id))
	inst, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, "", inst.Values[FieldName])
	assert.Equal(t, "", inst.Values[FieldEmail])
}

func TestStore_Errors(t *testing.T) {
	store := NewStore(time.Minute)
	id := store.New(FormContact)

	assert.ErrorIs(t, store.Set("missing", FieldName, "x"), ErrNotFound)
	assert.ErrorIs(t, store.Set(id, FieldSalary, "x"), ErrUnknownField)
	assert.ErrorIs(t, store.Merge("missing", nil), ErrNotFound)
	assert.ErrorIs(t, store.Reset("missing"), ErrNotFound)
}

func TestStore_MergeIgnoresUnknownKeys(t *testing.T) {
	store := NewStore(time.Minute)
	id := store.New(FormOfferLetter)

	require.NoError(t, store.Merge(id, map[string]string{
		FieldEmployeeName: "Jane",
		"form":            id,
		"csrf":            "token",
	}))

	inst, _ := store.Get(id)
	assert.Equal(t, "Jane", inst.Values[FieldEmployeeName])
	assert.NotContains(t, inst.Values, "form")
	assert.NotContains(t, inst.Values, "csrf")
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := NewStore(time.Minute)
	id := store.New(FormContact)

	inst, _ := store.Get(id)
	inst.Values[FieldName] = "mutated"

	again, _ := store.Get(id)
	assert.Equal(t, "", again.Values[FieldName])
}

func TestStore_Ensure(t *testing.T) {
	store := NewStore(time.Minute)
	id := store.New(FormContact)

	same, created := store.Ensure(id, FormContact)
	assert.False(t, created)
	assert.Equal(t, id, same)

	other, created := store.Ensure(id, FormOfferLetter)
	assert.True(t, created)
	assert.NotEqual(t, id, other)

	fresh, created := store.Ensure("", FormContact)
	assert.True(t, created)
	assert.NotEmpty(t, fresh)
}

func TestStore_Sweep(t *testing.T) {
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	store := NewStore(10 * time.Minute)
	store.now = func() time.Time { return now }

	stale := store.New(FormContact)
	now = now.Add(8 * time.Minute)
	fresh := store.New(FormOfferLetter)

	removed := store.Sweep(now.Add(5 * time.Minute))
	assert.Equal(t, 1, removed)

	_, ok := store.Get(stale)
	assert.False(t, ok)
	_, ok = store.Get(fresh)
	assert.True(t, ok)
}

func TestStore_Discard(t *testing.T) {
	store := NewStore(time.Minute)
	id := store.New(FormContact)
	store.Discard(id)

	_, ok := store.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStore_ConcurrentWrites(t *testing.T) {
	store := NewStore(time.Minute)
	id := store.New(FormContact)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set(id, FieldMessage, "typing")
			_, _ = store.Get(id)
		}()
	}
	wg.Wait()

	inst, _ := store.Get(id)
	assert.Equal(t, "typing", inst.Values[FieldMessage])
}

func TestStore_RunSweeperStops(t *testing.T) {
	store := NewStore(time.Nanosecond)
	store.New(FormContact)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
