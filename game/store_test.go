package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaushika05/globlekay/country"
)

func TestStore_CreateAssignsUniqueCodes(t *testing.T) {
	store := NewStore()
	now := time.Unix(1700000000, 0)

	const n = 200
	codes := make(chan string, n)
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			room, err := store.Create(country.Country{Code: "FRA"}, now)
			if err != nil {
				errs <- err
				return
			}
			codes <- room.code
		}()
	}
	wg.Wait()
	close(codes)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	seen := make(map[string]bool, n)
	for code := range codes {
		assert.True(t, isRoomCode(code), "code %q is not 6 ASCII digits", code)
		assert.False(t, seen[code], "code %q assigned twice", code)
		seen[code] = true
	}
	assert.Equal(t, n, store.Len())
}

func TestStore_GetAndDelete(t *testing.T) {
	store := NewStore()
	room, err := store.Create(country.Country{Code: "FRA"}, time.Unix(1700000000, 0))
	require.NoError(t, err)

	got, ok := store.Get(room.code)
	require.True(t, ok)
	assert.Same(t, room, got)

	_, ok = store.Get("000000")
	assert.False(t, ok)

	store.Delete(room.code)
	_, ok = store.Get(room.code)
	assert.False(t, ok)

	// Deleting an absent code is a no-op.
	assert.NotPanics(t, func() {
		store.Delete(room.code)
	})
}

func TestStore_CodeReuseAfterDelete(t *testing.T) {
	store := NewStore()
	room, err := store.Create(country.Country{Code: "FRA"}, time.Unix(1700000000, 0))
	require.NoError(t, err)
	code := room.code
	store.Delete(code)

	// The freed code is allowed to come back; creating again must not fail
	// regardless.
	for i := 0; i < 10; i++ {
		_, err := store.Create(country.Country{Code: "FRA"}, time.Unix(1700000000, 0))
		require.NoError(t, err)
	}
}

func TestStore_Codes(t *testing.T) {
	store := NewStore()
	now := time.Unix(1700000000, 0)
	r1, err := store.Create(country.Country{Code: "FRA"}, now)
	require.NoError(t, err)
	r2, err := store.Create(country.Country{Code: "DEU"}, now)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{r1.code, r2.code}, store.Codes())
}

func TestGenerateCode_Format(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := generateCode()
		require.True(t, isRoomCode(code), "generated %q", code)
		require.NotEqual(t, '0', rune(code[0]), "codes never have a leading zero")
	}
}
