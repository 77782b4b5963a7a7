package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/ramanasai/journal/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenSet struct{ *kv.Memory }

func (brokenSet) Set(context.Context, string, string) error { return errors.New("read-only") }

func TestInitialize_SystemDarkThenToggle(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	var applied []bool
	s := New(storage, WithSystemPreference(Fixed(true)), WithApplier(func(d bool) { applied = append(applied, d) }))

	require.NoError(t, s.Initialize(ctx))
	assert.True(t, s.IsDark())

	dark, err := s.Toggle(ctx)
	require.NoError(t, err)
	assert.False(t, dark)
	assert.False(t, s.IsDark())

	saved, ok, err := storage.Get(ctx, kv.KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "light", saved)
	assert.Equal(t, []bool{true, false}, applied)
}

func TestInitialize_SavedValueWinsOverSystem(t *testing.T) {
	cases := []struct {
		saved  string
		system bool
		want   bool
	}{
		{"dark", false, true},
		{"light", true, false},
		{"garbage", true, false},
	}
	for _, tc := range cases {
		t.Run(tc.saved, func(t *testing.T) {
			ctx := context.Background()
			storage := kv.NewMemory()
			require.NoError(t, storage.Set(ctx, kv.KeyTheme, tc.saved))

			s := New(storage, WithSystemPreference(Fixed(tc.system)))
			require.NoError(t, s.Initialize(ctx))
			assert.Equal(t, tc.want, s.IsDark())
		})
	}
}

func TestInitialize_DoesNotPersist(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	s := New(storage, WithSystemPreference(Fixed(false)))
	require.NoError(t, s.Initialize(ctx))

	_, ok, err := storage.Get(ctx, kv.KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "light", s.Name())
}

func TestToggle_TwiceReturnsToStart(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	s := New(storage, WithSystemPreference(Fixed(false)))
	require.NoError(t, s.Initialize(ctx))

	_, err := s.Toggle(ctx)
	require.NoError(t, err)
	saved, _, _ := storage.Get(ctx, kv.KeyTheme)
	assert.Equal(t, "dark", saved)

	_, err = s.Toggle(ctx)
	require.NoError(t, err)
	saved, _, _ = storage.Get(ctx, kv.KeyTheme)
	assert.Equal(t, "light", saved)
	assert.False(t, s.IsDark())
}

func TestToggle_SaveFailureReverts(t *testing.T) {
	ctx := context.Background()
	var applied []bool
	s := New(brokenSet{kv.NewMemory()}, WithSystemPreference(Fixed(true)), WithApplier(func(d bool) { applied = append(applied, d) }))
	require.NoError(t, s.Initialize(ctx))

	dark, err := s.Toggle(ctx)
	require.Error(t, err)
	assert.True(t, dark)
	assert.True(t, s.IsDark())
	assert.Equal(t, []bool{true, false, true}, applied)
}

func TestFromConfig(t *testing.T) {
	assert.True(t, FromConfig("dark")())
	assert.False(t, FromConfig("light")())
}
