package store

import (
	"context"
	"testing"

	"github.com/healix-app/healix-go/pkg/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(afero.NewMemMapFs(), "/data", zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := model.SampleUser()
	require.NoError(t, s.SaveUser(ctx, user))

	loaded, ok := s.LoadUser(ctx)
	require.True(t, ok)
	assert.Equal(t, user, loaded)
}

func TestLoadUser_AbsentWhenNothingStored(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.LoadUser(context.Background())
	assert.False(t, ok)
}

func TestLoadUser_AbsentOnCorruptBlob(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, afero.WriteFile(s.fs, s.path(userKey), []byte("{not json"), 0o600))

	_, ok := s.LoadUser(context.Background())
	assert.False(t, ok, "deserialization failures must read as absent")
}

func TestClearUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveUser(ctx, &model.UserData{Name: "A"}))
	s.ClearUser(ctx)

	_, ok := s.LoadUser(ctx)
	assert.False(t, ok)
}

func TestClearUser_LeavesTokens(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetTokens(ctx, "acc", "ref"))
	require.NoError(t, s.SaveUser(ctx, &model.UserData{Name: "A"}))
	s.ClearUser(ctx)

	access, refresh := s.Tokens(ctx)
	assert.Equal(t, "acc", access)
	assert.Equal(t, "ref", refresh)
}

func TestUpdateUser_ReadModifyWrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveUser(ctx, &model.UserData{Name: "A", Age: 30}))

	updated, err := s.UpdateUser(ctx, func(u *model.UserData) {
		u.Reminders = append(u.Reminders, model.Reminder{ID: "r1", Type: model.ReminderTypeTest, Message: "fasting glucose", Time: "07:00"})
	})
	require.NoError(t, err)
	assert.Equal(t, "A", updated.Name)
	assert.Len(t, updated.Reminders, 1)

	loaded, ok := s.LoadUser(ctx)
	require.True(t, ok)
	assert.Equal(t, updated, loaded)
}

func TestUpdateUser_StartsFromEmptyAggregate(t *testing.T) {
	s := newTestStore(t)

	updated, err := s.UpdateUser(context.Background(), func(u *model.UserData) {
		u.Name = "B"
	})
	require.NoError(t, err)
	assert.Equal(t, "B", updated.Name)
}

func TestTokenLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	access, refresh := s.Tokens(ctx)
	assert.Empty(t, access)
	assert.Empty(t, refresh)

	require.NoError(t, s.SetTokens(ctx, "acc-1", "ref-1"))
	require.NoError(t, s.SetAccessToken(ctx, "acc-2"))

	access, refresh = s.Tokens(ctx)
	assert.Equal(t, "acc-2", access)
	assert.Equal(t, "ref-1", refresh)

	s.ClearTokens(ctx)
	access, refresh = s.Tokens(ctx)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestCancelledContext_NoWrites(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.SaveUser(ctx, &model.UserData{Name: "A"}))
	_, err := s.UpdateUser(ctx, func(u *model.UserData) { u.Name = "A" })
	assert.Error(t, err)

	_, ok := s.LoadUser(context.Background())
	assert.False(t, ok, "no write may land after cancellation")
}

func TestProperty_SaveLoadIdentity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	s := newTestStore(t)
	ctx := context.Background()

	properties.Property("any well-formed aggregate round-trips unchanged", prop.ForAll(
		func(name string, age int, heightCm, weightKg float64, allergies []string) bool {
			if len(allergies) == 0 {
				allergies = nil // omitempty drops empty slices on the wire
			}
			user := &model.UserData{
				Name:      name,
				Age:       age,
				HeightCm:  heightCm,
				WeightKg:  weightKg,
				Allergies: allergies,
			}
			user.RecomputeBMI()

			if err := s.SaveUser(ctx, user); err != nil {
				return false
			}
			loaded, ok := s.LoadUser(ctx)
			if !ok {
				return false
			}
			return assert.ObjectsAreEqual(user, loaded)
		},
		gen.AlphaString(),
		gen.IntRange(0, 120),
		gen.Float64Range(0, 250),
		gen.Float64Range(0, 400),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
