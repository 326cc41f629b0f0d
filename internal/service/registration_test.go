package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRegistrationFlow(t *testing.T) (*RegistrationFlow, *syncFixture) {
	t.Helper()
	f := newSyncFixture(t)
	return NewRegistrationFlow(f.store, f.client, zap.NewNop()), f
}

func TestSetBasics_Validation(t *testing.T) {
	flow, _ := newRegistrationFlow(t)

	assert.EqualError(t, flow.SetBasics(Basics{Email: "a@b.c", Password: "x"}), "name is required")
	assert.EqualError(t, flow.SetBasics(Basics{Name: "A", Password: "x"}), "email is required")
	assert.EqualError(t, flow.SetBasics(Basics{Name: "A", Email: "a@b.c"}), "password is required")
	assert.NoError(t, flow.SetBasics(Basics{Name: "A", Email: "a@b.c", Password: "x"}))
}

func TestSetDetails_RequiresBasicsFirst(t *testing.T) {
	flow, _ := newRegistrationFlow(t)

	err := flow.SetDetails(Details{DOB: "1999-03-15"})
	assert.EqualError(t, err, "basics must be set first")
}

func TestSetDetails_RejectsBadDOB(t *testing.T) {
	flow, _ := newRegistrationFlow(t)
	require.NoError(t, flow.SetBasics(Basics{Name: "A", Email: "a@b.c", Password: "x"}))

	err := flow.SetDetails(Details{DOB: "15-03-1999"})
	assert.EqualError(t, err, "dob must be YYYY-MM-DD")
}

func TestComplete_RequiresFullDraft(t *testing.T) {
	flow, _ := newRegistrationFlow(t)

	_, err := flow.Complete(context.Background())
	assert.EqualError(t, err, "registration draft is incomplete")
}

func TestComplete_AssemblesAndPersistsAggregate(t *testing.T) {
	flow, f := newRegistrationFlow(t)
	ctx := context.Background()

	require.NoError(t, flow.SetBasics(Basics{Name: "Rahul Sharma", Email: "rahul@example.com", Password: "secret123"}))
	require.NoError(t, flow.SetDetails(Details{
		DOB:             "1999-03-15",
		Gender:          "male",
		BloodGroup:      "B+",
		HeightCm:        "172",
		WeightKg:        "68",
		Allergies:       "Penicillin, Dust",
		KnownConditions: "Diabetes",
	}))

	user, err := flow.Complete(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Rahul Sharma", user.Name)
	assert.Equal(t, "Male", user.Gender)
	assert.Equal(t, 172.0, user.HeightCm)
	assert.Equal(t, 68.0, user.WeightKg)
	assert.InDelta(t, 22.99, user.BMI, 0.001)
	assert.Equal(t, []string{"Penicillin", "Dust"}, user.Allergies)
	assert.Equal(t, []string{"Diabetes"}, user.Conditions)
	assert.Positive(t, user.Age)

	stored, ok := f.store.LoadUser(ctx)
	require.True(t, ok)
	assert.Equal(t, user.Name, stored.Name)

	access, refresh := f.store.Tokens(ctx)
	assert.NotEmpty(t, access, "registration stores the issued token pair")
	assert.NotEmpty(t, refresh)

	// Draft is cleared; a second Complete must fail.
	_, err = flow.Complete(ctx)
	assert.Error(t, err)
}

func TestComplete_BackendFailureLeavesDraftIntact(t *testing.T) {
	flow, f := newRegistrationFlow(t)
	ctx := context.Background()

	require.NoError(t, flow.SetBasics(Basics{Name: "Rahul", Email: "rahul@example.com", Password: "x"}))
	require.NoError(t, flow.SetDetails(Details{DOB: "1999-03-15"}))

	f.close() // backend unreachable
	_, err := flow.Complete(ctx)
	require.Error(t, err)

	_, ok := f.store.LoadUser(ctx)
	assert.False(t, ok, "nothing persisted on a failed registration")
}
