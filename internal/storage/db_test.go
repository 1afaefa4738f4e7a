package storage

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stolasapp/barre/internal/storage/db"
)

func ptr[T any](v T) *T { return &v }

func TestDB(t *testing.T) {
	t.Parallel()

	store, err := NewDB(t.Context(), filepath.Join(t.TempDir(), "db.sqlite"), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	owner, err := store.CreateUser(t.Context(), db.User{
		Username:     "choreographer",
		Email:        "choreo@example.com",
		PasswordHash: []byte("not-a-real-hash"),
	})
	require.NoError(t, err)
	require.NotZero(t, owner.ID)

	t.Run("UserCRUD", func(t *testing.T) {
		actual, err := store.GetUser(t.Context(), owner.ID)
		require.NoError(t, err)
		assert.Equal(t, owner, actual)

		_, err = store.GetUser(t.Context(), 0)
		require.ErrorIs(t, err, ErrNotFound)

		actual, err = store.GetUserByName(t.Context(), owner.Username)
		require.NoError(t, err)
		assert.Equal(t, owner, actual)

		_, err = store.GetUserByName(t.Context(), "not a real user")
		require.ErrorIs(t, err, ErrNotFound)

		_, err = store.CreateUser(t.Context(), db.User{
			Username: owner.Username,
			Email:    "other@example.com",
		})
		require.ErrorIs(t, err, ErrAlreadyExists)

		_, err = store.CreateUser(t.Context(), db.User{
			Username: "different_name",
			Email:    owner.Email,
		})
		require.ErrorIs(t, err, ErrAlreadyExists)

		_, err = store.CreateUser(t.Context(), db.User{Username: "ab", Email: "ab@example.com"})
		require.ErrorIs(t, err, ErrInvalidUsername)

		_, err = store.CreateUser(t.Context(), db.User{Username: "invalid/name", Email: "x@example.com"})
		require.ErrorIs(t, err, ErrInvalidUsername)

		users, err := store.ListUsers(t.Context(), "", 100)
		require.NoError(t, err)
		assert.Len(t, users, 1)

		users, err = store.ListUsers(t.Context(), owner.Username, 100)
		require.NoError(t, err)
		assert.Empty(t, users)

		user, err := store.CreateUser(t.Context(), db.User{
			Username:     "user_crud_test",
			Email:        "crud@example.com",
			PasswordHash: []byte("foobar"),
		})
		require.NoError(t, err)

		err = store.DeleteUser(t.Context(), user.ID)
		require.NoError(t, err)
		_, err = store.GetUserByName(t.Context(), user.Username)
		require.ErrorIs(t, err, ErrNotFound)

		err = store.DeleteUser(t.Context(), user.ID)
		require.NoError(t, err)
	})

	t.Run("SetAdmin", func(t *testing.T) {
		user, err := store.CreateUser(t.Context(), db.User{
			Username: "future_admin",
			Email:    "admin@example.com",
		})
		require.NoError(t, err)
		assert.False(t, user.IsAdmin)

		require.NoError(t, store.SetAdmin(t.Context(), user.Username, true))
		actual, err := store.GetUser(t.Context(), user.ID)
		require.NoError(t, err)
		assert.True(t, actual.IsAdmin)

		require.NoError(t, store.SetAdmin(t.Context(), user.Username, false))
		actual, err = store.GetUser(t.Context(), user.ID)
		require.NoError(t, err)
		assert.False(t, actual.IsAdmin)

		err = store.SetAdmin(t.Context(), "nobody_here", true)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("BalletCRUD", func(t *testing.T) {
		_, err := store.GetBallet(t.Context(), 42)
		require.ErrorIs(t, err, ErrNotFound)

		swan, err := store.CreateBallet(t.Context(), db.Ballet{
			Title:           "Swan Lake",
			Composer:        "Pyotr Ilyich Tchaikovsky",
			Choreographer:   "Marius Petipa",
			YearPremiered:   ptr[int64](1877),
			DifficultyLevel: ptr("Advanced"),
			DurationMinutes: ptr[int64](150),
			SubmittedBy:     &owner.ID,
		})
		require.NoError(t, err)
		require.NotZero(t, swan.ID)

		giselle, err := store.CreateBallet(t.Context(), db.Ballet{
			Title:         "Giselle",
			Composer:      "Adolphe Adam",
			Choreographer: "Jean Coralli",
		})
		require.NoError(t, err)

		actual, err := store.GetBallet(t.Context(), swan.ID)
		require.NoError(t, err)
		assert.Equal(t, swan, actual)
		assert.Nil(t, actual.Description)

		ballets, err := store.ListBallets(t.Context())
		require.NoError(t, err)
		require.Len(t, ballets, 2)
		assert.Equal(t, []db.Ballet{giselle, swan}, ballets) // alphabetical by title

		deleted, err := store.DeleteBallet(t.Context(), giselle.ID)
		require.NoError(t, err)
		assert.Equal(t, giselle, deleted)

		_, err = store.DeleteBallet(t.Context(), giselle.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("StepAndEquipmentCRUD", func(t *testing.T) {
		plie, err := store.CreateStep(t.Context(), db.Step{
			Name:        "Plie",
			Description: "A bending of the knees while maintaining proper alignment",
			Difficulty:  "Beginner",
			SubmittedBy: &owner.ID,
		})
		require.NoError(t, err)
		require.NotZero(t, plie.ID)

		actual, err := store.GetStep(t.Context(), plie.ID)
		require.NoError(t, err)
		assert.Equal(t, plie, actual)

		_, err = store.GetStep(t.Context(), 42)
		require.ErrorIs(t, err, ErrNotFound)

		barre, err := store.CreateEquipment(t.Context(), db.Equipment{
			Name:        "Ballet Barre",
			Description: "Horizontal bar for ballet exercises",
			Category:    "Training Equipment",
		})
		require.NoError(t, err)

		floor, err := store.CreateEquipment(t.Context(), db.Equipment{
			Name:        "Dance Floor",
			Description: "Sprung floor for ballet practice",
			Category:    "Facility",
		})
		require.NoError(t, err)

		equipment, err := store.ListEquipment(t.Context())
		require.NoError(t, err)
		assert.Equal(t, []db.Equipment{barre, floor}, equipment) // alphabetical by name

		require.NoError(t, store.AddStepEquipment(t.Context(), plie.ID, floor.ID, true))
		require.NoError(t, store.AddStepEquipment(t.Context(), plie.ID, barre.ID, false))

		gear, err := store.ListStepEquipment(t.Context(), plie.ID)
		require.NoError(t, err)
		require.Len(t, gear, 2)
		assert.Equal(t, floor.ID, gear[0].ID)
		assert.True(t, gear[0].Required)
		assert.Equal(t, barre.ID, gear[1].ID)
		assert.False(t, gear[1].Required)

		deleted, err := store.DeleteEquipment(t.Context(), barre.ID)
		require.NoError(t, err)
		assert.Equal(t, barre, deleted)
		_, err = store.DeleteEquipment(t.Context(), barre.ID)
		require.ErrorIs(t, err, ErrNotFound)

		// cascade removed the join row too
		gear, err = store.ListStepEquipment(t.Context(), plie.ID)
		require.NoError(t, err)
		require.Len(t, gear, 1)
		assert.Equal(t, floor.ID, gear[0].ID)

		stepDeleted, err := store.DeleteStep(t.Context(), plie.ID)
		require.NoError(t, err)
		assert.Equal(t, plie, stepDeleted)
	})

	t.Run("JoinReferentialIntegrity", func(t *testing.T) {
		err := store.AddBalletStep(t.Context(), 987654, 123456, 1)
		require.Error(t, err) // foreign keys are enforced
	})

	t.Run("Aggregates", func(t *testing.T) {
		nutcracker, err := store.CreateBallet(t.Context(), db.Ballet{
			Title:         "The Nutcracker",
			Composer:      "Pyotr Ilyich Tchaikovsky",
			Choreographer: "Marius Petipa",
		})
		require.NoError(t, err)

		tendu, err := store.CreateStep(t.Context(), db.Step{
			Name:        "Tendu",
			Description: "A stretching of the foot along the floor",
			Difficulty:  "Beginner",
		})
		require.NoError(t, err)
		battement, err := store.CreateStep(t.Context(), db.Step{
			Name:        "Battement",
			Description: "A beating movement of the leg",
			Difficulty:  "Intermediate",
		})
		require.NoError(t, err)

		require.NoError(t, store.AddBalletStep(t.Context(), nutcracker.ID, battement.ID, 2))
		require.NoError(t, store.AddBalletStep(t.Context(), nutcracker.ID, tendu.ID, 1))

		steps, err := store.ListBalletSteps(t.Context(), nutcracker.ID)
		require.NoError(t, err)
		require.Len(t, steps, 2)
		assert.Equal(t, tendu.ID, steps[0].ID) // sequence order, not insertion order
		assert.EqualValues(t, 1, steps[0].SequenceOrder)
		assert.Equal(t, battement.ID, steps[1].ID)

		merged, err := store.ListBalletsWithSteps(t.Context())
		require.NoError(t, err)
		for _, ballet := range merged {
			want, err := store.ListBalletSteps(t.Context(), ballet.ID)
			require.NoError(t, err)
			assert.Equal(t, want, ballet.Steps)
			assert.NotNil(t, ballet.Steps) // empty, never null
		}

		withEquipment, err := store.ListStepsWithEquipment(t.Context())
		require.NoError(t, err)
		for _, step := range withEquipment {
			want, err := store.ListStepEquipment(t.Context(), step.ID)
			require.NoError(t, err)
			assert.Equal(t, want, step.Equipment)
		}
	})
}
