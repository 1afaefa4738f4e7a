package client

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stolasapp/barre/internal/api"
	"github.com/stolasapp/barre/internal/config"
	"github.com/stolasapp/barre/internal/sec"
	"github.com/stolasapp/barre/internal/storage"
	"github.com/stolasapp/barre/internal/storage/db"
)

func newTestClient(t *testing.T) (*Client, *sec.TokenIssuer) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := storage.NewDB(t.Context(), filepath.Join(t.TempDir(), "db.sqlite"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tokens := sec.NewTokenIssuer([]byte("not-a-real-secret"), 0)
	srv := httptest.NewServer(api.New(&config.Config{Address: "localhost:0"}, logger, store, tokens))
	t.Cleanup(srv.Close)
	return New(srv.URL, ""), tokens
}

func TestClientRoundTrip(t *testing.T) {
	t.Parallel()
	c, tokens := newTestClient(t)
	ctx := t.Context()

	require.NoError(t, c.Health(ctx))

	session, err := c.Register(ctx, "aurora", "aurora@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "aurora", session.User.Username)
	require.NotEmpty(t, session.Token)

	claims, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)

	ballet, err := c.SubmitBallet(ctx, BalletDraft{
		Title:         "La Bayadère",
		Composer:      "Ludwig Minkus",
		Choreographer: "Marius Petipa",
	})
	require.NoError(t, err)
	require.NotNil(t, ballet.SubmittedBy)
	assert.Equal(t, session.User.ID, *ballet.SubmittedBy)

	step, err := c.SubmitStep(ctx, StepDraft{
		Name: "Relevé", Description: "A rise to the balls of the feet", Difficulty: "Beginner",
	})
	require.NoError(t, err)
	equipment, err := c.SubmitEquipment(ctx, EquipmentDraft{
		Name: "Pointe Shoes", Description: "Shoes for dancing on toes", Category: "Footwear",
	})
	require.NoError(t, err)

	ballets, err := c.Ballets(ctx)
	require.NoError(t, err)
	require.Len(t, ballets, 1)
	assert.Equal(t, ballet, ballets[0])

	fetched, err := c.Ballet(ctx, ballet.ID)
	require.NoError(t, err)
	assert.Equal(t, ballet, fetched)

	merged, err := c.BalletsWithSteps(ctx)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Empty(t, merged[0].Steps)

	steps, err := c.Steps(ctx)
	require.NoError(t, err)
	assert.Len(t, steps, 1)
	gear, err := c.StepEquipment(ctx, step.ID)
	require.NoError(t, err)
	assert.Empty(t, gear)

	withGear, err := c.StepsWithEquipment(ctx)
	require.NoError(t, err)
	require.Len(t, withGear, 1)
	assert.NotNil(t, withGear[0].Equipment)

	all, err := c.Equipment(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	byID, err := c.EquipmentByID(ctx, equipment.ID)
	require.NoError(t, err)
	assert.Equal(t, equipment, byID)

	// Moderation needs an admin token.
	_, err = c.DeleteBallet(ctx, ballet.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, api.CodeAdminRequired, apiErr.Code)

	admin, err := tokens.Issue(db.User{ID: 1, Username: "root", IsAdmin: true})
	require.NoError(t, err)
	c.SetToken(admin)

	deleted, err := c.DeleteBallet(ctx, ballet.ID)
	require.NoError(t, err)
	assert.Equal(t, ballet, deleted)
	_, err = c.DeleteStep(ctx, step.ID)
	require.NoError(t, err)
	_, err = c.DeleteEquipment(ctx, equipment.ID)
	require.NoError(t, err)
}

func TestClientErrors(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t)
	ctx := t.Context()

	_, err := c.Login(ctx, "nobody", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, api.CodeInvalidCredentials, apiErr.Code)
	assert.Equal(t, "Invalid username or password", apiErr.Message)

	_, err = c.Ballet(ctx, 404)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	_, err = c.SubmitBallet(ctx, BalletDraft{Title: "No Auth"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, api.CodeTokenRequired, apiErr.Code)
}

func TestSessionPersistence(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()

	_, err := LoadSession()
	require.ErrorIs(t, err, ErrNoSession)
	require.NoError(t, ClearSession())

	session := &Session{
		User:  db.User{ID: 7, Username: "kitri", Email: "kitri@example.com"},
		Token: "opaque-token",
	}
	require.NoError(t, session.Save())

	loaded, err := LoadSession()
	require.NoError(t, err)
	assert.Equal(t, session, loaded)

	require.NoError(t, ClearSession())
	_, err = LoadSession()
	require.ErrorIs(t, err, ErrNoSession)
}
