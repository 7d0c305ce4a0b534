package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"microwave/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramJSONFile_CRUDAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "custom-programs.json")
	ctx := testCtx(t)

	repo, err := OpenProgramJSONFile(path)
	require.NoError(t, err)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	pizza, err := repo.Create(ctx, models.CustomProgram{Name: "Pizza", Food: "Pizza", PowerLevel: 6, TimeInSeconds: 90, Character: "P"})
	require.NoError(t, err)
	assert.NotEmpty(t, pizza.ID)
	assert.False(t, pizza.CreatedAt.IsZero())

	soup, err := repo.Create(ctx, models.CustomProgram{Name: "Sopa", Food: "Sopa", PowerLevel: 5, TimeInSeconds: 300, Character: "S"})
	require.NoError(t, err)

	exists, err := repo.ExistsCharacter(ctx, "P", "")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, _ = repo.ExistsCharacter(ctx, "P", pizza.ID)
	assert.False(t, exists, "own id is excluded")
	exists, _ = repo.ExistsName(ctx, "PIZZA", "")
	assert.True(t, exists)

	soup.Name = "Sopa de Legumes"
	soup.CreatedAt = soup.CreatedAt.AddDate(1, 0, 0)
	updated, err := repo.Update(ctx, soup)
	require.NoError(t, err)
	assert.Equal(t, "Sopa de Legumes", updated.Name)

	_, err = repo.Update(ctx, models.CustomProgram{ID: "ghost"})
	assert.ErrorIs(t, err, ErrProgramNotFound)

	reopened, err := OpenProgramJSONFile(path)
	require.NoError(t, err)
	all, err := reopened.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, pizza.ID, all[0].ID, "creation order is kept")
	assert.Equal(t, "Sopa de Legumes", all[1].Name)
	assert.True(t, all[1].CreatedAt.Before(soup.CreatedAt), "created_at is immutable")

	ok, err := reopened.Delete(ctx, pizza.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = reopened.Delete(ctx, pizza.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := reopened.GetByID(ctx, pizza.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc programFile
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 1, doc.Metadata.TotalPrograms)
	assert.Equal(t, programFileVersion, doc.Metadata.Version)
}

func TestOpenProgramJSONFile_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := OpenProgramJSONFile(path)
	assert.Error(t, err)
}
