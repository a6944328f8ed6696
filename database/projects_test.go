package database

import (
	"context"
	"errors"
	"testing"

	"codeforge/domain"
	"codeforge/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOwner = "owner-1"

func TestCreateProject(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()
	project, err := db.CreateProject(ctx, testOwner, "Todo App", "A todo app")

	require.NoError(t, err)
	assert.NotEmpty(t, project.ID)
	assert.Equal(t, testOwner, project.OwnerID)
	assert.Equal(t, "Todo App", project.Name)
	assert.Equal(t, models.StatusDraft, project.Status)
	assert.Nil(t, project.DeployedURL)
	assert.Zero(t, project.Files.Len())
	assert.False(t, project.CreatedAt.IsZero())
	assert.False(t, project.UpdatedAt.IsZero())
}

func TestCreateProject_EmptyName(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	_, err := db.CreateProject(ctx, testOwner, "   ", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetProject_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	_, err := db.GetProject(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListProjects_OwnerScopedAndRecencyOrdered(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	first, err := db.CreateProject(ctx, testOwner, "First", "")
	require.NoError(t, err)
	second, err := db.CreateProject(ctx, testOwner, "Second", "")
	require.NoError(t, err)
	_, err = db.CreateProject(ctx, "someone-else", "Other", "")
	require.NoError(t, err)

	// Touching the older project moves it to the front.
	var files models.FileMap
	files.Set("App.jsx", "export default () => null")
	require.NoError(t, db.ReplaceFiles(ctx, first.ID, files))

	projects, err := db.ListProjects(ctx, testOwner)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, first.ID, projects[0].ID)
	assert.Equal(t, second.ID, projects[1].ID)
}

func TestDeleteProject_CascadesFiles(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	project, err := db.CreateProject(ctx, testOwner, "Doomed", "")
	require.NoError(t, err)

	var files models.FileMap
	files.Set("App.jsx", "content")
	require.NoError(t, db.ReplaceFiles(ctx, project.ID, files))

	require.NoError(t, db.DeleteProject(ctx, project.ID))

	_, err = db.GetProject(ctx, project.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var count int
	err = db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM project_files WHERE project_id = $1", project.ID).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteProject_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	err := db.DeleteProject(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplaceFiles_FullReplacePreservesOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	project, err := db.CreateProject(ctx, testOwner, "Ordered", "")
	require.NoError(t, err)

	var initial models.FileMap
	initial.Set("old.jsx", "gone soon")
	initial.Set("also_old.css", "gone too")
	require.NoError(t, db.ReplaceFiles(ctx, project.ID, initial))

	var replacement models.FileMap
	replacement.Set("App.jsx", "entry")
	replacement.Set("styles.css", "body {}")
	replacement.Set("util.js", "export {}")
	require.NoError(t, db.ReplaceFiles(ctx, project.ID, replacement))

	got, err := db.GetProject(ctx, project.ID)
	require.NoError(t, err)

	// Stored set is exactly the replacement, in its key order.
	assert.Equal(t, []string{"App.jsx", "styles.css", "util.js"}, got.Files.Names())
	content, ok := got.Files.Get("App.jsx")
	require.True(t, ok)
	assert.Equal(t, "entry", content)
	assert.False(t, got.Files.Has("old.jsx"))
}

func TestReplaceFiles_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	var files models.FileMap
	files.Set("App.jsx", "content")
	err := db.ReplaceFiles(ctx, uuid.New(), files)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNextGenerationSeq_Monotonic(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	project, err := db.CreateProject(ctx, testOwner, "Counter", "")
	require.NoError(t, err)

	for want := 1; want <= 5; want++ {
		seq, err := db.NextGenerationSeq(ctx, project.ID)
		require.NoError(t, err)
		assert.Equal(t, want, seq)
	}

	_, err = db.NextGenerationSeq(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetDeployed_IdempotentOverwrite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	project, err := db.CreateProject(ctx, testOwner, "Live", "")
	require.NoError(t, err)

	require.NoError(t, db.SetDeployed(ctx, project.ID, "https://live-1.example.app"))
	require.NoError(t, db.SetDeployed(ctx, project.ID, "https://live-2.example.app"))

	got, err := db.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeployed, got.Status)
	require.NotNil(t, got.DeployedURL)
	assert.Equal(t, "https://live-2.example.app", *got.DeployedURL)

	var notFound *domain.NotFoundError
	err = db.SetDeployed(ctx, uuid.New(), "https://nowhere.example.app")
	assert.True(t, errors.As(err, &notFound))
}
