package database

import (
	"context"
	"fmt"
	"strings"

	"codeforge/domain"
	"codeforge/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

func (db *DB) CreateProject(ctx context.Context, ownerID, name, description string) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &domain.ValidationError{Message: "project name is required"}
	}

	query := `
		INSERT INTO projects (owner_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, name, description, status, deployed_url, created_at, updated_at
	`

	project, err := scanProject(db.Pool.QueryRow(ctx, query, ownerID, name, description))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"project_id": project.ID,
		"owner_id":   ownerID,
	}).Infof("Created project %q", project.Name)
	return project, nil
}

// GetProject loads a project together with its files, ordered by the
// position they were created in.
func (db *DB) GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	query := `
		SELECT id, owner_id, name, description, status, deployed_url, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	project, err := scanProject(db.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &domain.NotFoundError{Message: "project not found"}
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	filesQuery := `
		SELECT filename, content
		FROM project_files
		WHERE project_id = $1
		ORDER BY position
	`

	rows, err := db.Pool.Query(ctx, filesQuery, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query project files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var filename, content string
		if err := rows.Scan(&filename, &content); err != nil {
			return nil, fmt.Errorf("failed to scan project file: %w", err)
		}
		project.Files.Set(filename, content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project files: %w", err)
	}

	return project, nil
}

// ListProjects returns an owner's projects ordered by recency. File
// contents are not loaded for listings.
func (db *DB) ListProjects(ctx context.Context, ownerID string) ([]models.Project, error) {
	query := `
		SELECT id, owner_id, name, description, status, deployed_url, created_at, updated_at
		FROM projects
		WHERE owner_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := db.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

// DeleteProject removes a project; file rows cascade at the schema
// level.
func (db *DB) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1`

	result, err := db.Pool.Exec(ctx, query, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: "project not found"}
	}

	logrus.WithField("project_id", projectID).Info("Deleted project")
	return nil
}

// ReplaceFiles makes the stored file set exactly equal to files, in the
// given order. Full replacement: anything not in files is discarded.
func (db *DB) ReplaceFiles(ctx context.Context, projectID uuid.UUID, files models.FileMap) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `UPDATE projects SET updated_at = NOW() WHERE id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("failed to touch project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: "project not found"}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM project_files WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to clear project files: %w", err)
	}

	insert := `
		INSERT INTO project_files (project_id, position, filename, content)
		VALUES ($1, $2, $3, $4)
	`
	for position, filename := range files.Names() {
		content, _ := files.Get(filename)
		if _, err := tx.Exec(ctx, insert, projectID, position, filename, content); err != nil {
			return fmt.Errorf("failed to insert file %q: %w", filename, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit file replacement: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"project_id": projectID,
		"files":      files.Len(),
	}).Info("Replaced project files")
	return nil
}

// NextGenerationSeq atomically increments and returns the project's
// generation counter, the collision-proof discriminator for generated
// filenames.
func (db *DB) NextGenerationSeq(ctx context.Context, projectID uuid.UUID) (int, error) {
	query := `
		UPDATE projects
		SET generation_seq = generation_seq + 1
		WHERE id = $1
		RETURNING generation_seq
	`

	var seq int
	err := db.Pool.QueryRow(ctx, query, projectID).Scan(&seq)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, &domain.NotFoundError{Message: "project not found"}
		}
		return 0, fmt.Errorf("failed to advance generation counter: %w", err)
	}
	return seq, nil
}

// SetDeployed records a successful deployment. Overwrite-based and
// idempotent: redeploying replaces the URL and keeps status deployed.
func (db *DB) SetDeployed(ctx context.Context, projectID uuid.UUID, deployedURL string) error {
	query := `
		UPDATE projects
		SET status = $2, deployed_url = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := db.Pool.Exec(ctx, query, projectID, models.StatusDeployed, deployedURL)
	if err != nil {
		return fmt.Errorf("failed to mark project deployed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: "project not found"}
	}

	logrus.WithFields(logrus.Fields{
		"project_id":   projectID,
		"deployed_url": deployedURL,
	}).Info("Project deployed")
	return nil
}

// Helper functions

func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.OwnerID,
		&project.Name,
		&project.Description,
		&project.Status,
		&project.DeployedURL,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func scanProjects(rows rowsScanner) ([]models.Project, error) {
	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}
