//go:build integration

package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) *sqlx.DB {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "wiki_quiz_db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/wiki_quiz_db?sslmode=disable", host, port.Port())
	db, err := database.NewSQLXPostgresDB(ctx, dsn, config.DBConfig{MaxOpenConns: 10})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.RunMigrations(db.DB))
	return db
}

func TestQuizRecordRepository_Postgres(t *testing.T) {
	requireDocker(t)
	ctx := context.Background()
	db := startPostgres(t, ctx)
	repo := NewQuizRecordRepository(db)

	saved, err := repo.Create(ctx, sampleRecord())
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	byURL, err := repo.GetByURL(ctx, turingURL)
	require.NoError(t, err)
	require.NotNil(t, byURL)
	assert.Equal(t, saved.ID, byURL.ID)
	assert.Equal(t, sampleRecord().Questions, byURL.Questions)
	assert.Equal(t, []string{}, byURL.Entities.Organizations)

	again, err := repo.Create(ctx, sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID, "same URL must not create a second record")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].QuestionCount)

	require.NoError(t, repo.Delete(ctx, saved.ID))
	gone, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	err = repo.Delete(ctx, saved.ID)
	assert.Error(t, err)
}

func TestQuizRecordRepository_ConcurrentCreateSameURL(t *testing.T) {
	requireDocker(t)
	ctx := context.Background()
	db := startPostgres(t, ctx)
	repo := NewQuizRecordRepository(db)

	const writers = 8
	ids := make([]int64, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			saved, err := repo.Create(ctx, sampleRecord())
			if assert.NoError(t, err) {
				ids[i] = saved.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
