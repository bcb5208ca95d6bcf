package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpertiseRepositoryFindOrCreateReturnsExisting(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewExpertiseRepository(db)

	mock.ExpectQuery("INSERT INTO expertise_tags").
		WithArgs(sqlmock.AnyArg(), "Stocks").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("tag-1", "Stocks"))

	tag, err := repo.FindOrCreate(context.Background(), "Stocks")
	require.NoError(t, err)
	assert.Equal(t, "tag-1", tag.ID)
	assert.Equal(t, "Stocks", tag.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpertiseRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewExpertiseRepository(db)

	mock.ExpectQuery("SELECT id, name FROM expertise_tags ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("tag-2", "Options").AddRow("tag-1", "Stocks"))

	tags, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
