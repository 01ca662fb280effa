package entry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/typeless-cms/core/internal/models"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchOne(ctx context.Context, contentTypeID, entryID string) (*models.EntryModel, error) {
	args := m.Called(ctx, contentTypeID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EntryModel), args.Error(1)
}

func (m *MockFetcher) FetchMany(ctx context.Context, contentTypeID string, ids []string) ([]models.EntryModel, error) {
	args := m.Called(ctx, contentTypeID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EntryModel), args.Error(1)
}

func entryWithID(id string) models.EntryModel {
	e := models.EntryModel{Data: models.JSONMap{}}
	e.ID = id
	return e
}

func relationField(name, target string, multiple bool) models.FieldDefinitionModel {
	fieldType := models.FieldReference
	if multiple {
		fieldType = models.FieldReferences
	}
	return models.FieldDefinitionModel{
		Name:         name,
		DisplayName:  name,
		Type:         fieldType,
		Multiple:     multiple,
		RelationToID: &target,
	}
}

func TestResolve_SingleReference(t *testing.T) {
	fetcher := new(MockFetcher)
	referenced := entryWithID("author-1")
	fetcher.On("FetchOne", mock.Anything, "authors", "author-1").Return(&referenced, nil)

	entries := []models.EntryModel{
		{Data: models.JSONMap{"author": "author-1"}},
	}
	fields := []models.FieldDefinitionModel{relationField("author", "authors", false)}

	require.NoError(t, NewResolver(fetcher).Resolve(context.Background(), entries, fields))

	resolved, ok := entries[0].Data["author"].(*models.EntryModel)
	require.True(t, ok)
	assert.Equal(t, "author-1", resolved.ID)
	fetcher.AssertExpectations(t)
}

func TestResolve_SingleReferenceMissingTarget(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchOne", mock.Anything, "authors", "gone").Return(nil, nil)

	entries := []models.EntryModel{
		{Data: models.JSONMap{"author": "gone"}},
	}
	fields := []models.FieldDefinitionModel{relationField("author", "authors", false)}

	require.NoError(t, NewResolver(fetcher).Resolve(context.Background(), entries, fields))
	assert.Nil(t, entries[0].Data["author"])
}

func TestResolve_MultipleReferencesPreserveOrder(t *testing.T) {
	fetcher := new(MockFetcher)
	// The store returns rows in its own order; the resolver must restore
	// the stored identifier order.
	fetcher.On("FetchMany", mock.Anything, "tags", []string{"t3", "t1", "t2"}).
		Return([]models.EntryModel{entryWithID("t1"), entryWithID("t2"), entryWithID("t3")}, nil)

	entries := []models.EntryModel{
		{Data: models.JSONMap{"tags": []interface{}{"t3", "t1", "t2"}}},
	}
	fields := []models.FieldDefinitionModel{relationField("tags", "tags", true)}

	require.NoError(t, NewResolver(fetcher).Resolve(context.Background(), entries, fields))

	resolved, ok := entries[0].Data["tags"].([]models.EntryModel)
	require.True(t, ok)
	require.Len(t, resolved, 3)
	assert.Equal(t, "t3", resolved[0].ID)
	assert.Equal(t, "t1", resolved[1].ID)
	assert.Equal(t, "t2", resolved[2].ID)
}

func TestResolve_MultipleReferencesDropMissing(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchMany", mock.Anything, "tags", []string{"t1", "deleted", "t2"}).
		Return([]models.EntryModel{entryWithID("t1"), entryWithID("t2")}, nil)

	entries := []models.EntryModel{
		{Data: models.JSONMap{"tags": []interface{}{"t1", "deleted", "t2"}}},
	}
	fields := []models.FieldDefinitionModel{relationField("tags", "tags", true)}

	require.NoError(t, NewResolver(fetcher).Resolve(context.Background(), entries, fields))

	resolved := entries[0].Data["tags"].([]models.EntryModel)
	require.Len(t, resolved, 2)
	assert.Equal(t, "t1", resolved[0].ID)
	assert.Equal(t, "t2", resolved[1].ID)
}

func TestResolve_SkipsNonRelationShapes(t *testing.T) {
	fetcher := new(MockFetcher)

	entries := []models.EntryModel{
		{Data: models.JSONMap{
			"author": 42,                          // not an id
			"tags":   "not-a-list",                // not a list
			"other":  []interface{}{"unrelated"},  // no field definition
		}},
		{Data: nil}, // entry without data
	}
	fields := []models.FieldDefinitionModel{
		relationField("author", "authors", false),
		relationField("tags", "tags", true),
	}

	require.NoError(t, NewResolver(fetcher).Resolve(context.Background(), entries, fields))
	assert.Equal(t, 42, entries[0].Data["author"])
	fetcher.AssertNotCalled(t, "FetchOne", mock.Anything, mock.Anything, mock.Anything)
	fetcher.AssertNotCalled(t, "FetchMany", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_EmptyIDList(t *testing.T) {
	fetcher := new(MockFetcher)

	entries := []models.EntryModel{
		{Data: models.JSONMap{"tags": []interface{}{}}},
	}
	fields := []models.FieldDefinitionModel{relationField("tags", "tags", true)}

	require.NoError(t, NewResolver(fetcher).Resolve(context.Background(), entries, fields))
	assert.Equal(t, []models.EntryModel{}, entries[0].Data["tags"])
	fetcher.AssertNotCalled(t, "FetchMany", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_FetcherErrorPropagates(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchOne", mock.Anything, "authors", "a1").Return(nil, errors.New("db down"))

	entries := []models.EntryModel{
		{Data: models.JSONMap{"author": "a1"}},
	}
	fields := []models.FieldDefinitionModel{relationField("author", "authors", false)}

	assert.Error(t, NewResolver(fetcher).Resolve(context.Background(), entries, fields))
}
