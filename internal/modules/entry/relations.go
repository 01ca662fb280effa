package entry

import (
	"context"
	"errors"

	"github.com/typeless-cms/core/internal/models"
	"gorm.io/gorm"
)

// Fetcher loads referenced entries for relation resolution. Both calls
// are scoped to the relation target's content type and see only
// non-deleted rows.
type Fetcher interface {
	FetchOne(ctx context.Context, contentTypeID, entryID string) (*models.EntryModel, error)
	FetchMany(ctx context.Context, contentTypeID string, ids []string) ([]models.EntryModel, error)
}

// Resolver replaces foreign-key-shaped field values with the referenced
// entry objects at read time. Resolution is an isolated strategy over a
// Fetcher so the per-field lookups can later be batched without
// touching callers.
type Resolver struct {
	fetcher Fetcher
}

func NewResolver(fetcher Fetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Resolve rewrites relation fields in place over the given page of
// entries. A reference to a missing or deleted entry degrades to nil
// (single) or drops out of the result list (multiple); it never fails
// the read. Stored identifier order is preserved for multiple
// references.
func (r *Resolver) Resolve(ctx context.Context, entries []models.EntryModel, fields []models.FieldDefinitionModel) error {
	relationFields := make([]models.FieldDefinitionModel, 0, len(fields))
	for _, f := range fields {
		if f.RelationToID != nil && *f.RelationToID != "" {
			relationFields = append(relationFields, f)
		}
	}
	if len(relationFields) == 0 {
		return nil
	}

	for i := range entries {
		if entries[i].Data == nil {
			continue
		}
		for _, field := range relationFields {
			value, ok := entries[i].Data[field.Name]
			if !ok || value == nil {
				continue
			}

			if field.Multiple {
				ids := stringSlice(value)
				if ids == nil {
					continue
				}
				resolved, err := r.resolveMany(ctx, *field.RelationToID, ids)
				if err != nil {
					return err
				}
				entries[i].Data[field.Name] = resolved
				continue
			}

			id, ok := value.(string)
			if !ok {
				continue
			}
			referenced, err := r.fetcher.FetchOne(ctx, *field.RelationToID, id)
			if err != nil {
				return err
			}
			if referenced == nil {
				entries[i].Data[field.Name] = nil
			} else {
				entries[i].Data[field.Name] = referenced
			}
		}
	}
	return nil
}

// resolveMany batch-fetches and reorders the result to match the stored
// identifier order; identifiers with no surviving target are skipped.
func (r *Resolver) resolveMany(ctx context.Context, contentTypeID string, ids []string) ([]models.EntryModel, error) {
	if len(ids) == 0 {
		return []models.EntryModel{}, nil
	}

	fetched, err := r.fetcher.FetchMany(ctx, contentTypeID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.EntryModel, len(fetched))
	for _, e := range fetched {
		byID[e.ID] = e
	}

	ordered := make([]models.EntryModel, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			ordered = append(ordered, e)
		}
	}
	return ordered, nil
}

func stringSlice(value interface{}) []string {
	raw, ok := value.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// gormFetcher is the production Fetcher.
type gormFetcher struct {
	db *gorm.DB
}

// NewGormFetcher returns a Fetcher backed by the relational store.
func NewGormFetcher(db *gorm.DB) Fetcher {
	return &gormFetcher{db: db}
}

func (f *gormFetcher) FetchOne(ctx context.Context, contentTypeID, entryID string) (*models.EntryModel, error) {
	var e models.EntryModel
	err := f.db.WithContext(ctx).
		First(&e, "id = ? AND content_type_id = ?", entryID, contentTypeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (f *gormFetcher) FetchMany(ctx context.Context, contentTypeID string, ids []string) ([]models.EntryModel, error) {
	var entries []models.EntryModel
	err := f.db.WithContext(ctx).
		Where("content_type_id = ? AND id IN ?", contentTypeID, ids).
		Find(&entries).Error
	return entries, err
}
