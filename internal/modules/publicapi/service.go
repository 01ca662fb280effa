package publicapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/typeless-cms/core/internal/models"
	"github.com/typeless-cms/core/internal/modules/entry"
	"github.com/typeless-cms/core/internal/pkg/pagination"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Public lookups resolve human-readable slugs; each miss is its own 404
// message.
var (
	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrObjectTypeNotFound = errors.New("object type not found")
	ErrEntryNotFound      = errors.New("entry not found")
)

// sortColumns is the closed set of sortable entry columns. The sort key
// lands in an ORDER BY, so nothing outside this set may pass through,
// in particular no data.* paths.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"id":         "id",
}

// SortClause maps the requested sort/order onto a safe ORDER BY clause.
func SortClause(sort, order string) string {
	column, ok := sortColumns[strings.ToLower(strings.TrimSpace(sort))]
	if !ok {
		column = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(strings.TrimSpace(order), "asc") {
		dir = "ASC"
	}
	return fmt.Sprintf("%s %s", column, dir)
}

// Service is the unauthenticated read path: slug lookups, pagination,
// relation resolution and schema projection.
type Service struct {
	db       *gorm.DB
	resolver *entry.Resolver
}

func NewService(db *gorm.DB, resolver *entry.Resolver) *Service {
	return &Service{db: db, resolver: resolver}
}

func (s *Service) workspaceBySlug(slug string) (*models.WorkspaceModel, error) {
	var ws models.WorkspaceModel
	if err := s.db.First(&ws, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}
	return &ws, nil
}

func (s *Service) contentTypeBySlug(workspaceID, slug string) (*models.ContentTypeModel, error) {
	var ct models.ContentTypeModel
	err := s.db.
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Fields.RelationTo").
		First(&ct, "workspace_id = ? AND slug = ?", workspaceID, slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrObjectTypeNotFound
		}
		return nil, err
	}
	return &ct, nil
}

// ListEntries serves one page of a content type's entries with resolved
// relations and the schema as metadata. The page of rows and the total
// count are fetched concurrently; both must land before the response is
// assembled.
func (s *Service) ListEntries(ctx context.Context, workspaceSlug, typeSlug string, q pagination.Query, sort, order string) (*ListResponse, error) {
	ws, err := s.workspaceBySlug(workspaceSlug)
	if err != nil {
		return nil, err
	}
	ct, err := s.contentTypeBySlug(ws.ID, typeSlug)
	if err != nil {
		return nil, err
	}

	var (
		entries []models.EntryModel
		total   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Where("content_type_id = ?", ct.ID).
			Order(SortClause(sort, order)).
			Offset(q.Offset()).
			Limit(q.Limit).
			Find(&entries).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Model(&models.EntryModel{}).
			Where("content_type_id = ?", ct.ID).
			Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Relations resolve over the returned page only.
	if err := s.resolver.Resolve(ctx, entries, ct.Fields); err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []models.EntryModel{}
	}
	return &ListResponse{
		Data: entries,
		Meta: ListMeta{
			ObjectType: objectTypeRef{ID: ct.ID, Name: ct.Name, Slug: ct.Slug},
			Workspace:  workspaceRef{ID: ws.ID, Name: ws.Name, Slug: ws.Slug},
			Pagination: q.Meta(total),
			Schema:     FieldSummaries(ct.Fields),
		},
	}, nil
}

// GetEntry serves one entry by id, scoped to the addressed content type.
func (s *Service) GetEntry(ctx context.Context, workspaceSlug, typeSlug, entryID string) (*EntryResponse, error) {
	ws, err := s.workspaceBySlug(workspaceSlug)
	if err != nil {
		return nil, err
	}
	ct, err := s.contentTypeBySlug(ws.ID, typeSlug)
	if err != nil {
		return nil, err
	}

	var e models.EntryModel
	err = s.db.WithContext(ctx).
		First(&e, "id = ? AND content_type_id = ?", entryID, ct.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	page := []models.EntryModel{e}
	if err := s.resolver.Resolve(ctx, page, ct.Fields); err != nil {
		return nil, err
	}

	return &EntryResponse{
		Data: page[0],
		Meta: EntryMeta{
			ObjectType: objectTypeRef{ID: ct.ID, Name: ct.Name, Slug: ct.Slug},
			Workspace:  workspaceRef{ID: ws.ID, Name: ws.Name, Slug: ws.Slug},
			Schema:     FieldSummaries(ct.Fields),
		},
	}, nil
}
