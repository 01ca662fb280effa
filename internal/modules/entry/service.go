package entry

import (
	"context"
	"errors"

	"github.com/typeless-cms/core/internal/models"
	"github.com/typeless-cms/core/internal/modules/workspace"
	"github.com/typeless-cms/core/internal/pkg/pagination"
	"github.com/typeless-cms/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Sentinel errors mapped at the handler boundary.
var (
	ErrNotFound            = errors.New("entry not found")
	ErrContentTypeNotFound = errors.New("content type not found")
)

// ValidationError carries the collected violations. The API reports the
// first message; the rest stay available to callers that want them.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	return e.Violations[0].Message
}

type Service struct {
	db       *gorm.DB
	wss      *workspace.Service
	resolver *Resolver
}

func NewService(db *gorm.DB, wss *workspace.Service) *Service {
	return &Service{db: db, wss: wss, resolver: NewResolver(NewGormFetcher(db))}
}

// Resolver exposes the relation resolution strategy for read paths
// outside this module.
func (s *Service) Resolver() *Resolver { return s.resolver }

// contentTypeFor loads the non-deleted content type with its fields and
// enforces workspace access for the user.
func (s *Service) contentTypeFor(contentTypeID, userID string) (*models.ContentTypeModel, error) {
	var ct models.ContentTypeModel
	err := s.db.Preload("Fields", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&ct, "id = ?", contentTypeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentTypeNotFound
		}
		return nil, err
	}
	if _, err := s.wss.Authorize(ct.WorkspaceID, userID); err != nil {
		return nil, err
	}
	return &ct, nil
}

// List pages the content type's entries, newest first, with relations
// resolved over the returned page.
func (s *Service) List(ctx context.Context, contentTypeID, userID string, q pagination.Query) ([]models.EntryModel, response.Pagination, error) {
	ct, err := s.contentTypeFor(contentTypeID, userID)
	if err != nil {
		return nil, response.Pagination{}, err
	}

	var entries []models.EntryModel
	page, err := pagination.Paginate(
		s.db.WithContext(ctx).Model(&models.EntryModel{}).
			Where("content_type_id = ?", contentTypeID).
			Order("created_at DESC"),
		q, &entries)
	if err != nil {
		return nil, response.Pagination{}, err
	}

	if err := s.resolver.Resolve(ctx, entries, ct.Fields); err != nil {
		return nil, response.Pagination{}, err
	}
	return entries, page, nil
}

// Get fetches one entry with relations resolved.
func (s *Service) Get(ctx context.Context, id, userID string) (*models.EntryModel, error) {
	var e models.EntryModel
	if err := s.db.First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ct, err := s.contentTypeFor(e.ContentTypeID, userID)
	if err != nil {
		return nil, err
	}

	page := []models.EntryModel{e}
	if err := s.resolver.Resolve(ctx, page, ct.Fields); err != nil {
		return nil, err
	}
	return &page[0], nil
}

// Create validates the payload against the schema and persists it.
func (s *Service) Create(userID string, dto *CreateEntryDTO) (*models.EntryModel, error) {
	ct, err := s.contentTypeFor(dto.ContentTypeID, userID)
	if err != nil {
		return nil, err
	}

	if violations := Validate(dto.Data, ct.Fields); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	e := models.EntryModel{
		ContentTypeID: ct.ID,
		Data:          dto.Data,
	}
	e.CreatorID = userID
	return &e, s.db.Create(&e).Error
}

// Update replaces the data object when one is supplied, re-validating
// against all current field definitions, not just the keys present.
func (s *Service) Update(id, userID string, dto *UpdateEntryDTO) (*models.EntryModel, error) {
	var e models.EntryModel
	if err := s.db.First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ct, err := s.contentTypeFor(e.ContentTypeID, userID)
	if err != nil {
		return nil, err
	}

	if dto.Data == nil {
		return &e, nil
	}

	if violations := Validate(*dto.Data, ct.Fields); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	e.Data = *dto.Data
	e.ModifierID = &userID
	return &e, s.db.Model(&e).Updates(map[string]interface{}{
		"data":        e.Data,
		"modifier_id": userID,
	}).Error
}

// Delete soft-deletes the entry and stamps the modifier. Inbound
// references from other entries are left dangling; the relation
// resolver degrades them to null/empty at read time.
func (s *Service) Delete(id, userID string) error {
	var e models.EntryModel
	if err := s.db.First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if _, err := s.contentTypeFor(e.ContentTypeID, userID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&e).Update("modifier_id", userID).Error; err != nil {
			return err
		}
		return tx.Delete(&e).Error
	})
}
