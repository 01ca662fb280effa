package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/typeless-cms/core/internal/models"
	"github.com/typeless-cms/core/internal/modules/workspace"
	"gorm.io/gorm"
)

// ErrNotFound signals an absent or soft-deleted content type.
var ErrNotFound = errors.New("content type not found")

// ErrSlugTaken signals a slug collision within the workspace, whether
// caught by the pre-check or by the unique index under concurrency.
var ErrSlugTaken = errors.New("content type slug already exists in this workspace")

// ValidationError marks user-correctable input problems; its message is
// safe to surface as a 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

var fieldNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Service owns content types and their field definitions. Both the
// /contents and /object-types surfaces route into this one service.
type Service struct {
	db  *gorm.DB
	wss *workspace.Service
}

func NewService(db *gorm.DB, wss *workspace.Service) *Service {
	return &Service{db: db, wss: wss}
}

// List returns the workspace's content types with their fields.
func (s *Service) List(workspaceID, userID string) ([]models.ContentTypeModel, error) {
	if _, err := s.wss.Authorize(workspaceID, userID); err != nil {
		return nil, err
	}
	var types []models.ContentTypeModel
	err := s.db.
		Preload("Fields", fieldOrder).
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&types).Error
	return types, err
}

// Get fetches one content type, enforcing workspace access.
func (s *Service) Get(id, userID string) (*models.ContentTypeModel, error) {
	var ct models.ContentTypeModel
	err := s.db.Preload("Fields", fieldOrder).Preload("Fields.RelationTo").First(&ct, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.wss.Authorize(ct.WorkspaceID, userID); err != nil {
		return nil, err
	}
	return &ct, nil
}

func (s *Service) Create(userID string, dto *CreateContentTypeDTO) (*models.ContentTypeModel, error) {
	if _, err := s.wss.Authorize(dto.WorkspaceID, userID); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(strings.ToLower(dto.Slug))
	if !workspace.ValidSlug(slug) {
		return nil, invalidf("invalid slug %q: lowercase letters, digits and hyphens only", dto.Slug)
	}

	var count int64
	s.db.Model(&models.ContentTypeModel{}).
		Where("workspace_id = ? AND slug = ?", dto.WorkspaceID, slug).
		Count(&count)
	if count > 0 {
		return nil, ErrSlugTaken
	}

	fields, err := s.buildFields(dto.WorkspaceID, dto.Fields)
	if err != nil {
		return nil, err
	}

	ct := models.ContentTypeModel{
		Name:        strings.TrimSpace(dto.Name),
		Slug:        slug,
		WorkspaceID: dto.WorkspaceID,
	}
	ct.CreatorID = userID

	// Nested fields commit with the content type or not at all.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ct).Error; err != nil {
			return err
		}
		for i := range fields {
			fields[i].ContentTypeID = ct.ID
		}
		if len(fields) > 0 {
			if err := tx.Create(&fields).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// A concurrent create can slip past the pre-check and hit the
		// unique index instead.
		if workspace.IsDuplicateSlugError(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	ct.Fields = fields
	return &ct, nil
}

func (s *Service) Update(id, userID string, dto *UpdateContentTypeDTO) (*models.ContentTypeModel, error) {
	ct, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"modifier_id": userID}
	if dto.Name != nil {
		updates["name"] = strings.TrimSpace(*dto.Name)
	}
	if dto.Slug != nil {
		slug := strings.TrimSpace(strings.ToLower(*dto.Slug))
		if !workspace.ValidSlug(slug) {
			return nil, invalidf("invalid slug %q", *dto.Slug)
		}
		var count int64
		s.db.Model(&models.ContentTypeModel{}).
			Where("workspace_id = ? AND slug = ? AND id <> ?", ct.WorkspaceID, slug, id).
			Count(&count)
		if count > 0 {
			return nil, ErrSlugTaken
		}
		updates["slug"] = slug
	}

	var newFields []models.FieldDefinitionModel
	if dto.Fields != nil {
		newFields, err = s.buildFields(ct.WorkspaceID, *dto.Fields)
		if err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(ct).Updates(updates).Error; err != nil {
			return err
		}
		if dto.Fields == nil {
			return nil
		}
		// Field replacement: soft-delete the old rows, insert the new
		// set. Entries keep whatever data they already hold.
		if err := tx.Where("content_type_id = ?", ct.ID).
			Delete(&models.FieldDefinitionModel{}).Error; err != nil {
			return err
		}
		for i := range newFields {
			newFields[i].ContentTypeID = ct.ID
		}
		if len(newFields) > 0 {
			return tx.Create(&newFields).Error
		}
		return nil
	})
	if err != nil {
		if workspace.IsDuplicateSlugError(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	return s.Get(id, userID)
}

// Delete soft-deletes the content type. Field definitions stay in place
// under it; nothing ever reads fields of a deleted content type.
func (s *Service) Delete(id, userID string) error {
	ct, err := s.Get(id, userID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(ct).Update("modifier_id", userID).Error; err != nil {
			return err
		}
		return tx.Delete(ct).Error
	})
}

// buildFields validates and materializes a field definition set.
func (s *Service) buildFields(workspaceID string, dtos []FieldDTO) ([]models.FieldDefinitionModel, error) {
	fields := make([]models.FieldDefinitionModel, 0, len(dtos))
	seen := map[string]bool{}

	for i, f := range dtos {
		name := strings.TrimSpace(f.Name)
		if !fieldNamePattern.MatchString(name) {
			return nil, invalidf("invalid field name %q: lowercase letters, digits and underscores only", f.Name)
		}
		if seen[name] {
			return nil, invalidf("duplicate field name %q", name)
		}
		seen[name] = true

		ft := models.FieldType(strings.ToUpper(strings.TrimSpace(f.Type)))
		if !models.ValidFieldType(ft) {
			return nil, invalidf("unknown field type %q", f.Type)
		}

		field := models.FieldDefinitionModel{
			Name:         name,
			DisplayName:  strings.TrimSpace(f.DisplayName),
			Type:         ft,
			Required:     f.Required,
			Multiple:     f.Multiple || ft == models.FieldReferences || ft == models.FieldImages,
			Placeholder:  f.Placeholder,
			DefaultValue: f.DefaultValue,
			Position:     i,
		}

		if ft.IsReference() {
			if f.RelationToID == nil || strings.TrimSpace(*f.RelationToID) == "" {
				return nil, invalidf("field %q is a reference and needs relation_to_id", name)
			}
			var count int64
			s.db.Model(&models.ContentTypeModel{}).
				Where("id = ? AND workspace_id = ?", *f.RelationToID, workspaceID).
				Count(&count)
			if count == 0 {
				return nil, invalidf("field %q references an unknown content type", name)
			}
			field.RelationToID = f.RelationToID
			if ft == models.FieldReferences {
				field.Multiple = true
			}
		}

		fields = append(fields, field)
	}
	return fields, nil
}

func fieldOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
