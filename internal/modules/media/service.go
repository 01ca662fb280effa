package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/typeless-cms/core/internal/models"
	"github.com/typeless-cms/core/internal/modules/workspace"
	"github.com/typeless-cms/core/internal/pkg/cloudstorage"
	"github.com/typeless-cms/core/internal/pkg/pagination"
	"github.com/typeless-cms/core/internal/pkg/response"
	"github.com/typeless-cms/core/internal/pkg/taskqueue"
	"gorm.io/gorm"
)

// TaskDestroyRemote is the task type for deferred remote deletion.
const TaskDestroyRemote = "media.destroy_remote"

var (
	// ErrNotFound signals an absent or soft-deleted media record.
	ErrNotFound = errors.New("media not found")
	// ErrTooLarge signals an upload over the configured size ceiling.
	ErrTooLarge = errors.New("upload too large")
	// ErrNoTransform signals a transformation request for a non-visual asset.
	ErrNoTransform = errors.New("media type does not support transformations")
)

type destroyPayload struct {
	PublicID string `json:"public_id"`
}

type Service struct {
	db       *gorm.DB
	wss      *workspace.Service
	storage  *cloudstorage.Client
	tasks    *taskqueue.Service
	folder   string
	maxBytes int64
}

func NewService(db *gorm.DB, wss *workspace.Service, storage *cloudstorage.Client, tasks *taskqueue.Service, folder string, maxUploadMB int) *Service {
	s := &Service{
		db:       db,
		wss:      wss,
		storage:  storage,
		tasks:    tasks,
		folder:   folder,
		maxBytes: int64(maxUploadMB) << 20,
	}
	if tasks != nil {
		tasks.Register(TaskDestroyRemote, s.runDestroy)
	}
	return s
}

// MaxBytes is the upload size ceiling.
func (s *Service) MaxBytes() int64 { return s.maxBytes }

func (s *Service) runDestroy(ctx context.Context, payload json.RawMessage) error {
	var p destroyPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return err
	}
	if p.PublicID == "" {
		return nil
	}
	return s.storage.Destroy(ctx, p.PublicID)
}

// Classify maps provider resource/format metadata onto the media type
// taxonomy.
func Classify(resourceType, format string) models.MediaType {
	switch strings.ToLower(resourceType) {
	case "image":
		return models.MediaImage
	case "video":
		return models.MediaVideo
	}
	switch strings.ToLower(format) {
	case "pdf", "doc", "docx", "txt", "md", "csv", "xls", "xlsx", "ppt", "pptx":
		return models.MediaDocument
	}
	return models.MediaFile
}

// Upload pushes a binary stream to the storage provider and records the
// asset.
func (s *Service) Upload(ctx context.Context, userID, workspaceID, name string, r io.Reader, size int64) (*models.MediaModel, error) {
	if _, err := s.wss.Authorize(workspaceID, userID); err != nil {
		return nil, err
	}
	if size > s.maxBytes {
		return nil, ErrTooLarge
	}

	res, err := s.storage.Upload(ctx, r, s.workspaceFolder(workspaceID))
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	return s.persist(userID, workspaceID, name, res, "", "")
}

// UploadBase64 accepts a base64 data URI and records the asset.
func (s *Service) UploadBase64(ctx context.Context, userID string, dto *UploadBase64DTO) (*models.MediaModel, error) {
	if _, err := s.wss.Authorize(dto.WorkspaceID, userID); err != nil {
		return nil, err
	}

	// A data URI inflates payloads by ~4/3; gate on the decoded size.
	if decoded := base64PayloadSize(dto.Data); decoded > s.maxBytes {
		return nil, ErrTooLarge
	}

	res, err := s.storage.UploadBase64(ctx, dto.Data, s.workspaceFolder(dto.WorkspaceID))
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	return s.persist(userID, dto.WorkspaceID, dto.Name, res, dto.AltText, dto.Description)
}

func (s *Service) persist(userID, workspaceID, name string, res *cloudstorage.UploadResult, altText, description string) (*models.MediaModel, error) {
	m := models.MediaModel{
		WorkspaceID: workspaceID,
		Name:        name,
		Type:        Classify(res.ResourceType, res.Format),
		Size:        res.Bytes,
		URL:         res.URL,
		PublicID:    res.PublicID,
		AltText:     altText,
		Description: description,
	}
	m.CreatorID = userID
	if res.Width > 0 {
		w := res.Width
		m.Width = &w
	}
	if res.Height > 0 {
		h := res.Height
		m.Height = &h
	}
	return &m, s.db.Create(&m).Error
}

func (s *Service) List(workspaceID, userID string, q pagination.Query) ([]models.MediaModel, response.Pagination, error) {
	if _, err := s.wss.Authorize(workspaceID, userID); err != nil {
		return nil, response.Pagination{}, err
	}
	var items []models.MediaModel
	page, err := pagination.Paginate(
		s.db.Model(&models.MediaModel{}).
			Where("workspace_id = ?", workspaceID).
			Order("created_at DESC"),
		q, &items)
	return items, page, err
}

func (s *Service) Get(id, userID string) (*models.MediaModel, error) {
	var m models.MediaModel
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.wss.Authorize(m.WorkspaceID, userID); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Update(id, userID string, dto *UpdateMediaDTO) (*models.MediaModel, error) {
	m, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{"modifier_id": userID}
	if dto.Name != nil {
		updates["name"] = strings.TrimSpace(*dto.Name)
	}
	if dto.AltText != nil {
		updates["alt_text"] = *dto.AltText
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	return m, s.db.Model(m).Updates(updates).Error
}

// Delete soft-deletes the local record, then hands the remote destroy
// to the task queue. The local delete is the operation whose failure
// matters; the remote one is best-effort and runs after we've answered.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	m, err := s.Get(id, userID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(m).Update("modifier_id", userID).Error; err != nil {
			return err
		}
		return tx.Delete(m).Error
	})
	if err != nil {
		return err
	}

	if s.tasks != nil && m.PublicID != "" {
		// Errors here are swallowed: the record is already gone locally.
		_, _ = s.tasks.Enqueue(ctx, TaskDestroyRemote, destroyPayload{PublicID: m.PublicID})
	}
	return nil
}

// TransformURL builds a provider delivery URL for the asset with the
// requested transformation.
func (s *Service) TransformURL(id, userID string, q *TransformQuery) (string, error) {
	m, err := s.Get(id, userID)
	if err != nil {
		return "", err
	}
	if m.Type != models.MediaImage && m.Type != models.MediaVideo {
		return "", ErrNoTransform
	}
	return s.storage.TransformURL(m.PublicID, BuildTransformation(q))
}

// BuildTransformation renders the provider transformation string.
func BuildTransformation(q *TransformQuery) string {
	var parts []string
	if q.Width > 0 {
		parts = append(parts, fmt.Sprintf("w_%d", q.Width))
	}
	if q.Height > 0 {
		parts = append(parts, fmt.Sprintf("h_%d", q.Height))
	}
	if crop := strings.TrimSpace(q.Crop); crop != "" {
		parts = append(parts, "c_"+crop)
	} else if q.Width > 0 || q.Height > 0 {
		parts = append(parts, "c_limit")
	}
	if format := strings.TrimSpace(q.Format); format != "" {
		parts = append(parts, "f_"+format)
	}
	if quality := strings.TrimSpace(q.Quality); quality != "" {
		parts = append(parts, "q_"+quality)
	}
	return strings.Join(parts, ",")
}

func (s *Service) workspaceFolder(workspaceID string) string {
	return s.folder + "/" + workspaceID
}

// base64PayloadSize estimates the decoded byte size of a data URI.
func base64PayloadSize(dataURI string) int64 {
	idx := strings.Index(dataURI, ",")
	if idx < 0 {
		return int64(len(dataURI))
	}
	payload := len(dataURI) - idx - 1
	return int64(payload) * 3 / 4
}
