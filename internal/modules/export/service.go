// Package export serializes a workspace's schema and content into a
// JSON snapshot stored on S3-compatible object storage.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/typeless-cms/core/internal/config"
	"github.com/typeless-cms/core/internal/models"
	"github.com/typeless-cms/core/internal/modules/workspace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotConfigured signals a deployment without an export bucket.
var ErrNotConfigured = errors.New("export storage is not configured")

// Snapshot is the exported document layout.
type Snapshot struct {
	Workspace    *models.WorkspaceModel    `json:"workspace"`
	ContentTypes []models.ContentTypeModel `json:"content_types"`
	Entries      []models.EntryModel       `json:"entries"`
	ExportedAt   time.Time                 `json:"exported_at"`
}

// Result points at the stored snapshot.
type Result struct {
	Key     string `json:"key"`
	Bucket  string `json:"bucket"`
	Size    int    `json:"size"`
	Entries int    `json:"entries"`
}

type Service struct {
	db     *gorm.DB
	wss    *workspace.Service
	cfg    config.ExportConfig
	client *s3.Client
	logger *zap.Logger
}

func NewService(db *gorm.DB, wss *workspace.Service, cfg config.ExportConfig, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{db: db, wss: wss, cfg: cfg, logger: logger}
	if cfg.Bucket == "" {
		return s, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("export storage init: %w", err)
	}

	s.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return s, nil
}

// Export snapshots the workspace and uploads it. The object key embeds
// the workspace slug and a UTC timestamp so successive exports never
// collide.
func (s *Service) Export(ctx context.Context, workspaceID, userID string) (*Result, error) {
	if s.client == nil {
		return nil, ErrNotConfigured
	}

	ws, err := s.wss.Authorize(workspaceID, userID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.buildSnapshot(ws)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, err
	}

	key := s.objectKey(ws.Slug, snapshot.ExportedAt)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}

	s.logger.Info("workspace exported",
		zap.String("workspace_id", workspaceID),
		zap.String("key", key),
		zap.Int("entries", len(snapshot.Entries)),
	)
	return &Result{
		Key:     key,
		Bucket:  s.cfg.Bucket,
		Size:    len(body),
		Entries: len(snapshot.Entries),
	}, nil
}

func (s *Service) buildSnapshot(ws *models.WorkspaceModel) (*Snapshot, error) {
	var contentTypes []models.ContentTypeModel
	err := s.db.
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("workspace_id = ?", ws.ID).
		Order("created_at ASC").
		Find(&contentTypes).Error
	if err != nil {
		return nil, err
	}

	var entries []models.EntryModel
	if len(contentTypes) > 0 {
		ids := make([]string, len(contentTypes))
		for i, ct := range contentTypes {
			ids[i] = ct.ID
		}
		err = s.db.
			Where("content_type_id IN ?", ids).
			Order("created_at ASC").
			Find(&entries).Error
		if err != nil {
			return nil, err
		}
	}

	return &Snapshot{
		Workspace:    ws,
		ContentTypes: contentTypes,
		Entries:      entries,
		ExportedAt:   time.Now().UTC(),
	}, nil
}

func (s *Service) objectKey(slug string, at time.Time) string {
	key := fmt.Sprintf("%s/%s.json", slug, at.Format("20060102-150405"))
	if s.cfg.Prefix != "" {
		key = s.cfg.Prefix + "/" + key
	}
	return key
}
