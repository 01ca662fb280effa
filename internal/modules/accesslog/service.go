package accesslog

import (
	"context"
	"time"

	"github.com/typeless-cms/core/internal/models"
	"github.com/typeless-cms/core/internal/modules/workspace"
	"github.com/typeless-cms/core/internal/pkg/effect"
	"github.com/typeless-cms/core/internal/pkg/pagination"
	"github.com/typeless-cms/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Service records public reads. Writes detach from the request through
// the effect boundary: the read has already returned by the time the
// insert runs, and an insert failure is logged and dropped.
type Service struct {
	db      *gorm.DB
	wss     *workspace.Service
	effects *effect.Runner
}

func NewService(db *gorm.DB, wss *workspace.Service, effects *effect.Runner) *Service {
	return &Service{db: db, wss: wss, effects: effects}
}

// Log records one public read of the given entries. Fire-and-forget.
func (s *Service) Log(entryIDs []string, clientIP string) {
	if len(entryIDs) == 0 {
		return
	}

	rows := make([]models.EntryAccessLogModel, 0, len(entryIDs))
	now := time.Now()
	for _, id := range entryIDs {
		rows = append(rows, models.EntryAccessLogModel{
			EntryID:   id,
			IP:        clientIP,
			Timestamp: now,
		})
	}

	s.effects.Go("entry-access-log", func(ctx context.Context) error {
		return s.db.WithContext(ctx).Create(&rows).Error
	})
}

// List pages a workspace's access logs, newest first.
func (s *Service) List(workspaceID, userID string, q pagination.Query) ([]models.EntryAccessLogModel, response.Pagination, error) {
	if _, err := s.wss.Authorize(workspaceID, userID); err != nil {
		return nil, response.Pagination{}, err
	}

	sub := s.db.Model(&models.EntryModel{}).
		Select("entries.id").
		Joins("JOIN content_types ON content_types.id = entries.content_type_id").
		Where("content_types.workspace_id = ?", workspaceID)

	var logs []models.EntryAccessLogModel
	page, err := pagination.Paginate(
		s.db.Model(&models.EntryAccessLogModel{}).
			Where("entry_id IN (?)", sub).
			Order("timestamp DESC"),
		q, &logs)
	return logs, page, err
}
