package workspace

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/typeless-cms/core/internal/models"
	"gorm.io/gorm"
)

// Sentinel errors mapped to 404/403 at the handler boundary.
var (
	ErrNotFound     = errors.New("workspace not found")
	ErrAccessDenied = errors.New("access denied")
	ErrSlugTaken    = errors.New("slug already exists")
)

// ValidationError marks user-correctable input problems. Handlers
// surface its message as a 400; every other unexpected error stays out
// of the response body.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s is a URL-safe workspace or content-type
// slug.
func ValidSlug(s string) bool {
	return len(s) <= 191 && slugPattern.MatchString(s)
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Authorize is the sole authorization primitive: it fetches the
// non-deleted workspace and grants access iff the requesting user
// created it or holds an ACTIVE, non-deleted membership. Every
// tenant-scoped operation goes through here.
func (s *Service) Authorize(workspaceID, userID string) (*models.WorkspaceModel, error) {
	var ws models.WorkspaceModel
	if err := s.db.First(&ws, "id = ?", workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if ws.CreatorID == userID {
		return &ws, nil
	}

	var count int64
	err := s.db.Model(&models.MembershipModel{}).
		Where("workspace_id = ? AND user_id = ? AND status = ?", workspaceID, userID, models.MembershipActive).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrAccessDenied
	}
	return &ws, nil
}

// AccessGranted is the pure access decision: creator, or an active
// membership row.
func AccessGranted(ws *models.WorkspaceModel, userID string, membership *models.MembershipModel) bool {
	if ws == nil || userID == "" {
		return false
	}
	if ws.CreatorID == userID {
		return true
	}
	return membership != nil &&
		membership.UserID == userID &&
		membership.WorkspaceID == ws.ID &&
		membership.Status == models.MembershipActive
}

// List returns the workspaces the user created or is an active member of.
func (s *Service) List(userID string) ([]models.WorkspaceModel, error) {
	var workspaces []models.WorkspaceModel
	err := s.db.
		Where("creator_id = ?", userID).
		Or("id IN (?)", s.db.Model(&models.MembershipModel{}).
			Select("workspace_id").
			Where("user_id = ? AND status = ?", userID, models.MembershipActive)).
		Order("created_at ASC").
		Find(&workspaces).Error
	return workspaces, err
}

func (s *Service) Create(userID string, dto *CreateWorkspaceDTO) (*models.WorkspaceModel, error) {
	slug := strings.TrimSpace(strings.ToLower(dto.Slug))
	if !ValidSlug(slug) {
		return nil, invalidf("invalid slug %q: lowercase letters, digits and hyphens only", dto.Slug)
	}

	var count int64
	s.db.Model(&models.WorkspaceModel{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		return nil, ErrSlugTaken
	}

	ws := models.WorkspaceModel{
		Name:      strings.TrimSpace(dto.Name),
		Slug:      slug,
		Status:    models.WorkspaceActive,
		CreatorID: userID,
		Plan:      models.PlanFree,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ws).Error; err != nil {
			return err
		}
		return tx.Create(&models.MembershipModel{
			UserID:      userID,
			WorkspaceID: ws.ID,
			Role:        models.RoleOwner,
			Status:      models.MembershipActive,
		}).Error
	})
	if err != nil {
		// A concurrent create can slip past the pre-check and hit the
		// unique index instead.
		if IsDuplicateSlugError(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return &ws, nil
}

// EnsurePersonal provisions the user's first workspace on sign-up. The
// slug is derived from the external identity and deduplicated.
func (s *Service) EnsurePersonal(user *models.UserModel) (*models.WorkspaceModel, error) {
	var existing models.WorkspaceModel
	err := s.db.First(&existing, "creator_id = ?", user.ID).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	base := slugify(user.Name)
	if base == "" {
		base = slugify(strings.SplitN(user.Email, "@", 2)[0])
	}
	if base == "" {
		base = "workspace"
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		s.db.Model(&models.WorkspaceModel{}).Where("slug = ?", slug).Count(&count)
		if count == 0 {
			break
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}

	name := strings.TrimSpace(user.Name)
	if name == "" {
		name = "My Workspace"
	}
	return s.Create(user.ID, &CreateWorkspaceDTO{Name: name, Slug: slug})
}

// Update is restricted to the workspace creator.
func (s *Service) Update(workspaceID, userID string, dto *UpdateWorkspaceDTO) (*models.WorkspaceModel, error) {
	ws, err := s.requireCreator(workspaceID, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = strings.TrimSpace(*dto.Name)
	}
	if dto.Slug != nil {
		slug := strings.TrimSpace(strings.ToLower(*dto.Slug))
		if !ValidSlug(slug) {
			return nil, invalidf("invalid slug %q", *dto.Slug)
		}
		var count int64
		s.db.Model(&models.WorkspaceModel{}).Where("slug = ? AND id <> ?", slug, workspaceID).Count(&count)
		if count > 0 {
			return nil, ErrSlugTaken
		}
		updates["slug"] = slug
	}
	if dto.Status != nil {
		updates["status"] = *dto.Status
	}
	if len(updates) == 0 {
		return ws, nil
	}
	return ws, s.db.Model(ws).Updates(updates).Error
}

// Delete soft-deletes the workspace; creator only. The row stays in
// storage, invisible to every query from here on.
func (s *Service) Delete(workspaceID, userID string) error {
	if _, err := s.requireCreator(workspaceID, userID); err != nil {
		return err
	}
	return s.db.Delete(&models.WorkspaceModel{}, "id = ?", workspaceID).Error
}

func (s *Service) requireCreator(workspaceID, userID string) (*models.WorkspaceModel, error) {
	var ws models.WorkspaceModel
	if err := s.db.First(&ws, "id = ?", workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ws.CreatorID != userID {
		return nil, ErrAccessDenied
	}
	return &ws, nil
}

// Members lists the workspace's membership rows.
func (s *Service) Members(workspaceID, userID string) ([]models.MembershipModel, error) {
	if _, err := s.Authorize(workspaceID, userID); err != nil {
		return nil, err
	}
	var members []models.MembershipModel
	err := s.db.Where("workspace_id = ?", workspaceID).Order("created_at ASC").Find(&members).Error
	return members, err
}

// AddMember attaches a user to the workspace with the given role.
func (s *Service) AddMember(workspaceID, userID string, dto *AddMemberDTO) (*models.MembershipModel, error) {
	if _, err := s.Authorize(workspaceID, userID); err != nil {
		return nil, err
	}

	role := strings.ToUpper(strings.TrimSpace(dto.Role))
	switch role {
	case models.RoleOwner, models.RoleAdmin, models.RoleMember, models.RoleViewer:
	case "":
		role = models.RoleMember
	default:
		return nil, invalidf("unknown role %q", dto.Role)
	}

	var count int64
	s.db.Model(&models.MembershipModel{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, dto.UserID).
		Count(&count)
	if count > 0 {
		return nil, invalidf("user is already a member")
	}

	member := models.MembershipModel{
		UserID:      dto.UserID,
		WorkspaceID: workspaceID,
		Role:        role,
		Status:      models.MembershipActive,
	}
	return &member, s.db.Create(&member).Error
}

// DeactivateMember flips a membership to INACTIVE, cutting off access
// without losing the row.
func (s *Service) DeactivateMember(workspaceID, userID, memberID string) error {
	if _, err := s.Authorize(workspaceID, userID); err != nil {
		return err
	}
	res := s.db.Model(&models.MembershipModel{}).
		Where("id = ? AND workspace_id = ?", memberID, workspaceID).
		Update("status", models.MembershipInactive)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func slugify(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	lastHyphen := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// IsDuplicateSlugError reports whether err is a MySQL duplicate-key
// violation on a slug index. The schema module races the same way on
// its own slug index and reuses this check.
func IsDuplicateSlugError(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062 && strings.Contains(mysqlErr.Message, "slug")
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") && strings.Contains(msg, "slug")
}
