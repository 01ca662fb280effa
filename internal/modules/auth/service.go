package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/typeless-cms/core/internal/models"
	"github.com/typeless-cms/core/internal/modules/workspace"
	"github.com/typeless-cms/core/internal/pkg/identity"
	"github.com/typeless-cms/core/internal/pkg/jwt"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionTTL is the dashboard session token lifetime.
const SessionTTL = 7 * 24 * time.Hour

// ErrBadToken signals a provider token the identity provider rejected.
var ErrBadToken = errors.New("invalid access token")

type Service struct {
	db       *gorm.DB
	resolver *identity.Resolver
	wss      *workspace.Service
	logger   *zap.Logger
}

func NewService(db *gorm.DB, resolver *identity.Resolver, wss *workspace.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, resolver: resolver, wss: wss, logger: logger}
}

// SignIn exchanges a provider access token for a local session token.
// First sign-in provisions the user row and a personal workspace.
func (s *Service) SignIn(accessToken, userAgent, ip string) (string, *models.UserModel, error) {
	profile, err := s.resolver.Resolve(accessToken)
	if err != nil {
		return "", nil, ErrBadToken
	}

	user, created, err := s.upsertUser(profile)
	if err != nil {
		return "", nil, err
	}

	if created {
		if _, err := s.wss.EnsurePersonal(user); err != nil {
			// The user can still sign in and create a workspace manually.
			s.logger.Warn("personal workspace provisioning failed",
				zap.String("user_id", user.ID), zap.Error(err))
		}
	}

	session := models.UserSession{
		UserID:    user.ID,
		UserAgent: userAgent,
		IP:        ip,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return "", nil, err
	}

	token, err := jwt.Sign(user.ID, session.ID, SessionTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *Service) upsertUser(profile *identity.Profile) (*models.UserModel, bool, error) {
	var user models.UserModel
	err := s.db.First(&user, "external_id = ?", profile.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.UserModel{
			ExternalID: profile.ID,
			Email:      profile.Email,
			Name:       profile.Name,
			AvatarURL:  profile.AvatarURL,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, false, err
		}
		return &user, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	if err := s.applyProfile(&user, profile); err != nil {
		return nil, false, err
	}
	return &user, false, nil
}

// Sync re-fetches the provider profile and updates the local user.
func (s *Service) Sync(userID, accessToken string) (*models.UserModel, error) {
	profile, err := s.resolver.Resolve(accessToken)
	if err != nil {
		return nil, ErrBadToken
	}

	var user models.UserModel
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	if user.ExternalID != profile.ID {
		return nil, ErrBadToken
	}

	if err := s.applyProfile(&user, profile); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) applyProfile(user *models.UserModel, profile *identity.Profile) error {
	updates := map[string]interface{}{}
	if email := strings.TrimSpace(profile.Email); email != "" && email != user.Email {
		updates["email"] = email
	}
	if name := strings.TrimSpace(profile.Name); name != "" && name != user.Name {
		updates["name"] = name
	}
	if profile.AvatarURL != "" && profile.AvatarURL != user.AvatarURL {
		updates["avatar_url"] = profile.AvatarURL
	}
	if len(updates) == 0 {
		return nil
	}
	return s.db.Model(user).Updates(updates).Error
}

// Refresh issues a fresh token for an already-validated session.
func (s *Service) Refresh(userID, sessionID string) (string, error) {
	return jwt.Sign(userID, sessionID, SessionTTL)
}

// User loads the signed-in user.
func (s *Service) User(userID string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SignOut revokes the session backing the current token.
func (s *Service) SignOut(sessionID string) error {
	return s.db.Model(&models.UserSession{}).
		Where("id = ?", sessionID).
		Update("revoked", true).Error
}
