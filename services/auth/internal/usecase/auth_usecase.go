package usecase

import (
	"bytes"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"dalil/pkg/apperr"
	"dalil/pkg/audit"
	"dalil/pkg/authz"
	"dalil/pkg/cache"
	"dalil/pkg/i18n"
	"dalil/pkg/jwt"
	"dalil/pkg/logger"
	"dalil/pkg/media"
	"dalil/pkg/s3"
	"dalil/pkg/validate"
	"dalil/services/auth/internal/entity"
	"dalil/services/auth/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	MinPasswordLength = 8
	maxNameLength     = 255
	maxBioLength      = 1000

	DefaultPageSize = 20
	MaxPageSize     = 100
)

type AuthUseCase interface {
	Register(email, password, fullName, locale string) (*entity.User, string, error)
	Login(email, password string) (*entity.User, string, error)
	GetUser(userID string) (*entity.User, error)
	UpdateProfile(userID string, update entity.ProfileUpdate) (*entity.User, error)
	UploadAvatar(userID string, avatar media.Candidate) (*entity.User, error)
	ListUsers(adminID string, filter entity.UserFilter) ([]*entity.User, int64, error)
	ToggleRole(adminID, userID string) (*entity.User, error)
	DeleteUser(adminID, userID string) error
}

type authUseCase struct {
	userRepo    persistent.UserRepository
	jwtService  *jwt.Service
	storage     s3.Storage
	gate        authz.Gate
	recorder    audit.Recorder
	revalidator cache.Revalidator
	logger      *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	storage s3.Storage,
	gate authz.Gate,
	recorder audit.Recorder,
	revalidator cache.Revalidator,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:    userRepo,
		jwtService:  jwtService,
		storage:     storage,
		gate:        gate,
		recorder:    recorder,
		revalidator: revalidator,
		logger:      logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *authUseCase) Register(email, password, fullName, locale string) (*entity.User, string, error) {
	email = normalizeEmail(email)
	if !validate.Email(email) {
		return nil, "", apperr.ErrInvalidInput
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, "", ErrWeakPassword
	}
	if !i18n.IsSupported(locale) {
		locale = i18n.DefaultLanguage
	}

	_, err := uc.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		uc.logger.Error("Failed to look up user: %v", err)
		return nil, "", apperr.Internal(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", apperr.Internal(err)
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		FullName:     strings.TrimSpace(fullName),
		Role:         entity.RoleUser,
		Locale:       locale,
	}

	if err := uc.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", apperr.Internal(err)
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", apperr.Internal(err)
	}

	return user, token, nil
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		uc.logger.Error("Failed to look up user: %v", err)
		return nil, "", apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", apperr.Internal(err)
	}

	return user, token, nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, uc.storeErr(err)
	}
	return user, nil
}

func (uc *authUseCase) UpdateProfile(userID string, update entity.ProfileUpdate) (*entity.User, error) {
	user, err := uc.GetUser(userID)
	if err != nil {
		return nil, err
	}

	var fields []string
	if update.FullName != nil {
		name := strings.TrimSpace(*update.FullName)
		if utf8.RuneCountInString(name) > maxNameLength {
			return nil, apperr.ErrInvalidInput
		}
		user.FullName = name
		fields = append(fields, "full_name")
	}
	if update.Bio != nil {
		bio := strings.TrimSpace(*update.Bio)
		if utf8.RuneCountInString(bio) > maxBioLength {
			return nil, apperr.ErrInvalidInput
		}
		user.Bio = bio
		fields = append(fields, "bio")
	}
	if update.Locale != nil {
		if !i18n.IsSupported(*update.Locale) {
			return nil, apperr.ErrInvalidInput
		}
		user.Locale = *update.Locale
		fields = append(fields, "locale")
	}

	if err := uc.userRepo.Update(user, fields...); err != nil {
		return nil, uc.storeErr(err)
	}
	return user, nil
}

// UploadAvatar stores the image under avatars/<user id>/ in the site-assets
// bucket.
func (uc *authUseCase) UploadAvatar(userID string, avatar media.Candidate) (*entity.User, error) {
	user, err := uc.GetUser(userID)
	if err != nil {
		return nil, err
	}

	mimeType, err := media.Validate(media.BucketSiteAssets, avatar)
	if err != nil {
		return nil, err
	}

	key := "avatars/" + userID + "/" + media.StoredName(avatar.Name, time.Now())
	avatarURL, err := uc.storage.UploadFile(media.BucketSiteAssets, key, bytes.NewReader(avatar.Content), mimeType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, media.ErrUploadFailed
	}

	user.AvatarURL = avatarURL
	if err := uc.userRepo.Update(user, "avatar_url"); err != nil {
		if derr := uc.storage.DeleteFile(media.BucketSiteAssets, key); derr != nil {
			uc.logger.Warn("Failed to remove orphaned avatar %s: %v", key, derr)
		}
		return nil, uc.storeErr(err)
	}
	return user, nil
}

func (uc *authUseCase) ListUsers(adminID string, filter entity.UserFilter) ([]*entity.User, int64, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, 0, err
	}
	if filter.Role != "" && filter.Role != entity.RoleUser && filter.Role != entity.RoleAdmin {
		return nil, 0, ErrInvalidRole
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	filter.Search = strings.TrimSpace(filter.Search)

	users, total, err := uc.userRepo.List(filter)
	if err != nil {
		uc.logger.Error("Failed to list users: %v", err)
		return nil, 0, apperr.Internal(err)
	}
	return users, total, nil
}

// ToggleRole flips user <-> admin. An admin cannot demote themselves.
func (uc *authUseCase) ToggleRole(adminID, userID string) (*entity.User, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, uc.storeErr(err)
	}

	newRole := entity.RoleAdmin
	if user.IsAdmin() {
		if adminID == userID {
			return nil, ErrCannotDemoteSelf
		}
		newRole = entity.RoleUser
	}

	if err := uc.userRepo.UpdateRole(userID, newRole); err != nil {
		uc.logger.Error("Failed to update role of %s: %v", userID, err)
		return nil, uc.storeErr(err)
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionToggleRole,
		ResourceType: audit.ResourceUser,
		ResourceID:   userID,
		Details:      map[string]interface{}{"from": user.Role, "to": newRole, "email": user.Email},
	})

	user.Role = newRole
	return user, nil
}

func (uc *authUseCase) DeleteUser(adminID, userID string) error {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return err
	}
	if adminID == userID {
		return ErrCannotDeleteSelf
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return uc.storeErr(err)
	}

	if err := uc.userRepo.Delete(userID); err != nil {
		uc.logger.Error("Failed to delete user %s: %v", userID, err)
		return uc.storeErr(err)
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionDelete,
		ResourceType: audit.ResourceUser,
		ResourceID:   userID,
		Details:      map[string]interface{}{"email": user.Email},
	})
	// the user's reviews go with the account
	uc.revalidator.RevalidatePath(cache.PathProducts)
	return nil
}

func (uc *authUseCase) storeErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	uc.logger.Error("User store error: %v", err)
	return apperr.Internal(err)
}
