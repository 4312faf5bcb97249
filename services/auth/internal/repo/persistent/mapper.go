package persistent

import (
	"dalil/services/auth/internal/entity"
	"dalil/services/auth/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		AvatarURL:    m.AvatarURL,
		Bio:          m.Bio,
		Role:         entity.UserRole(m.Role),
		Locale:       m.Locale,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:           e.ID,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		FullName:     e.FullName,
		AvatarURL:    e.AvatarURL,
		Bio:          e.Bio,
		Role:         string(e.Role),
		Locale:       e.Locale,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func profileColumns(e *entity.User) map[string]interface{} {
	return map[string]interface{}{
		"full_name":  e.FullName,
		"bio":        e.Bio,
		"locale":     e.Locale,
		"avatar_url": e.AvatarURL,
	}
}
