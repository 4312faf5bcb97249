package usecase

import "dalil/pkg/apperr"

var (
	ErrEmailTaken         = apperr.New(apperr.KindConflict, "auth.emailTaken")
	ErrWeakPassword       = apperr.New(apperr.KindValidation, "auth.weakPassword")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "auth.invalidCredentials")
	ErrCannotDemoteSelf   = apperr.New(apperr.KindValidation, "auth.cannotDemoteSelf")
	ErrCannotDeleteSelf   = apperr.New(apperr.KindValidation, "auth.cannotDeleteSelf")
	ErrInvalidRole        = apperr.New(apperr.KindValidation, "auth.invalidRole")
	ErrUserNotFound       = apperr.New(apperr.KindNotFound, "user.notFound")
)
