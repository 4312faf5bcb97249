package usecase

import (
	"errors"
	"testing"

	"dalil/pkg/apperr"
	"dalil/pkg/audit"
	"dalil/pkg/authz"
	"dalil/pkg/jwt"
	"dalil/pkg/logger"
	"dalil/pkg/media"
	"dalil/pkg/testutil"
	"dalil/services/auth/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	if args.Error(0) == nil && user.ID == "" {
		user.ID = "new-user"
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User, fields ...string) error {
	args := m.Called(user, fields)
	return args.Error(0)
}

func (m *MockUserRepository) List(filter entity.UserFilter) ([]*entity.User, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) UpdateRole(id string, role entity.UserRole) error {
	args := m.Called(id, role)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

type fixture struct {
	repo        *MockUserRepository
	storage     *testutil.Storage
	recorder    *testutil.Recorder
	revalidator *testutil.Revalidator
	jwtService  *jwt.Service
	uc          AuthUseCase
}

func newFixture() *fixture {
	f := &fixture{
		repo:       new(MockUserRepository),
		storage:    new(testutil.Storage),
		jwtService: jwt.NewService("test-secret"),
	}
	f.recorder, f.revalidator = testutil.Permissive()
	f.uc = NewAuthUseCase(f.repo, f.jwtService, f.storage, authz.StaticGate{"admin-1": true}, f.recorder, f.revalidator, logger.New())
	return f
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByEmail", "salma@example.com").Return(nil, gorm.ErrRecordNotFound)
	f.repo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	user, token, err := f.uc.Register(" Salma@Example.com ", "s3cret-pass", " Salma ", "fr")

	require.NoError(t, err)
	assert.Equal(t, "salma@example.com", user.Email)
	assert.Equal(t, "Salma", user.FullName)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.Equal(t, "ar", user.Locale)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))

	claims, err := f.jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "new-user", claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestRegister_WeakPassword(t *testing.T) {
	f := newFixture()

	_, _, err := f.uc.Register("a@b.co", "short", "", "en")

	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.Empty(t, f.repo.Calls)
}

func TestRegister_InvalidEmail(t *testing.T) {
	for _, addr := range []string{"not-an-email", "Eve <eve@example.com>", "<eve@example.com>", "a@"} {
		f := newFixture()

		_, _, err := f.uc.Register(addr, "long-enough", "Eve", "ar")

		assert.ErrorIs(t, err, apperr.ErrInvalidInput, addr)
		f.repo.AssertNotCalled(t, "GetByEmail", mock.Anything)
		f.repo.AssertNotCalled(t, "Create", mock.Anything)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByEmail", "a@b.co").Return(&entity.User{ID: "u-1"}, nil)

	_, _, err := f.uc.Register("a@b.co", "long-enough", "", "en")

	assert.ErrorIs(t, err, ErrEmailTaken)
	f.repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_UniqueViolation(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByEmail", "a@b.co").Return(nil, gorm.ErrRecordNotFound)
	f.repo.On("Create", mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, _, err := f.uc.Register("a@b.co", "long-enough", "", "en")

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByEmail", "admin@dalil.ai").Return(&entity.User{
		ID:           "admin-1",
		Email:        "admin@dalil.ai",
		PasswordHash: hashed(t, "correct-horse"),
		Role:         entity.RoleAdmin,
	}, nil)

	user, token, err := f.uc.Login("ADMIN@dalil.ai", "correct-horse")

	require.NoError(t, err)
	assert.Equal(t, "admin-1", user.ID)
	claims, err := f.jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByEmail", "a@b.co").Return(&entity.User{PasswordHash: hashed(t, "right-one")}, nil)

	_, _, err := f.uc.Login("a@b.co", "wrong-one")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByEmail", "ghost@b.co").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := f.uc.Login("ghost@b.co", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", "u-1").Return(&entity.User{ID: "u-1", Locale: "ar"}, nil)
	f.repo.On("Update", mock.Anything, []string{"full_name", "locale"}).Return(nil)
	name, locale := " Omar ", "en"

	user, err := f.uc.UpdateProfile("u-1", entity.ProfileUpdate{FullName: &name, Locale: &locale})

	require.NoError(t, err)
	assert.Equal(t, "Omar", user.FullName)
	assert.Equal(t, "en", user.Locale)
}

func TestUpdateProfile_BadLocale(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", "u-1").Return(&entity.User{ID: "u-1"}, nil)
	locale := "de"

	_, err := f.uc.UpdateProfile("u-1", entity.ProfileUpdate{Locale: &locale})

	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUploadAvatar_RejectsTypeWithoutUpload(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", "u-1").Return(&entity.User{ID: "u-1"}, nil)

	_, err := f.uc.UploadAvatar("u-1", media.Candidate{Name: "x.pdf", DeclaredType: "application/pdf", Content: []byte("%PDF-1.4")})

	assert.ErrorIs(t, err, media.ErrTypeNotAllowed)
	f.storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleRole_NonAdminChangesNothing(t *testing.T) {
	f := newFixture()

	_, err := f.uc.ToggleRole("u-2", "u-3")

	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.Empty(t, f.repo.Calls)
	assert.Empty(t, f.recorder.Entries())
}

func TestToggleRole_PromotesAndAudits(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", "u-2").Return(&entity.User{ID: "u-2", Email: "u2@b.co", Role: entity.RoleUser}, nil)
	f.repo.On("UpdateRole", "u-2", entity.RoleAdmin).Return(nil)

	user, err := f.uc.ToggleRole("admin-1", "u-2")

	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	entries := f.recorder.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionToggleRole, entries[0].Action)
	assert.Equal(t, audit.ResourceUser, entries[0].ResourceType)
	assert.Equal(t, entity.RoleAdmin, entries[0].Details["to"])
}

func TestToggleRole_CannotDemoteSelf(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", "admin-1").Return(&entity.User{ID: "admin-1", Role: entity.RoleAdmin}, nil)

	_, err := f.uc.ToggleRole("admin-1", "admin-1")

	assert.ErrorIs(t, err, ErrCannotDemoteSelf)
	f.repo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything)
	assert.Empty(t, f.recorder.Entries())
}

func TestDeleteUser_CannotDeleteSelf(t *testing.T) {
	f := newFixture()

	err := f.uc.DeleteUser("admin-1", "admin-1")

	assert.ErrorIs(t, err, ErrCannotDeleteSelf)
	assert.Empty(t, f.repo.Calls)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", "u-2").Return(&entity.User{ID: "u-2", Email: "u2@b.co"}, nil)
	f.repo.On("Delete", "u-2").Return(nil)

	require.NoError(t, f.uc.DeleteUser("admin-1", "u-2"))

	entries := f.recorder.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionDelete, entries[0].Action)
	f.revalidator.AssertCalled(t, "RevalidatePath", []string{"/api/v1/products"})
}

func TestDeleteUser_StoreFailure(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", "u-2").Return(&entity.User{ID: "u-2"}, nil)
	f.repo.On("Delete", "u-2").Return(errors.New("fk violation"))

	err := f.uc.DeleteUser("admin-1", "u-2")

	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.Empty(t, f.recorder.Entries())
}

func TestListUsers_ClampsAndValidates(t *testing.T) {
	f := newFixture()
	f.repo.On("List", entity.UserFilter{Search: "salma", Role: entity.RoleAdmin, Limit: MaxPageSize}).
		Return([]*entity.User{{ID: "u-1"}}, int64(1), nil)

	users, total, err := f.uc.ListUsers("admin-1", entity.UserFilter{Search: " salma ", Role: entity.RoleAdmin, Limit: 999})

	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, int64(1), total)

	_, _, err = f.uc.ListUsers("admin-1", entity.UserFilter{Role: "owner"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}
