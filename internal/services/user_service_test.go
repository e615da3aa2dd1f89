package services_test

import (
	"context"
	"errors"
	"testing"

	"fastzero/internal/models"
	"fastzero/internal/repositories"
	"fastzero/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(repo repositories.UserRepository, events services.EventPublisher) *services.UserService {
	return services.NewUserService(repo, services.NewPasswordHasher(bcrypt.MinCost), events)
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	mockEvents := new(MockEventPublisher)
	service := newUserService(mockRepo, mockEvents)

	in := models.UserCreate{Username: "alice", Email: "alice@example.com", Password: "secret"}

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 1
		}).
		Return(nil).Once()
	mockEvents.On("PublishUserEvent", services.EventUserCreated, mock.Anything).Return(nil).Once()

	user, err := service.CreateUser(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.NotEqual(t, "secret", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret")))

	// Conflicts are passed through untouched and publish nothing
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(repositories.ErrUsernameTaken).Once()
	_, err = service.CreateUser(ctx, in)
	assert.ErrorIs(t, err, repositories.ErrUsernameTaken)

	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestUserService_PublishFailureDoesNotFailRequest(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockEvents := new(MockEventPublisher)
	service := newUserService(mockRepo, mockEvents)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockEvents.On("PublishUserEvent", services.EventUserCreated, mock.Anything).Return(errors.New("broker down")).Once()

	_, err := service.CreateUser(context.Background(), models.UserCreate{Username: "a", Email: "a@example.com", Password: "p"})
	assert.NoError(t, err)
	mockEvents.AssertExpectations(t)
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := newUserService(mockRepo, nil)

	owner := &models.User{ID: 1, Username: "bob", Email: "bob@example.com", Password: "old-hash"}
	in := models.UserCreate{Username: "bob", Email: "bob@example.com", Password: "secret"}

	var stored *models.User
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.User)
		}).
		Return(nil).Once()

	user, err := service.UpdateUser(ctx, owner, 1, in)
	require.NoError(t, err)
	assert.Equal(t, uint(1), stored.ID)
	assert.Equal(t, "bob", user.Username)
	assert.NotEqual(t, "old-hash", stored.Password, "password is re-hashed even when unchanged")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret")))

	// Not found
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(repositories.ErrUserNotFound).Once()
	_, err = service.UpdateUser(ctx, owner, 1, in)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	// Conflict at commit
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(repositories.ErrDuplicateUser).Once()
	_, err = service.UpdateUser(ctx, owner, 1, in)
	assert.ErrorIs(t, err, repositories.ErrDuplicateUser)

	mockRepo.AssertExpectations(t)
}

func TestUserService_OwnershipCheckedBeforeExistence(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := newUserService(mockRepo, nil)

	owner := &models.User{ID: 1}
	in := models.UserCreate{Username: "x", Email: "x@example.com", Password: "p"}

	_, err := service.UpdateUser(ctx, owner, 2, in)
	assert.ErrorIs(t, err, services.ErrForbidden)
	_, err = service.UpdateUser(ctx, nil, 1, in)
	assert.ErrorIs(t, err, services.ErrForbidden)

	// 999 does not exist, the answer is still forbidden
	assert.ErrorIs(t, service.DeleteUser(ctx, owner, 999), services.ErrForbidden)
	assert.ErrorIs(t, service.DeleteUser(ctx, nil, 1), services.ErrForbidden)

	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	mockEvents := new(MockEventPublisher)
	service := newUserService(mockRepo, mockEvents)
	owner := &models.User{ID: 1}

	mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil).Once()
	mockEvents.On("PublishUserEvent", services.EventUserDeleted, map[string]interface{}{"id": uint(1)}).Return(nil).Once()
	assert.NoError(t, service.DeleteUser(ctx, owner, 1))

	mockRepo.On("Delete", mock.Anything, uint(1)).Return(repositories.ErrUserNotFound).Once()
	assert.ErrorIs(t, service.DeleteUser(ctx, owner, 1), repositories.ErrUserNotFound)

	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestUserService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := newUserService(mockRepo, nil)

	expected := []models.User{{ID: 1, Username: "a"}, {ID: 2, Username: "b"}}
	page := models.FilterPage{Offset: 0, Limit: 10}
	mockRepo.On("List", mock.Anything, page).Return(expected, nil).Once()
	users, err := service.ListUsers(ctx, page)
	require.NoError(t, err)
	assert.Equal(t, expected, users)

	mockRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, repositories.ErrUserNotFound).Once()
	_, err = service.GetUser(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	mockRepo.AssertExpectations(t)
}
