package service

import (
	"microblog-backend/internal/errors"
	"microblog-backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// TestRegister 测试用户注册功能
func TestRegister(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, nil, nil)

	user := &model.User{
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: "password123",
	}

	// 测试成功注册
	mockRepo.On("FindByUsername", "testuser").Return(nil, nil)
	mockRepo.On("FindByEmail", "test@example.com").Return(nil, nil)
	mockRepo.On("Create", mock.AnythingOfType("*model.User")).Return(nil)

	err := service.Register(user)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// 密码以 bcrypt 哈希入库，不能是明文
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))

	// 测试用户名已存在
	mockRepo.On("FindByUsername", "existinguser").Return(&model.User{}, nil)
	user.Username = "existinguser"
	err = service.Register(user)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrUserExists, errors.CodeOf(err))
}

// TestLogin 测试登录功能
func TestLogin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, nil, nil)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	stored := &model.User{ID: 1, Email: "test@example.com", PasswordHash: string(hash)}

	// 测试成功登录
	mockRepo.On("FindByEmail", "test@example.com").Return(stored, nil)
	user, err := service.Login("test@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)

	// 测试密码错误
	_, err = service.Login("test@example.com", "wrongpassword")
	assert.Error(t, err)
	assert.Equal(t, errors.ErrInvalidCredentials, errors.CodeOf(err))

	// 测试邮箱不存在，错误与密码错误不可区分
	mockRepo.On("FindByEmail", "nobody@example.com").Return(nil, nil)
	_, err = service.Login("nobody@example.com", "password123")
	assert.Error(t, err)
	assert.Equal(t, errors.ErrInvalidCredentials, errors.CodeOf(err))
}

// TestGetUserByUsername 测试按用户名查询
func TestGetUserByUsername(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, nil, nil)

	mockRepo.On("FindByUsername", "alice").Return(&model.User{ID: 7, Username: "alice"}, nil)
	user, err := service.GetUserByUsername("alice")
	assert.NoError(t, err)
	assert.Equal(t, 7, user.ID)

	mockRepo.On("FindByUsername", "ghost").Return(nil, nil)
	_, err = service.GetUserByUsername("ghost")
	assert.Error(t, err)
	assert.Equal(t, errors.ErrUserNotFound, errors.CodeOf(err))
}

// TestDeleteAccount 测试账号删除
func TestDeleteAccount(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, nil, nil)

	mockRepo.On("Delete", 3).Return(nil)
	err := service.DeleteAccount(3)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
