package service

import (
	"microblog-backend/internal/errors"
	"microblog-backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestCreatePost 测试创建帖子
func TestCreatePost(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockGroups := new(MockGroupRepository)
	service := NewPostService(mockPosts, mockGroups, nil)

	// 不带社区的帖子
	mockPosts.On("Create", mock.AnythingOfType("*model.Post")).Return(nil)
	post, err := service.CreatePost(1, "第一篇帖子", nil, "")
	assert.NoError(t, err)
	assert.Equal(t, 1, post.AuthorID)
	mockPosts.AssertExpectations(t)

	// 空文本直接拒绝，不触达仓库
	_, err = service.CreatePost(1, "   ", nil, "")
	assert.Error(t, err)
	assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))

	// 指定的社区不存在
	mockGroups.On("FindByID", 99).Return(nil, nil)
	groupID := 99
	_, err = service.CreatePost(1, "带社区的帖子", &groupID, "")
	assert.Error(t, err)
	assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))
}

// TestEditPostAuthorOnly 测试只有作者能修改帖子
func TestEditPostAuthorOnly(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockGroups := new(MockGroupRepository)
	service := NewPostService(mockPosts, mockGroups, nil)

	stored := &model.Post{ID: 5, AuthorID: 1, Text: "原始内容"}
	mockPosts.On("FindByID", 5).Return(stored, nil)

	// 非作者的修改被拒绝，仓库不发生任何写入
	_, err := service.EditPost(2, 5, "篡改内容", nil, "")
	assert.Error(t, err)
	assert.Equal(t, errors.ErrForbidden, errors.CodeOf(err))
	mockPosts.AssertNotCalled(t, "Update", mock.Anything)

	// 作者本人修改成功
	mockPosts.On("Update", mock.AnythingOfType("*model.Post")).Return(nil)
	post, err := service.EditPost(1, 5, "修改后的内容", nil, "")
	assert.NoError(t, err)
	assert.Equal(t, "修改后的内容", post.Text)
	mockPosts.AssertExpectations(t)
}

// TestEditPostKeepsImage 测试编辑时不传新图片则保留原图
func TestEditPostKeepsImage(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockGroups := new(MockGroupRepository)
	service := NewPostService(mockPosts, mockGroups, nil)

	stored := &model.Post{ID: 5, AuthorID: 1, Text: "原始内容", ImageURL: "old.png"}
	mockPosts.On("FindByID", 5).Return(stored, nil)
	mockPosts.On("Update", mock.AnythingOfType("*model.Post")).Return(nil)

	post, err := service.EditPost(1, 5, "新内容", nil, "")
	assert.NoError(t, err)
	assert.Equal(t, "old.png", post.ImageURL)

	post, err = service.EditPost(1, 5, "新内容", nil, "new.png")
	assert.NoError(t, err)
	assert.Equal(t, "new.png", post.ImageURL)
}

// TestDeletePost 测试删除帖子
func TestDeletePost(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockGroups := new(MockGroupRepository)
	service := NewPostService(mockPosts, mockGroups, nil)

	stored := &model.Post{ID: 5, AuthorID: 1}
	mockPosts.On("FindByID", 5).Return(stored, nil)

	err := service.DeletePost(2, 5)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrForbidden, errors.CodeOf(err))
	mockPosts.AssertNotCalled(t, "Delete", mock.Anything)

	mockPosts.On("Delete", 5).Return(nil)
	assert.NoError(t, service.DeletePost(1, 5))
	mockPosts.AssertExpectations(t)
}

// TestAddComment 测试评论
func TestAddComment(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockGroups := new(MockGroupRepository)
	service := NewPostService(mockPosts, mockGroups, nil)

	// 帖子不存在
	mockPosts.On("FindByID", 404).Return(nil, nil)
	_, err := service.AddComment(1, 404, "评论内容")
	assert.Error(t, err)
	assert.Equal(t, errors.ErrPostNotFound, errors.CodeOf(err))

	// 正常评论
	mockPosts.On("FindByID", 5).Return(&model.Post{ID: 5, AuthorID: 2}, nil)
	mockPosts.On("CreateComment", mock.AnythingOfType("*model.Comment")).Return(nil)
	comment, err := service.AddComment(1, 5, "说得好")
	assert.NoError(t, err)
	assert.Equal(t, 5, comment.PostID)
	assert.Equal(t, 1, comment.AuthorID)

	// 空评论被拒绝
	_, err = service.AddComment(1, 5, "")
	assert.Error(t, err)
	assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))
}
