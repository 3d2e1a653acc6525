package service

import (
	"context"
	"microblog-backend/internal/errors"
	"microblog-backend/internal/model"
	"microblog-backend/internal/pagination"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newFeedFixture(t *testing.T) (*FeedService, *MockPostRepository, *MockGroupRepository, *MockUserRepository, *MockFollowRepository) {
	t.Helper()
	mockPosts := new(MockPostRepository)
	mockGroups := new(MockGroupRepository)
	mockUsers := new(MockUserRepository)
	mockFollows := new(MockFollowRepository)

	paginator, err := pagination.New(10)
	assert.NoError(t, err)

	service := NewFeedService(mockPosts, mockGroups, mockUsers, mockFollows, paginator, nil)
	return service, mockPosts, mockGroups, mockUsers, mockFollows
}

// TestGlobalFeed 测试全站信息流分页
func TestGlobalFeed(t *testing.T) {
	service, mockPosts, _, _, _ := newFeedFixture(t)

	posts := []*model.Post{{ID: 13}, {ID: 12}}
	mockPosts.On("CountAll").Return(13, nil)
	mockPosts.On("ListAll", 10, 0).Return(posts, nil)

	page, err := service.Global(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 13, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

// TestGlobalFeedClampsPage 测试越界页码收敛到最后一页
func TestGlobalFeedClampsPage(t *testing.T) {
	service, mockPosts, _, _, _ := newFeedFixture(t)

	mockPosts.On("CountAll").Return(13, nil)
	mockPosts.On("ListAll", 10, 10).Return([]*model.Post{{ID: 3}}, nil)

	page, err := service.Global(context.Background(), 99)
	assert.NoError(t, err)
	assert.Equal(t, 2, page.Number)
	assert.False(t, page.HasNext)
	mockPosts.AssertCalled(t, "ListAll", 10, 10)
}

// TestGroupFeed 测试社区信息流
func TestGroupFeed(t *testing.T) {
	service, mockPosts, mockGroups, _, _ := newFeedFixture(t)

	mockGroups.On("FindBySlug", "golang").Return(&model.Group{ID: 3, Slug: "golang"}, nil)
	mockPosts.On("CountByGroup", 3).Return(1, nil)
	mockPosts.On("ListByGroup", 3, 10, 0).Return([]*model.Post{{ID: 1}}, nil)

	group, page, err := service.Group("golang", 1)
	assert.NoError(t, err)
	assert.Equal(t, "golang", group.Slug)
	assert.Len(t, page.Items, 1)

	// 未知社区
	mockGroups.On("FindBySlug", "nope").Return(nil, nil)
	_, _, err = service.Group("nope", 1)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrGroupNotFound, errors.CodeOf(err))
}

// TestProfileFeed 测试作者主页信息流与关注状态
func TestProfileFeed(t *testing.T) {
	service, mockPosts, _, mockUsers, mockFollows := newFeedFixture(t)

	author := &model.User{ID: 2, Username: "author"}
	mockUsers.On("FindByUsername", "author").Return(author, nil)
	mockFollows.On("Exists", 1, 2).Return(true, nil)
	mockPosts.On("CountByAuthor", 2).Return(0, nil)
	mockPosts.On("ListByAuthor", 2, 10, 0).Return([]*model.Post{}, nil)

	got, page, following, err := service.Profile("author", 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, author.ID, got.ID)
	assert.True(t, following)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)

	// 匿名访问者的关注状态恒为 false，不触达关注仓库
	_, _, following, err = service.Profile("author", 0, 1)
	assert.NoError(t, err)
	assert.False(t, following)
}

// TestSubscriptionFeed 测试订阅信息流
func TestSubscriptionFeed(t *testing.T) {
	service, mockPosts, _, _, _ := newFeedFixture(t)

	// 匿名访问是认证错误而不是空结果
	_, err := service.Subscription(0, 1)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrUnauthorized, errors.CodeOf(err))

	posts := []*model.Post{{ID: 2, AuthorID: 7}, {ID: 1, AuthorID: 8}}
	mockPosts.On("CountByFollowed", 1).Return(2, nil)
	mockPosts.On("ListByFollowed", 1, 10, 0).Return(posts, nil)

	page, err := service.Subscription(1, 1)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 2)
	for _, post := range page.Items {
		assert.True(t, post.IsFollowing)
	}
}
