package service

import (
	"context"
	"encoding/json"
	"microblog-backend/internal/cache"
	"microblog-backend/internal/errors"
	"microblog-backend/internal/model"
	"microblog-backend/internal/pagination"
	"microblog-backend/internal/repository/interfaces"
	"microblog-backend/internal/util"

	"go.uber.org/zap"
)

// FeedGlobal 是公共信息流的缓存键类型
const FeedGlobal = "global"

// FeedService 组装四种信息流：全站、社区、作者主页、订阅。
// 四者共用同一个分页器和同一条排序规则（时间倒序、ID 倒序），
// 保证翻页行为在所有页面上一致
type FeedService struct {
	postRepo   interfaces.PostRepository
	groupRepo  interfaces.GroupRepository
	userRepo   interfaces.UserRepository
	followRepo interfaces.FollowRepository
	paginator  *pagination.Paginator
	feedCache  *cache.FeedCache
}

func NewFeedService(
	postRepo interfaces.PostRepository,
	groupRepo interfaces.GroupRepository,
	userRepo interfaces.UserRepository,
	followRepo interfaces.FollowRepository,
	paginator *pagination.Paginator,
	feedCache *cache.FeedCache,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		paginator:  paginator,
		feedCache:  feedCache,
	}
}

// Global 返回全站信息流的一页。整页缓存按页码读写，写入帖子时整体失效
func (s *FeedService) Global(ctx context.Context, page int) (*pagination.Page[*model.Post], error) {
	total, err := s.postRepo.CountAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计帖子失败", err)
	}
	number, offset := s.paginator.Window(total, page)

	if s.feedCache != nil {
		if data, ok := s.feedCache.Get(ctx, FeedGlobal, number); ok {
			var cached pagination.Page[*model.Post]
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
			util.Logger.Warn("信息流缓存内容损坏，回源数据库", zap.Int("page", number))
		}
	}

	posts, err := s.postRepo.ListAll(s.paginator.PageSize(), offset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	result := pagination.Wrap(s.paginator, posts, total, number)

	if s.feedCache != nil {
		if data, err := json.Marshal(result); err == nil {
			s.feedCache.Set(ctx, FeedGlobal, number, data)
		}
	}
	return result, nil
}

// Group 返回指定社区的信息流，slug 未知时返回 404 错误
func (s *FeedService) Group(slug string, page int) (*model.Group, *pagination.Page[*model.Post], error) {
	group, err := s.groupRepo.FindBySlug(slug)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrDatabase, "查询社区失败", err)
	}
	if group == nil {
		return nil, nil, errors.New(errors.ErrGroupNotFound, "社区不存在")
	}

	total, err := s.postRepo.CountByGroup(group.ID)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrDatabase, "统计帖子失败", err)
	}
	number, offset := s.paginator.Window(total, page)

	posts, err := s.postRepo.ListByGroup(group.ID, s.paginator.PageSize(), offset)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	return group, pagination.Wrap(s.paginator, posts, total, number), nil
}

// Profile 返回作者主页的信息流，以及当前访问者是否关注了该作者。
// 匿名访问者（viewerID 为 0）的关注状态恒为 false
func (s *FeedService) Profile(username string, viewerID, page int) (*model.User, *pagination.Page[*model.Post], bool, error) {
	author, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, nil, false, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if author == nil {
		return nil, nil, false, errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	following := false
	if viewerID > 0 && viewerID != author.ID {
		following, err = s.followRepo.Exists(viewerID, author.ID)
		if err != nil {
			return nil, nil, false, errors.Wrap(errors.ErrDatabase, "查询关注状态失败", err)
		}
	}

	total, err := s.postRepo.CountByAuthor(author.ID)
	if err != nil {
		return nil, nil, false, errors.Wrap(errors.ErrDatabase, "统计帖子失败", err)
	}
	number, offset := s.paginator.Window(total, page)

	posts, err := s.postRepo.ListByAuthor(author.ID, s.paginator.PageSize(), offset)
	if err != nil {
		return nil, nil, false, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	return author, pagination.Wrap(s.paginator, posts, total, number), following, nil
}

// Subscription 返回订阅信息流：当前用户关注的所有作者的帖子。
// 匿名访问是认证错误而不是空结果
func (s *FeedService) Subscription(viewerID, page int) (*pagination.Page[*model.Post], error) {
	if viewerID <= 0 {
		return nil, errors.New(errors.ErrUnauthorized, "需要登录才能查看订阅流")
	}

	total, err := s.postRepo.CountByFollowed(viewerID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计帖子失败", err)
	}
	number, offset := s.paginator.Window(total, page)

	posts, err := s.postRepo.ListByFollowed(viewerID, s.paginator.PageSize(), offset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}

	// 订阅流里的帖子必然来自已关注的作者
	for _, post := range posts {
		post.IsFollowing = true
	}
	return pagination.Wrap(s.paginator, posts, total, number), nil
}
