package service

import (
	"context"
	"microblog-backend/internal/cache"
	"microblog-backend/internal/errors"
	"microblog-backend/internal/model"
	"microblog-backend/internal/repository/interfaces"
	"microblog-backend/internal/util"
	"strings"

	"go.uber.org/zap"
)

// PostServiceInterface 供处理器与测试使用的帖子服务接口
type PostServiceInterface interface {
	CreatePost(authorID int, text string, groupID *int, imageURL string) (*model.Post, error)
	GetPost(id int) (*model.Post, error)
	EditPost(actorID, postID int, text string, groupID *int, imageURL string) (*model.Post, error)
	DeletePost(actorID, postID int) error
	AddComment(actorID, postID int, text string) (*model.Comment, error)
	ListComments(postID int) ([]*model.Comment, error)
}

// PostService 处理帖子与评论的业务逻辑，
// 同时承担作者权限校验：帖子只有作者本人可以修改或删除
type PostService struct {
	postRepo  interfaces.PostRepository
	groupRepo interfaces.GroupRepository
	feedCache *cache.FeedCache
}

func NewPostService(postRepo interfaces.PostRepository, groupRepo interfaces.GroupRepository, feedCache *cache.FeedCache) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		feedCache: feedCache,
	}
}

// CreatePost 创建帖子。文本不能为空；指定社区时社区必须存在
func (s *PostService) CreatePost(authorID int, text string, groupID *int, imageURL string) (*model.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.ErrValidation, "帖子内容不能为空")
	}

	if err := s.checkGroup(groupID); err != nil {
		return nil, err
	}

	post := &model.Post{
		AuthorID: authorID,
		GroupID:  groupID,
		Text:     text,
		ImageURL: imageURL,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建帖子失败", err)
	}

	s.invalidateFeeds()
	return post, nil
}

// GetPost 获取单个帖子
func (s *PostService) GetPost(id int) (*model.Post, error) {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}
	return post, nil
}

// EditPost 编辑帖子。非作者的修改被整体拒绝，不产生任何写入
func (s *PostService) EditPost(actorID, postID int, text string, groupID *int, imageURL string) (*model.Post, error) {
	post, err := s.GetPost(postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != actorID {
		util.Logger.Info("非作者尝试修改帖子",
			zap.Int("post_id", postID),
			zap.Int("actor_id", actorID),
			zap.Int("author_id", post.AuthorID))
		return nil, errors.New(errors.ErrForbidden, "只有作者才能修改帖子")
	}

	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.ErrValidation, "帖子内容不能为空")
	}
	if err := s.checkGroup(groupID); err != nil {
		return nil, err
	}

	post.Text = text
	post.GroupID = groupID
	if imageURL != "" {
		post.ImageURL = imageURL
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新帖子失败", err)
	}

	s.invalidateFeeds()
	return post, nil
}

// DeletePost 删除帖子，仅作者可以操作，评论随外键级联删除
func (s *PostService) DeletePost(actorID, postID int) error {
	post, err := s.GetPost(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return errors.New(errors.ErrForbidden, "只有作者才能删除帖子")
	}

	if err := s.postRepo.Delete(postID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除帖子失败", err)
	}

	s.invalidateFeeds()
	return nil
}

// AddComment 为帖子添加评论。评论创建后不可修改
func (s *PostService) AddComment(actorID, postID int, text string) (*model.Comment, error) {
	post, err := s.GetPost(postID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.ErrValidation, "评论内容不能为空")
	}

	comment := &model.Comment{
		PostID:   post.ID,
		AuthorID: actorID,
		Text:     text,
	}
	if err := s.postRepo.CreateComment(comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建评论失败", err)
	}
	return comment, nil
}

// ListComments 获取帖子的评论列表，最新在前
func (s *PostService) ListComments(postID int) ([]*model.Comment, error) {
	comments, err := s.postRepo.ListCommentsByPost(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询评论失败", err)
	}
	return comments, nil
}

func (s *PostService) checkGroup(groupID *int) error {
	if groupID == nil {
		return nil
	}
	group, err := s.groupRepo.FindByID(*groupID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询社区失败", err)
	}
	if group == nil {
		return errors.New(errors.ErrValidation, "指定的社区不存在")
	}
	return nil
}

// 任何帖子写入都让公共信息流缓存失效
func (s *PostService) invalidateFeeds() {
	if s.feedCache != nil {
		s.feedCache.Invalidate(context.Background(), FeedGlobal)
	}
}
