package service

import (
	"microblog-backend/internal/errors"
	"microblog-backend/internal/model"
	"microblog-backend/internal/repository/interfaces"
	"microblog-backend/internal/util"

	"go.uber.org/zap"
)

// FollowServiceInterface 关注关系服务接口
type FollowServiceInterface interface {
	Follow(followerID int, authorUsername string) error
	Unfollow(followerID int, authorUsername string) error
	IsFollowing(followerID, authorID int) (bool, error)
}

// FollowService 处理关注关系。
// 关注自己被直接拒绝，重复关注是幂等操作
type FollowService struct {
	followRepo   interfaces.FollowRepository
	userRepo     interfaces.UserRepository
	emailService *EmailService
}

func NewFollowService(followRepo interfaces.FollowRepository, userRepo interfaces.UserRepository, emailService *EmailService) *FollowService {
	return &FollowService{
		followRepo:   followRepo,
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// Follow 关注指定作者。已关注时不报错也不产生新记录
func (s *FollowService) Follow(followerID int, authorUsername string) error {
	if followerID <= 0 {
		return errors.New(errors.ErrUnauthorized, "需要登录才能关注作者")
	}

	author, err := s.userRepo.FindByUsername(authorUsername)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if author == nil {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	if author.ID == followerID {
		return errors.New(errors.ErrInvalidOperation, "不能关注自己")
	}

	created, err := s.followRepo.Create(&model.Follow{
		FollowerID: followerID,
		AuthorID:   author.ID,
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "创建关注关系失败", err)
	}
	if !created {
		// 重复关注，幂等返回
		return nil
	}

	util.Logger.Info("关注关系建立",
		zap.Int("follower_id", followerID),
		zap.Int("author_id", author.ID))

	if s.emailService != nil {
		if follower, err := s.userRepo.FindByID(followerID); err == nil && follower != nil {
			s.emailService.SendNewFollowerEmail(author.Email, author.Username, follower.Username)
		}
	}
	return nil
}

// Unfollow 取消关注。未关注时返回资源不存在错误
func (s *FollowService) Unfollow(followerID int, authorUsername string) error {
	if followerID <= 0 {
		return errors.New(errors.ErrUnauthorized, "需要登录才能取消关注")
	}

	author, err := s.userRepo.FindByUsername(authorUsername)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if author == nil {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	affected, err := s.followRepo.Delete(followerID, author.ID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除关注关系失败", err)
	}
	if affected == 0 {
		return errors.New(errors.ErrResourceNotFound, "尚未关注该作者")
	}

	util.Logger.Info("关注关系解除",
		zap.Int("follower_id", followerID),
		zap.Int("author_id", author.ID))
	return nil
}

// IsFollowing 查询关注状态
func (s *FollowService) IsFollowing(followerID, authorID int) (bool, error) {
	if followerID <= 0 {
		return false, nil
	}
	exists, err := s.followRepo.Exists(followerID, authorID)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, "查询关注状态失败", err)
	}
	return exists, nil
}
