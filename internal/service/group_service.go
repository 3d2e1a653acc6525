package service

import (
	"microblog-backend/internal/errors"
	"microblog-backend/internal/model"
	"microblog-backend/internal/repository/interfaces"
	"microblog-backend/internal/util"
	"strings"
)

// GroupServiceInterface 社区服务接口
type GroupServiceInterface interface {
	CreateGroup(title, slug, description string) (*model.Group, error)
	GetGroupBySlug(slug string) (*model.Group, error)
	ListGroups() ([]*model.Group, error)
}

// GroupService 处理社区的管理逻辑。
// 社区由运营方创建，普通用户只读
type GroupService struct {
	groupRepo interfaces.GroupRepository
}

func NewGroupService(groupRepo interfaces.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// CreateGroup 创建社区，slug 在全站唯一
func (s *GroupService) CreateGroup(title, slug, description string) (*model.Group, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New(errors.ErrValidation, "社区名称不能为空")
	}
	if !util.IsValidSlug(slug) {
		return nil, errors.New(errors.ErrValidation, "社区标识只能由小写字母、数字和连字符组成")
	}

	group := &model.Group{
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	if err := s.groupRepo.Create(group); err != nil {
		if err == interfaces.ErrDuplicate {
			return nil, errors.New(errors.ErrResourceExists, "社区标识已被使用")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "创建社区失败", err)
	}
	return group, nil
}

// GetGroupBySlug 按标识获取社区
func (s *GroupService) GetGroupBySlug(slug string) (*model.Group, error) {
	group, err := s.groupRepo.FindBySlug(slug)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询社区失败", err)
	}
	if group == nil {
		return nil, errors.New(errors.ErrGroupNotFound, "社区不存在")
	}
	return group, nil
}

// ListGroups 获取全部社区，按名称排序
func (s *GroupService) ListGroups() ([]*model.Group, error) {
	groups, err := s.groupRepo.List()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询社区列表失败", err)
	}
	return groups, nil
}
