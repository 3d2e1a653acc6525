package interfaces

import "microblog-backend/internal/model"

// GroupRepository 定义了社区相关的数据库操作接口
type GroupRepository interface {
	Create(group *model.Group) error
	FindByID(id int) (*model.Group, error)
	FindBySlug(slug string) (*model.Group, error)
	List() ([]*model.Group, error)
	// Delete 删除社区，社区下帖子的 group_id 由外键置空，帖子本身保留
	Delete(id int) error
}
