package interfaces

import "microblog-backend/internal/model"

// UserRepository 定义了用户相关的数据库操作接口
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id int) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	// Delete 删除用户账号，其帖子、评论与关注关系由外键级联删除
	Delete(id int) error
}
