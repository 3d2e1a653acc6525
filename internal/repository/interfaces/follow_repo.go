package interfaces

import "microblog-backend/internal/model"

// FollowRepository 定义了关注关系的数据库操作接口
type FollowRepository interface {
	// Create 在同一事务内校验唯一性与非自关注后插入。
	// 边已存在时返回 created=false 而不是错误
	Create(follow *model.Follow) (created bool, err error)
	// Delete 返回删除的行数，0 表示边不存在
	Delete(followerID, authorID int) (int64, error)
	Exists(followerID, authorID int) (bool, error)
}
