package interfaces

import "microblog-backend/internal/model"

// PostRepository 定义了帖子与评论相关的数据库操作接口。
// 所有列表查询都按创建时间倒序、ID 倒序返回（最新在前，稳定排序）
type PostRepository interface {
	Create(post *model.Post) error
	FindByID(id int) (*model.Post, error)
	Update(post *model.Post) error
	Delete(id int) error

	CountAll() (int, error)
	ListAll(limit, offset int) ([]*model.Post, error)
	CountByGroup(groupID int) (int, error)
	ListByGroup(groupID, limit, offset int) ([]*model.Post, error)
	CountByAuthor(authorID int) (int, error)
	ListByAuthor(authorID, limit, offset int) ([]*model.Post, error)
	// 订阅流：帖子作者在指定用户的关注集合中
	CountByFollowed(userID int) (int, error)
	ListByFollowed(userID, limit, offset int) ([]*model.Post, error)

	CreateComment(comment *model.Comment) error
	ListCommentsByPost(postID int) ([]*model.Comment, error)
}
