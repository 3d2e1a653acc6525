package model

import "time"

// Group 社区/栏目，slug 全局唯一且创建后不可变
type Group struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Post 帖子。GroupID 可为空；所属社区被删除时置空而不级联删除帖子
type Post struct {
	ID          int       `json:"id"`
	AuthorID    int       `json:"author_id"`
	GroupID     *int      `json:"group_id,omitempty"`
	Text        string    `json:"text"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Author      *User     `json:"author,omitempty"`
	Group       *Group    `json:"group,omitempty"`
	IsFollowing bool      `json:"is_following"`
}

// Comment 评论，创建后不可修改
type Comment struct {
	ID        int       `json:"id"`
	PostID    int       `json:"post_id"`
	AuthorID  int       `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Author    *User     `json:"author,omitempty"`
}

// Follow 关注关系：follower 订阅 author 的帖子
// 约束：(follower_id, author_id) 唯一，且 follower_id != author_id
type Follow struct {
	ID         int       `json:"id"`
	FollowerID int       `json:"follower_id"`
	AuthorID   int       `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
}
