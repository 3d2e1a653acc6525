package mysql

import (
	"database/sql"
	"microblog-backend/config"
	"microblog-backend/internal/model"
	"microblog-backend/internal/util"
	"strings"

	"go.uber.org/zap"
)

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *postRepository {
	return &postRepository{db: db}
}

// 所有帖子列表共用一条排序规则：创建时间倒序，ID 倒序兜底
const postSelect = `
        SELECT p.id, p.author_id, p.group_id, p.text, p.image_url, p.created_at, p.updated_at,
               u.username, u.email, u.avatar_url, u.bio,
               g.title, g.slug
        FROM posts p
        JOIN users u ON p.author_id = u.id
        LEFT JOIN communities g ON p.group_id = g.id`

const postOrder = ` ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`

func (r *postRepository) Create(post *model.Post) error {
	query := `INSERT INTO posts (author_id, group_id, text, image_url, created_at, updated_at)
              VALUES (?, ?, ?, ?, NOW(), NOW())`
	result, err := r.db.Exec(query, post.AuthorID, post.GroupID, post.Text, post.ImageURL)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新帖子ID失败", zap.Error(err))
		return err
	}
	post.ID = int(id)

	util.Logger.Info("帖子创建成功", zap.Int("post_id", post.ID))
	return nil
}

func (r *postRepository) FindByID(id int) (*model.Post, error) {
	row := r.db.QueryRow(postSelect+` WHERE p.id = ?`, id)

	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

// Update 只允许修改文本、社区与图片，创建时间与作者不可变
func (r *postRepository) Update(post *model.Post) error {
	query := `UPDATE posts SET text = ?, group_id = ?, image_url = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.Exec(query, post.Text, post.GroupID, post.ImageURL, post.ID)
	if err != nil {
		util.Logger.Error("更新帖子失败", zap.Error(err), zap.Int("post_id", post.ID))
		return err
	}
	return nil
}

func (r *postRepository) Delete(id int) error {
	util.Logger.Info("开始删除帖子", zap.Int("post_id", id))

	_, err := r.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除帖子失败", zap.Error(err), zap.Int("post_id", id))
		return err
	}
	return nil
}

func (r *postRepository) CountAll() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&total)
	return total, err
}

func (r *postRepository) ListAll(limit, offset int) ([]*model.Post, error) {
	rows, err := r.db.Query(postSelect+postOrder, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *postRepository) CountByGroup(groupID int) (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE group_id = ?`, groupID).Scan(&total)
	return total, err
}

func (r *postRepository) ListByGroup(groupID, limit, offset int) ([]*model.Post, error) {
	rows, err := r.db.Query(postSelect+` WHERE p.group_id = ?`+postOrder, groupID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *postRepository) CountByAuthor(authorID int) (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE author_id = ?`, authorID).Scan(&total)
	return total, err
}

func (r *postRepository) ListByAuthor(authorID, limit, offset int) ([]*model.Post, error) {
	rows, err := r.db.Query(postSelect+` WHERE p.author_id = ?`+postOrder, authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *postRepository) CountByFollowed(userID int) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM posts p
        JOIN follows f ON p.author_id = f.author_id
        WHERE f.follower_id = ?`

	var total int
	err := r.db.QueryRow(query, userID).Scan(&total)
	return total, err
}

func (r *postRepository) ListByFollowed(userID, limit, offset int) ([]*model.Post, error) {
	rows, err := r.db.Query(
		postSelect+` JOIN follows f ON p.author_id = f.author_id WHERE f.follower_id = ?`+postOrder,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *postRepository) CreateComment(comment *model.Comment) error {
	util.Logger.Info("开始创建评论",
		zap.Int("author_id", comment.AuthorID),
		zap.Int("post_id", comment.PostID))

	query := `INSERT INTO comments (post_id, author_id, text, created_at) VALUES (?, ?, ?, NOW())`
	result, err := r.db.Exec(query, comment.PostID, comment.AuthorID, comment.Text)
	if err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新评论ID失败", zap.Error(err))
		return err
	}
	comment.ID = int(id)

	util.Logger.Info("评论创建成功", zap.Int("comment_id", comment.ID))
	return nil
}

func (r *postRepository) ListCommentsByPost(postID int) ([]*model.Comment, error) {
	query := `
        SELECT c.id, c.post_id, c.author_id, c.text, c.created_at,
               u.username, u.email, u.avatar_url, u.bio
        FROM comments c
        JOIN users u ON c.author_id = u.id
        WHERE c.post_id = ?
        ORDER BY c.created_at DESC, c.id DESC`

	rows, err := r.db.Query(query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		var user model.User
		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Text, &comment.CreatedAt,
			&user.Username, &user.Email, &user.AvatarURL, &user.Bio,
		)
		if err != nil {
			return nil, err
		}
		user.ID = comment.AuthorID
		comment.Author = &user
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*model.Post, error) {
	var post model.Post
	var user model.User
	var groupID sql.NullInt64
	var groupTitle, groupSlug sql.NullString

	err := row.Scan(
		&post.ID, &post.AuthorID, &groupID, &post.Text, &post.ImageURL,
		&post.CreatedAt, &post.UpdatedAt,
		&user.Username, &user.Email, &user.AvatarURL, &user.Bio,
		&groupTitle, &groupSlug,
	)
	if err != nil {
		return nil, err
	}

	user.ID = post.AuthorID
	post.Author = &user
	if groupID.Valid {
		gid := int(groupID.Int64)
		post.GroupID = &gid
		post.Group = &model.Group{ID: gid, Title: groupTitle.String, Slug: groupSlug.String}
	}
	post.ImageURL = fullImageURL(post.ImageURL)
	return &post, nil
}

func scanPosts(rows *sql.Rows) ([]*model.Post, error) {
	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// 本地存储保存相对路径，读取时补全为可访问的URL；对象存储已经是完整URL
func fullImageURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http") {
		return path
	}
	return config.AppConfig.BackendURL + "/uploads/" + path
}
