package mysql

import (
	"database/sql"
	"fmt"
	"microblog-backend/internal/model"
	"microblog-backend/internal/util"

	"go.uber.org/zap"
)

type followRepository struct {
	db *sql.DB
}

func NewFollowRepository(db *sql.DB) *followRepository {
	return &followRepository{db: db}
}

// Create 在同一事务内完成自关注校验、查重与插入，
// 并发写入由 follows 表的唯一键兜底，重复插入按幂等处理
func (r *followRepository) Create(follow *model.Follow) (bool, error) {
	if follow.FollowerID == follow.AuthorID {
		return false, fmt.Errorf("不允许关注自己")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`
        SELECT EXISTS(
            SELECT 1 FROM follows
            WHERE follower_id = ? AND author_id = ?
        )`, follow.FollowerID, follow.AuthorID).Scan(&exists)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	query := `INSERT INTO follows (follower_id, author_id, created_at) VALUES (?, ?, NOW())`
	result, err := tx.Exec(query, follow.FollowerID, follow.AuthorID)
	if err != nil {
		// 并发下另一事务先插入了同一条边，按已存在处理
		if isDuplicateErr(err) {
			return false, nil
		}
		util.Logger.Error("创建关注失败", zap.Error(err))
		return false, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return false, err
	}
	follow.ID = int(id)

	if err := tx.Commit(); err != nil {
		util.Logger.Error("提交事务失败", zap.Error(err))
		return false, err
	}

	util.Logger.Info("关注创建成功",
		zap.Int("follower_id", follow.FollowerID),
		zap.Int("author_id", follow.AuthorID))
	return true, nil
}

func (r *followRepository) Delete(followerID, authorID int) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM follows WHERE follower_id = ? AND author_id = ?`,
		followerID, authorID)
	if err != nil {
		util.Logger.Error("删除关注失败", zap.Error(err))
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	util.Logger.Info("关注删除完成",
		zap.Int("follower_id", followerID),
		zap.Int("author_id", authorID),
		zap.Int64("affected", affected))
	return affected, nil
}

func (r *followRepository) Exists(followerID, authorID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
        SELECT EXISTS(
            SELECT 1 FROM follows
            WHERE follower_id = ? AND author_id = ?
        )`, followerID, authorID).Scan(&exists)
	return exists, err
}
