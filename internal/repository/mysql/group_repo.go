package mysql

import (
	"database/sql"
	"microblog-backend/internal/model"
	"microblog-backend/internal/repository/interfaces"
	"microblog-backend/internal/util"

	"go.uber.org/zap"
)

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) *groupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(group *model.Group) error {
	query := `INSERT INTO communities (title, slug, description) VALUES (?, ?, ?)`
	result, err := r.db.Exec(query, group.Title, group.Slug, group.Description)
	if err != nil {
		if isDuplicateErr(err) {
			return interfaces.ErrDuplicate
		}
		util.Logger.Error("创建社区失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	group.ID = int(id)

	util.Logger.Info("社区创建成功", zap.Int("group_id", group.ID), zap.String("slug", group.Slug))
	return nil
}

func (r *groupRepository) FindByID(id int) (*model.Group, error) {
	query := `SELECT id, title, slug, description FROM communities WHERE id = ?`

	var group model.Group
	err := r.db.QueryRow(query, id).Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) FindBySlug(slug string) (*model.Group, error) {
	query := `SELECT id, title, slug, description FROM communities WHERE slug = ?`

	var group model.Group
	err := r.db.QueryRow(query, slug).Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) List() ([]*model.Group, error) {
	query := `SELECT id, title, slug, description FROM communities ORDER BY title ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		var group model.Group
		if err := rows.Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
			return nil, err
		}
		groups = append(groups, &group)
	}
	return groups, rows.Err()
}

// Delete 删除社区。社区下帖子的 group_id 由外键 SET NULL，帖子保留
func (r *groupRepository) Delete(id int) error {
	util.Logger.Info("开始删除社区", zap.Int("group_id", id))

	_, err := r.db.Exec(`DELETE FROM communities WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除社区失败", zap.Error(err), zap.Int("group_id", id))
		return err
	}
	return nil
}
