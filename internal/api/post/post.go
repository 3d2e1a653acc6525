package post

import (
	"fmt"
	"microblog-backend/internal/errors"
	"microblog-backend/internal/service"
	"microblog-backend/internal/storage"
	"microblog-backend/internal/util"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostHandler 处理帖子与评论的HTTP请求
type PostHandler struct {
	postService service.PostServiceInterface
	userService service.UserServiceInterface
	storage     storage.Storage
}

func NewPostHandler(postService service.PostServiceInterface, userService service.UserServiceInterface, storage storage.Storage) *PostHandler {
	return &PostHandler{
		postService: postService,
		userService: userService,
		storage:     storage,
	}
}

// Detail 帖子详情：帖子本身加全部评论，最新评论在前
func (h *PostHandler) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的帖子ID"))
		return
	}

	post, err := h.postService.GetPost(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	comments, err := h.postService.ListComments(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"post":     post,
		"comments": comments,
	}, "")
}

// Create 发布帖子，成功后跳转到作者主页
func (h *PostHandler) Create(c *gin.Context) {
	userID := c.GetInt("user_id")

	text := c.PostForm("text")
	groupID, err := groupParam(c)
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的社区ID"))
		return
	}

	imageURL, err := h.uploadImage(c)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "图片上传失败", err))
		return
	}

	if _, err := h.postService.CreatePost(userID, text, groupID, imageURL); err != nil {
		errors.HandleError(c, err)
		return
	}

	target := "/"
	if user, err := h.userService.GetUserByID(userID); err == nil {
		target = "/profile/" + user.Username
	}
	c.Redirect(http.StatusFound, target)
}

// Edit 编辑帖子。非作者的提交不产生任何写入，
// 静默跳转回帖子详情页
func (h *PostHandler) Edit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的帖子ID"))
		return
	}

	text := c.PostForm("text")
	groupID, err := groupParam(c)
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的社区ID"))
		return
	}

	imageURL, err := h.uploadImage(c)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "图片上传失败", err))
		return
	}

	detail := "/posts/" + strconv.Itoa(id)
	if _, err := h.postService.EditPost(c.GetInt("user_id"), id, text, groupID, imageURL); err != nil {
		if errors.CodeOf(err) == errors.ErrForbidden {
			c.Redirect(http.StatusFound, detail)
			return
		}
		errors.HandleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, detail)
}

// AddComment 为帖子添加评论，成功后跳回帖子详情页
func (h *PostHandler) AddComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的帖子ID"))
		return
	}

	if _, err := h.postService.AddComment(c.GetInt("user_id"), id, c.PostForm("text")); err != nil {
		errors.HandleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+strconv.Itoa(id))
}

// Delete 删除帖子，仅作者可以操作
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的帖子ID"))
		return
	}

	if err := h.postService.DeletePost(c.GetInt("user_id"), id); err != nil {
		errors.HandleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// groupParam 读取可选的 group_id 表单字段
func groupParam(c *gin.Context) (*int, error) {
	raw := c.PostForm("group_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// uploadImage 处理可选的图片上传，没有图片时返回空串
func (h *PostHandler) uploadImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// 图片是可选字段
		return "", nil
	}

	filename := util.GenerateUniqueFilename(file.Filename)
	path := fmt.Sprintf("posts/%s", filename)

	imageURL, err := h.storage.UploadFile(file, path)
	if err != nil {
		util.Logger.Error("图片上传失败", zap.Error(err), zap.String("filename", filename))
		return "", err
	}
	return imageURL, nil
}
