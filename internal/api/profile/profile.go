package profile

import (
	"microblog-backend/internal/errors"
	"microblog-backend/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ProfileHandler 处理作者主页与关注关系的HTTP请求
type ProfileHandler struct {
	feedService   *service.FeedService
	followService service.FollowServiceInterface
}

func NewProfileHandler(feedService *service.FeedService, followService service.FollowServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		feedService:   feedService,
		followService: followService,
	}
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Show 作者主页：作者信息、帖子总数、分页帖子列表与当前访问者的关注状态
func (h *ProfileHandler) Show(c *gin.Context) {
	viewerID := c.GetInt("user_id")

	author, page, following, err := h.feedService.Profile(c.Param("username"), viewerID, pageParam(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"author":       author,
		"posts":        page,
		"post_count":   page.TotalItems,
		"is_following": following,
	}, "")
}

// Follow 关注作者，成功后跳回作者主页
func (h *ProfileHandler) Follow(c *gin.Context) {
	username := c.Param("username")
	if err := h.followService.Follow(c.GetInt("user_id"), username); err != nil {
		errors.HandleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username)
}

// Unfollow 取消关注，成功后跳回作者主页
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	username := c.Param("username")
	if err := h.followService.Unfollow(c.GetInt("user_id"), username); err != nil {
		errors.HandleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username)
}
