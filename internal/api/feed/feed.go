package feed

import (
	"microblog-backend/internal/errors"
	"microblog-backend/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// FeedHandler 处理信息流相关的HTTP请求
type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService}
}

// pageParam 读取 page 查询参数，缺失或非法时回到第一页
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Index 全站信息流，所有帖子按时间倒序分页
func (h *FeedHandler) Index(c *gin.Context) {
	page, err := h.feedService.Global(c.Request.Context(), pageParam(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, page, "")
}

// GroupPosts 社区信息流
func (h *FeedHandler) GroupPosts(c *gin.Context) {
	group, page, err := h.feedService.Group(c.Param("slug"), pageParam(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{
		"group": group,
		"posts": page,
	}, "")
}

// FollowIndex 订阅信息流：当前用户关注的作者的帖子
func (h *FeedHandler) FollowIndex(c *gin.Context) {
	userID := c.GetInt("user_id")
	page, err := h.feedService.Subscription(userID, pageParam(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, page, "")
}
