package controller

import (
	"wellness_backend/internal/service"
	"wellness_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommunityController struct {
	CommunityService *service.CommunityService
}

func NewCommunityController(communityService *service.CommunityService) *CommunityController {
	return &CommunityController{CommunityService: communityService}
}

// @Summary 小组列表
// @Tags 社区
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param pageSize query int false "每页数量"
// @Param search query string false "搜索关键字"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/groups [get]
func (c *CommunityController) ListGroups(ctx *gin.Context) {
	page, pageSize := util.Pagination(ctx)

	groups, total, err := c.CommunityService.ListGroups(ctx.Request.Context(), page, pageSize, ctx.Query("search"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: groups, Total: total, Page: page, Limit: pageSize})
}

// @Summary 创建小组
// @Tags 社区
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.GroupRequest true "小组信息"
// @Success 201 {object} util.Response{data=model.Group}
// @Router /api/groups [post]
func (c *CommunityController) CreateGroup(ctx *gin.Context) {
	var req service.GroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	group, err := c.CommunityService.CreateGroup(ctx.Request.Context(), claims.UserID(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, group)
}

// @Summary 加入小组
// @Tags 社区
// @Produce json
// @Security BearerAuth
// @Param id path string true "小组ID"
// @Success 200 {object} util.Response
// @Router /api/groups/{id}/join [post]
func (c *CommunityController) Join(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.CommunityService.Join(ctx.Request.Context(), ctx.Param("id"), claims.UserID()); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 退出小组
// @Tags 社区
// @Produce json
// @Security BearerAuth
// @Param id path string true "小组ID"
// @Success 200 {object} util.Response
// @Router /api/groups/{id}/leave [delete]
func (c *CommunityController) Leave(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.CommunityService.Leave(ctx.Request.Context(), ctx.Param("id"), claims.UserID()); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 小组帖子列表
// @Tags 社区
// @Produce json
// @Security BearerAuth
// @Param id path string true "小组ID"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/groups/{id}/posts [get]
func (c *CommunityController) ListPosts(ctx *gin.Context) {
	page, pageSize := util.Pagination(ctx)

	posts, total, err := c.CommunityService.ListPosts(ctx.Request.Context(), ctx.Param("id"), page, pageSize)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: posts, Total: total, Page: page, Limit: pageSize})
}

// @Summary 发帖
// @Description 需要先加入小组
// @Tags 社区
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "小组ID"
// @Param request body service.PostRequest true "帖子内容"
// @Success 201 {object} util.Response{data=model.GroupPost}
// @Failure 403 {object} util.Response
// @Router /api/groups/{id}/posts [post]
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	var req service.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	post, err := c.CommunityService.CreatePost(ctx.Request.Context(), ctx.Param("id"), claims.UserID(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, post)
}

// @Summary 帖子详情
// @Tags 社区
// @Produce json
// @Security BearerAuth
// @Param postId path string true "帖子ID"
// @Success 200 {object} util.Response{data=model.GroupPost}
// @Router /api/groups/posts/{postId} [get]
func (c *CommunityController) GetPost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	post, err := c.CommunityService.GetPost(ctx.Request.Context(), ctx.Param("postId"), claims.UserID())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, post)
}

// @Summary 删除帖子
// @Description 仅作者本人
// @Tags 社区
// @Produce json
// @Security BearerAuth
// @Param postId path string true "帖子ID"
// @Success 200 {object} util.Response
// @Router /api/groups/posts/{postId} [delete]
func (c *CommunityController) DeletePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.CommunityService.DeletePost(ctx.Request.Context(), ctx.Param("postId"), claims.UserID()); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
