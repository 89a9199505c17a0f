package controller

import (
	"wellness_backend/internal/service"
	"wellness_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type JournalController struct {
	JournalService *service.JournalService
}

func NewJournalController(journalService *service.JournalService) *JournalController {
	return &JournalController{JournalService: journalService}
}

// @Summary 写日记
// @Description 每天一篇，奖励 10 金币并更新连续天数；当天已写返回 409
// @Tags 日记
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.JournalInput true "日记内容"
// @Success 201 {object} util.Response{data=service.JournalResult}
// @Failure 409 {object} util.Response
// @Router /api/journal [post]
func (c *JournalController) Create(ctx *gin.Context) {
	var req service.JournalInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.JournalService.Create(ctx.Request.Context(), claims.UserID(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// @Summary 日记列表
// @Tags 日记
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param pageSize query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/journal [get]
func (c *JournalController) List(ctx *gin.Context) {
	page, pageSize := util.Pagination(ctx)
	claims := util.GetUserFromContext(ctx)

	entries, total, err := c.JournalService.List(ctx.Request.Context(), claims.UserID(), page, pageSize)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: entries, Total: total, Page: page, Limit: pageSize})
}

// @Summary 日记详情
// @Tags 日记
// @Produce json
// @Security BearerAuth
// @Param id path string true "日记ID"
// @Success 200 {object} util.Response{data=model.JournalEntry}
// @Failure 404 {object} util.Response
// @Router /api/journal/{id} [get]
func (c *JournalController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	entry, err := c.JournalService.Get(ctx.Request.Context(), claims.UserID(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, entry)
}

// @Summary 修改日记
// @Description 仅限创建后 24 小时内
// @Tags 日记
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "日记ID"
// @Param request body service.JournalInput true "日记内容"
// @Success 200 {object} util.Response{data=model.JournalEntry}
// @Failure 403 {object} util.Response
// @Router /api/journal/{id} [put]
func (c *JournalController) Update(ctx *gin.Context) {
	var req service.JournalInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	entry, err := c.JournalService.Update(ctx.Request.Context(), claims.UserID(), ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, entry)
}

// @Summary 删除日记
// @Description 仅限创建后 24 小时内，已发放的奖励不回收
// @Tags 日记
// @Produce json
// @Security BearerAuth
// @Param id path string true "日记ID"
// @Success 200 {object} util.Response
// @Router /api/journal/{id} [delete]
func (c *JournalController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.JournalService.Delete(ctx.Request.Context(), claims.UserID(), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary AI 日记回应
// @Tags 日记
// @Produce json
// @Security BearerAuth
// @Param id path string true "日记ID"
// @Success 200 {object} util.Response{data=model.JournalEntry}
// @Failure 502 {object} util.Response
// @Router /api/journal/{id}/reflect [post]
func (c *JournalController) Reflect(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	entry, err := c.JournalService.Reflect(ctx.Request.Context(), claims.UserID(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, entry)
}
