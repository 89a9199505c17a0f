package controller

import (
	"strconv"
	"wellness_backend/internal/service"
	"wellness_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CheckInController struct {
	CheckInService *service.CheckInService
}

func NewCheckInController(checkInService *service.CheckInService) *CheckInController {
	return &CheckInController{CheckInService: checkInService}
}

type SubmitCheckInRequest struct {
	Answers []string `json:"answers" binding:"required"`
}

// @Summary 自评题目
// @Description 返回固定的自评问题目录
// @Tags 自评
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/checkins/questions [get]
func (c *CheckInController) Questions(ctx *gin.Context) {
	util.Success(ctx, c.CheckInService.Questions())
}

// @Summary 提交自评
// @Description 计算分数与状态，保存记录并奖励 5 金币
// @Tags 自评
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitCheckInRequest true "按题目顺序的答案"
// @Success 201 {object} util.Response{data=service.CheckInResult}
// @Failure 400 {object} util.Response
// @Router /api/checkins [post]
func (c *CheckInController) Submit(ctx *gin.Context) {
	var req SubmitCheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.CheckInService.Submit(ctx.Request.Context(), claims.UserID(), req.Answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// @Summary 自评历史
// @Tags 自评
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param pageSize query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/checkins [get]
func (c *CheckInController) History(ctx *gin.Context) {
	page, pageSize := util.Pagination(ctx)
	claims := util.GetUserFromContext(ctx)

	views, total, err := c.CheckInService.History(ctx.Request.Context(), claims.UserID(), page, pageSize)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: views, Total: total, Page: page, Limit: pageSize})
}

// @Summary 分数趋势
// @Description 每天一个点（同一天取最新一次），按日期升序
// @Tags 自评
// @Produce json
// @Security BearerAuth
// @Param days query int false "只看最近 N 天，默认全部"
// @Success 200 {object} util.Response
// @Router /api/checkins/trend [get]
func (c *CheckInController) Trend(ctx *gin.Context) {
	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "0"))
	claims := util.GetUserFromContext(ctx)

	points, err := c.CheckInService.Trend(ctx.Request.Context(), claims.UserID(), days)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, points)
}

// @Summary 热力图
// @Tags 自评
// @Produce json
// @Security BearerAuth
// @Param days query int false "窗口天数，默认 90，最大 366"
// @Success 200 {object} util.Response
// @Router /api/checkins/heatmap [get]
func (c *CheckInController) Heatmap(ctx *gin.Context) {
	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "0"))
	claims := util.GetUserFromContext(ctx)

	grid, err := c.CheckInService.Heatmap(ctx.Request.Context(), claims.UserID(), days)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, grid)
}

// @Summary 今天是否已自评
// @Tags 自评
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/checkins/today [get]
func (c *CheckInController) Today(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	done, err := c.CheckInService.CheckedInToday(ctx.Request.Context(), claims.UserID())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"checkedInToday": done})
}
