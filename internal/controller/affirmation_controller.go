package controller

import (
	"strconv"
	"wellness_backend/internal/service"
	"wellness_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AffirmationController struct {
	AffirmationService *service.AffirmationService
}

func NewAffirmationController(affirmationService *service.AffirmationService) *AffirmationController {
	return &AffirmationController{AffirmationService: affirmationService}
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// @Summary 今日肯定语
// @Description 每 12 小时轮换一次
// @Tags 肯定语
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/affirmation [get]
func (c *AffirmationController) Current(ctx *gin.Context) {
	content, err := c.AffirmationService.Current(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"content": content})
}

// @Summary 所有肯定语
// @Tags 肯定语
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/affirmations [get]
func (c *AffirmationController) List(ctx *gin.Context) {
	affirmations, err := c.AffirmationService.List(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, affirmations)
}

// @Summary 新增肯定语
// @Tags 肯定语
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.AffirmationRequest true "内容"
// @Success 201 {object} util.Response
// @Router /api/admin/affirmations [post]
func (c *AffirmationController) Create(ctx *gin.Context) {
	var req service.AffirmationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	affirmation, err := c.AffirmationService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, affirmation)
}

// @Summary 修改肯定语
// @Tags 肯定语
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param request body service.AffirmationRequest true "内容"
// @Success 200 {object} util.Response
// @Router /api/admin/affirmations/{id} [put]
func (c *AffirmationController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req service.AffirmationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	affirmation, err := c.AffirmationService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, affirmation)
}

// @Summary 删除肯定语
// @Tags 肯定语
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} util.Response
// @Router /api/admin/affirmations/{id} [delete]
func (c *AffirmationController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.AffirmationService.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 立即切换肯定语
// @Tags 肯定语
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} util.Response
// @Router /api/admin/affirmations/{id}/switch [post]
func (c *AffirmationController) Switch(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.AffirmationService.SwitchTo(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
