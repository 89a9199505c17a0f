package controller

import (
	"wellness_backend/internal/service"
	"wellness_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BreathingController struct {
	BreathingService *service.BreathingService
}

func NewBreathingController(breathingService *service.BreathingService) *BreathingController {
	return &BreathingController{BreathingService: breathingService}
}

type BreathingSessionRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	Cycles     int    `json:"cycles" binding:"required,min=1"`
}

// @Summary 呼吸练习列表
// @Tags 呼吸练习
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.BreathingExercise}
// @Router /api/breathing/exercises [get]
func (c *BreathingController) Exercises(ctx *gin.Context) {
	util.Success(ctx, c.BreathingService.Exercises())
}

// @Summary 记录一次呼吸练习
// @Tags 呼吸练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BreathingSessionRequest true "练习与循环次数"
// @Success 201 {object} util.Response{data=model.BreathingSession}
// @Router /api/breathing/sessions [post]
func (c *BreathingController) Record(ctx *gin.Context) {
	var req BreathingSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	session, err := c.BreathingService.Record(ctx.Request.Context(), claims.UserID(), req.ExerciseID, req.Cycles)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, session)
}

// @Summary 呼吸练习统计
// @Tags 呼吸练习
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.BreathingStats}
// @Router /api/breathing/stats [get]
func (c *BreathingController) Stats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	stats, err := c.BreathingService.Stats(ctx.Request.Context(), claims.UserID())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
