package controller

import (
	"strconv"
	"strings"
	"wellness_backend/internal/service"
	"wellness_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

type ChatRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}

// @Summary 与 AI 支持助手对话
// @Description 以 SSE 流式返回回复，事件：message / error / end
// @Tags AI对话
// @Accept json
// @Produce text/event-stream
// @Security BearerAuth
// @Param request body ChatRequest true "消息内容"
// @Success 200 {string} string "event stream"
// @Router /api/chat/messages [post]
func (c *ChatController) Send(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	stream, errChan, finish, err := c.ChatService.Send(ctx.Request.Context(), claims.UserID(), req.Content)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	var reply strings.Builder
	for content := range stream {
		reply.WriteString(content)
		ctx.SSEvent("message", content)
		ctx.Writer.Flush()
	}

	if err := <-errChan; err != nil {
		ctx.SSEvent("error", err.Error())
		ctx.Writer.Flush()
	}
	finish(reply.String())

	ctx.SSEvent("end", "done")
	ctx.Writer.Flush()
}

// @Summary 对话历史
// @Tags AI对话
// @Produce json
// @Security BearerAuth
// @Param limit query int false "条数，默认 50"
// @Success 200 {object} util.Response
// @Router /api/chat/messages [get]
func (c *ChatController) History(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	claims := util.GetUserFromContext(ctx)

	messages, err := c.ChatService.History(ctx.Request.Context(), claims.UserID(), limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, messages)
}

// @Summary 清空对话历史
// @Tags AI对话
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/chat/messages [delete]
func (c *ChatController) Clear(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.ChatService.Clear(ctx.Request.Context(), claims.UserID()); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
