package controller

import (
	"errors"
	"mockera_backend/internal/model"
	"mockera_backend/internal/service"
	"mockera_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AttemptController 处理答卷提交与查询
type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// SubmitAttempt godoc
// @Summary 提交答卷
// @Description 评分、发放积分并更新连续作答天数，整体原子提交
// @Tags 答卷
// @Accept  json
// @Produce json
// @Security ApiKeyAuth
// @Param   body body service.SubmitAttemptRequest true "答卷内容"
// @Success 201 {object} util.Response{data=model.Attempt}
// @Failure 400 {object} util.Response "参数错误"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/attempts [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.AttemptService.Submit(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTestNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTestHasNoQuestions):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.Unauthorized(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, attempt)
}

// ListAttempts godoc
// @Summary 查询答卷
// @Description 默认返回当前用户的答卷，scope=global 返回全部（教师分析页）
// @Tags 答卷
// @Produce json
// @Security ApiKeyAuth
// @Param   scope query string false "查询范围" Enums(mine, global)
// @Param   testId query string false "按试卷过滤"
// @Param   batchCode query string false "按批次过滤"
// @Success 200 {object} util.Response{data=[]model.Attempt}
// @Router /api/attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	scope := ctx.DefaultQuery("scope", "mine")
	// 全量查询仅对教师和管理员开放
	if scope == "global" && claims.Role == model.Student {
		util.Forbidden(ctx)
		return
	}

	attempts, err := c.AttemptService.ListForUser(claims.UserID, scope, ctx.Query("testId"), ctx.Query("batchCode"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}
