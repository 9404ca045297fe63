package controller

import (
	"errors"
	"io"

	"mockera_backend/internal/service"
	"mockera_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController 管理员维护操作
type AdminController struct {
	BackfillService *service.BackfillService
}

func NewAdminController(backfillService *service.BackfillService) *AdminController {
	return &AdminController{BackfillService: backfillService}
}

type BackfillRequest struct {
	// gated 表示速度加成套用准确率门槛（与实时提交一致），默认不套用
	SpeedBonusPolicy string `json:"speedBonusPolicy" binding:"omitempty,oneof=gated ungated"`
}

// RunBackfill godoc
// @Summary 重算历史积分
// @Description 对全部已提交答卷重放评分流水线，重建用户积分与连续天数
// @Tags 管理
// @Accept  json
// @Produce json
// @Security ApiKeyAuth
// @Param   body body BackfillRequest false "重算选项"
// @Success 200 {object} util.Response{data=service.BackfillResult}
// @Router /api/admin/backfill [post]
func (c *AdminController) RunBackfill(ctx *gin.Context) {
	// 请求体可省略，省略时用默认口径
	var req BackfillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		util.BadRequest(ctx, err.Error())
		return
	}

	policy := service.SpeedBonusUngated
	if req.SpeedBonusPolicy == "gated" {
		policy = service.SpeedBonusGated
	}

	result, err := c.BackfillService.Run(policy)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
