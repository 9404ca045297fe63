package controller

import (
	"mockera_backend/internal/service"
	"mockera_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// GetLeaderboard godoc
// @Summary 积分排行榜
// @Description 按积分降序返回排行，读取时惰性结算每个用户的当日衰减
// @Tags 排行榜
// @Produce json
// @Security ApiKeyAuth
// @Param   scope query string false "排行范围" Enums(global, batch)
// @Param   batchCode query string false "批次号，scope=batch 时必填"
// @Success 200 {object} util.Response{data=[]service.LeaderboardRow}
// @Router /api/leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	scope := ctx.DefaultQuery("scope", "global")
	batchCode := ctx.Query("batchCode")
	if scope == "batch" && batchCode == "" {
		util.BadRequest(ctx, "batchCode is required when scope is batch")
		return
	}

	rows, err := c.LeaderboardService.GetLeaderboard(ctx.Request.Context(), scope, batchCode)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, rows)
}
