package controller

import (
	"mockera_backend/internal/service"
	"mockera_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AnalyticsController 处理百分位分段的查询与维护
type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// GetPercentileBands godoc
// @Summary 试卷百分位分段
// @Description 按分数区间升序返回试卷的百分位标签
// @Tags 分析
// @Produce json
// @Security ApiKeyAuth
// @Param   testId query string true "试卷ID"
// @Success 200 {object} util.Response{data=[]model.TestPercentileBand}
// @Router /api/percentile-bands [get]
func (c *AnalyticsController) GetPercentileBands(ctx *gin.Context) {
	testID := ctx.Query("testId")
	if testID == "" {
		util.BadRequest(ctx, "testId parameter is required")
		return
	}

	bands, err := c.AnalyticsService.GetPercentileBands(testID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, bands)
}

// ReplacePercentileBands godoc
// @Summary 更新百分位分段
// @Description 整体替换试卷的分数分段表（教师/管理员）
// @Tags 分析
// @Accept  json
// @Produce json
// @Security ApiKeyAuth
// @Param   id path string true "试卷ID"
// @Param   body body []service.PercentileBandRequest true "分段列表"
// @Success 200 {object} util.Response{data=[]model.TestPercentileBand}
// @Failure 400 {object} util.Response "参数错误"
// @Router /api/teacher/tests/{id}/percentile-bands [put]
func (c *AnalyticsController) ReplacePercentileBands(ctx *gin.Context) {
	var reqs []service.PercentileBandRequest
	if err := ctx.ShouldBindJSON(&reqs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	bands, err := c.AnalyticsService.ReplacePercentileBands(ctx.Param("id"), reqs)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, bands)
}
