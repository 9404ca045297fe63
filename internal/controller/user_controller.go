package controller

import (
	"errors"
	"mockera_backend/internal/service"
	"mockera_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 处理用户积分状态查询与护盾购买
type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary 当前用户信息
// @Description 返回积分余额、连续作答天数、护盾状态与答题聚合（分科正确率、最强科目等）
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Profile}
// @Router /api/users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.UserService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// PurchaseRankShield godoc
// @Summary 购买排名护盾
// @Description 扣 200 积分，获得自此刻起 24 小时的衰减豁免，新护盾覆盖旧护盾
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "积分不足"
// @Router /api/rank-shield [post]
func (c *UserController) PurchaseRankShield(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.PurchaseRankShield(claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInsufficientCredits):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}
