package controller

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"mockera_backend/internal/service"
	"mockera_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TestController 处理试卷的创建与查询
type TestController struct {
	TestService    *service.TestService
	StorageService *service.StorageService
}

func NewTestController(testService *service.TestService, storageService *service.StorageService) *TestController {
	return &TestController{
		TestService:    testService,
		StorageService: storageService,
	}
}

// CreateTest godoc
// @Summary 创建试卷
// @Description 创建试卷及其题目，试卷创建后不可修改
// @Tags 试卷
// @Accept  json
// @Produce json
// @Security ApiKeyAuth
// @Param   body body service.CreateTestRequest true "试卷内容"
// @Success 201 {object} util.Response{data=model.Test}
// @Failure 400 {object} util.Response "参数错误"
// @Router /api/teacher/tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.TestService.CreateTest(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrTestHasNoQuestions) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, test)
}

// ListTests godoc
// @Summary 试卷列表
// @Tags 试卷
// @Produce json
// @Security ApiKeyAuth
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response{data=object}
// @Router /api/tests [get]
func (c *TestController) ListTests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	tests, total, err := c.TestService.ListTests(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  tests,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetTest godoc
// @Summary 试卷详情
// @Description 返回试卷及按题号排序的题目
// @Tags 试卷
// @Produce json
// @Security ApiKeyAuth
// @Param   id path string true "试卷ID"
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/tests/{id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	test, err := c.TestService.GetTest(ctx.Param("id"), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, test)
}

// UploadQuestionImage godoc
// @Summary 上传题图
// @Description 为指定题目上传题干截图
// @Tags 试卷
// @Accept  multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param   id path string true "题目ID"
// @Param   file formData file true "图片文件"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "文件缺失"
// @Router /api/teacher/questions/{id}/image [post]
func (c *TestController) UploadQuestionImage(ctx *gin.Context) {
	questionID := ctx.Param("id")

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}

	if !util.HasAllowedExtension(file.Filename, util.AllowedImageExtensions) {
		util.BadRequest(ctx, "Only image files are allowed")
		return
	}

	// 按内容嗅探 MIME，校验后重新打开再上传
	probe, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	contentType, err := util.ValidateMimeType(probe, []string{util.MimeImage})
	probe.Close()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := fmt.Sprintf("questions/%s%s", uuid.New().String(), filepath.Ext(file.Filename))

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.TestService.SetQuestionImage(questionID, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
