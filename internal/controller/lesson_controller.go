package controller

import (
	"errors"

	"little_learners_backend/internal/service"
	"little_learners_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService   *service.LessonService
	ProgressService *service.ProgressService
	StudentService  *service.StudentService
}

func NewLessonController(
	lessonService *service.LessonService,
	progressService *service.ProgressService,
	studentService *service.StudentService,
) *LessonController {
	return &LessonController{
		LessonService:   lessonService,
		ProgressService: progressService,
		StudentService:  studentService,
	}
}

func (c *LessonController) writeLessonError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrLessonNotFound), errors.Is(err, util.ErrStudentNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// GetLesson godoc
// @Summary Fetch a lesson with its sections and the student's progress
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Lesson id"
// @Param   studentId query string true "Student id"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 404 {object} util.Response "Unknown lesson or student"
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	lessonID := ctx.Param("id")

	studentID := ctx.Query("studentId")
	if studentID == "" {
		util.BadRequest(ctx, "studentId query parameter is required")
		return
	}
	if _, err := c.StudentService.GetStudent(studentID, claims.UserID); err != nil {
		c.writeLessonError(ctx, err)
		return
	}

	lesson, sections, err := c.LessonService.GetLesson(lessonID)
	if err != nil {
		c.writeLessonError(ctx, err)
		return
	}

	progress, err := c.ProgressService.LoadProgress(studentID, lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	completed := 0
	if progress != nil {
		completed = len(progress.CompletedSections)
	}

	util.Success(ctx, gin.H{
		"lesson":          lesson,
		"sections":        sections,
		"progress":        progress,
		"completionRatio": service.LessonCompletionRatio(completed, len(sections)),
	})
}

// swagger:model CompleteSectionRequest
type CompleteSectionRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	SectionID string `json:"sectionId" binding:"required"`
}

// CompleteSection godoc
// @Summary Record a finished lesson section
// @Description Idempotent; finishing the last section stamps the lesson and awards its points
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Lesson id"
// @Param   body body CompleteSectionRequest true "Completion info"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 404 {object} util.Response "Unknown lesson or student"
// @Router /api/lessons/{id}/complete-section [post]
func (c *LessonController) CompleteSection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	lessonID := ctx.Param("id")

	var req CompleteSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if _, err := c.StudentService.GetStudent(req.StudentID, claims.UserID); err != nil {
		c.writeLessonError(ctx, err)
		return
	}

	lesson, sections, err := c.LessonService.GetLesson(lessonID)
	if err != nil {
		c.writeLessonError(ctx, err)
		return
	}

	if err := c.ProgressService.CompleteSection(req.StudentID, lessonID, req.SectionID, len(sections), lesson.Points); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	progress, err := c.ProgressService.LoadProgress(req.StudentID, lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	completed := 0
	if progress != nil {
		completed = len(progress.CompletedSections)
	}

	util.Success(ctx, gin.H{
		"progress":        progress,
		"completionRatio": service.LessonCompletionRatio(completed, len(sections)),
	})
}

// GetProgress godoc
// @Summary Fetch a student's progress for one lesson
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Lesson id"
// @Param   studentId query string true "Student id"
// @Success 200 {object} util.Response{data=model.StudentProgress} "Success; null when unstarted"
// @Router /api/lessons/{id}/progress [get]
func (c *LessonController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	studentID := ctx.Query("studentId")
	if studentID == "" {
		util.BadRequest(ctx, "studentId query parameter is required")
		return
	}
	if _, err := c.StudentService.GetStudent(studentID, claims.UserID); err != nil {
		c.writeLessonError(ctx, err)
		return
	}

	progress, err := c.ProgressService.LoadProgress(studentID, ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// UploadVideo godoc
// @Summary Attach a video to a lesson
// @Tags lessons
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Lesson id"
// @Param   video formData file true "Video file"
// @Success 200 {object} util.Response{data=model.Lesson} "Success"
// @Failure 404 {object} util.Response "Unknown lesson"
// @Router /api/lessons/{id}/video [post]
func (c *LessonController) UploadVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	lesson, err := c.LessonService.UploadVideo(ctx.Request.Context(), ctx.Param("id"), file)
	if err != nil {
		c.writeLessonError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}
