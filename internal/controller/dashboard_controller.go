package controller

import (
	"errors"

	"little_learners_backend/internal/service"
	"little_learners_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	ProgressService  *service.ProgressService
	StudentService   *service.StudentService
}

func NewDashboardController(
	dashboardService *service.DashboardService,
	progressService *service.ProgressService,
	studentService *service.StudentService,
) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
		ProgressService:  progressService,
		StudentService:   studentService,
	}
}

// GetDashboard godoc
// @Summary Parent dashboard
// @Description Active student, family profiles, and the course grid for the student's age band
// @Tags dashboard
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Dashboard} "Success"
// @Failure 404 {object} util.Response "No student profiles yet"
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	dashboard, err := c.DashboardService.Load(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, dashboard)
}

// Reconcile godoc
// @Summary Repair a student's stored category percentages
// @Tags dashboard
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "Student id"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/students/{studentId}/reconcile [post]
func (c *DashboardController) Reconcile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	studentID := ctx.Param("id")

	if _, err := c.StudentService.GetStudent(studentID, claims.UserID); err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if err := c.ProgressService.ReconcileCourseCompletion(studentID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
