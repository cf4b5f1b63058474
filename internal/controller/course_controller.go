package controller

import (
	"errors"

	"little_learners_backend/internal/model"
	"little_learners_backend/internal/service"
	"little_learners_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CatalogService   *service.CatalogService
	DashboardService *service.DashboardService
}

func NewCourseController(catalogService *service.CatalogService, dashboardService *service.DashboardService) *CourseController {
	return &CourseController{CatalogService: catalogService, DashboardService: dashboardService}
}

// GetCourse godoc
// @Summary Resolve a course and its lessons
// @Description Accepts stored UUID ids and built-in slugs; unknown ids are 404
// @Tags courses
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Course id or slug"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 404 {object} util.Response "Unknown course"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, lessons, err := c.CatalogService.Resolve(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"course":  course,
		"lessons": lessons,
	})
}

// ListCourses godoc
// @Summary List courses, optionally filtered by age group
// @Tags courses
// @Produce  json
// @Security ApiKeyAuth
// @Param   ageGroup query string false "GROUP_5_6 | GROUP_7_9 | GROUP_10_12"
// @Success 200 {object} util.Response{data=[]model.Course} "Success"
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	ageGroup := model.AgeGroup(ctx.Query("ageGroup"))
	if ageGroup == "" {
		courses, err := c.CatalogService.Courses.FindAll()
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, courses)
		return
	}

	courses, err := c.DashboardService.CourseGrid(ageGroup)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}
