package controller

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"little_learners_backend/internal/service"
	"little_learners_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService *service.StudentService
	StorageService *service.StorageService
}

func NewStudentController(studentService *service.StudentService, storageService *service.StorageService) *StudentController {
	return &StudentController{StudentService: studentService, StorageService: storageService}
}

// swagger:model StudentRequest
type StudentRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Birthday  string `json:"birthday" binding:"required"` // YYYY-MM-DD
}

func parseBirthday(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}

func (c *StudentController) writeStudentError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidBirthday):
		util.BadRequest(ctx, "Birthday must be a valid date in the past")
	case errors.Is(err, util.ErrAgeOutOfRange):
		util.BadRequest(ctx, "Students must be between 5 and 12 years old")
	case errors.Is(err, util.ErrStudentNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// CreateStudent godoc
// @Summary Add a student profile
// @Tags students
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body StudentRequest true "Student info"
// @Success 201 {object} util.Response{data=model.Student} "Created"
// @Failure 400 {object} util.Response "Invalid birthday or age"
// @Router /api/students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		util.BadRequest(ctx, "Birthday must use the YYYY-MM-DD format")
		return
	}

	student, err := c.StudentService.CreateStudent(claims.UserID, req.FirstName, req.LastName, birthday)
	if err != nil {
		c.writeStudentError(ctx, err)
		return
	}
	util.Created(ctx, student)
}

// ListStudents godoc
// @Summary List the family's student profiles
// @Tags students
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Student} "Success"
// @Router /api/students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	students, err := c.StudentService.ListStudents(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// GetStudent godoc
// @Summary Fetch one student profile
// @Tags students
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Student id"
// @Success 200 {object} util.Response{data=model.Student} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	student, err := c.StudentService.GetStudent(ctx.Param("id"), claims.UserID)
	if err != nil {
		c.writeStudentError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// swagger:model StudentUpdateRequest
type StudentUpdateRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Birthday  string `json:"birthday"`
}

// UpdateStudent godoc
// @Summary Update a student profile
// @Tags students
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Student id"
// @Param   body body StudentUpdateRequest true "Fields to update"
// @Success 200 {object} util.Response{data=model.Student} "Success"
// @Failure 400 {object} util.Response "Invalid birthday or age"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req StudentUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var birthday time.Time
	if req.Birthday != "" {
		parsed, err := parseBirthday(req.Birthday)
		if err != nil {
			util.BadRequest(ctx, "Birthday must use the YYYY-MM-DD format")
			return
		}
		birthday = parsed
	}

	student, err := c.StudentService.UpdateStudent(ctx.Param("id"), claims.UserID, req.FirstName, req.LastName, birthday)
	if err != nil {
		c.writeStudentError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// DeleteStudent godoc
// @Summary Remove a student profile
// @Tags students
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Student id"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.StudentService.DeleteStudent(ctx.Request.Context(), ctx.Param("id"), claims.UserID); err != nil {
		c.writeStudentError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadAvatar godoc
// @Summary Upload a student avatar image
// @Tags students
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Student id"
// @Param   avatar formData file true "Avatar image"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/students/{id}/avatar [post]
func (c *StudentController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	studentID := ctx.Param("id")

	file, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	objectName := fmt.Sprintf("avatars/%s%s", studentID, filepath.Ext(file.Filename))
	url, err := c.StorageService.Upload(ctx.Request.Context(), objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.StudentService.SetAvatar(studentID, claims.UserID, url); err != nil {
		c.writeStudentError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"avatarUrl": url})
}

// SelectStudent godoc
// @Summary Remember the active student profile
// @Tags students
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Student id"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/students/{id}/select [post]
func (c *StudentController) SelectStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.StudentService.SelectStudent(ctx.Request.Context(), claims.UserID, ctx.Param("id")); err != nil {
		c.writeStudentError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
