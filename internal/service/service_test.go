package service

import (
	"fmt"
	"testing"
	"time"

	"little_learners_backend/internal/model"
	"little_learners_backend/internal/repository"
	"little_learners_backend/internal/session"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database and migrates the schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Student{},
		&model.Course{},
		&model.Lesson{},
		&model.LessonSection{},
		&model.StudentProgress{},
	))
	return db
}

type testEnv struct {
	db       *gorm.DB
	students *StudentService
	catalog  *CatalogService
	progress *ProgressService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	catalogSvc := NewCatalogService(courseRepo, lessonRepo)
	return &testEnv{
		db:       db,
		students: NewStudentService(studentRepo, session.NewMemoryStore()),
		catalog:  catalogSvc,
		progress: NewProgressService(progressRepo, studentRepo, lessonRepo, catalogSvc),
	}
}

func (e *testEnv) createStudent(t *testing.T, parentID uint) *model.Student {
	t.Helper()
	birthday := time.Now().AddDate(-8, 0, 0)
	student, err := e.students.CreateStudent(parentID, "Maya", "Rivera", birthday)
	require.NoError(t, err)
	return student
}

// createCourse seeds a UUID course with n lessons worth pointsEach.
func (e *testEnv) createCourse(t *testing.T, category model.Category, n, pointsEach int) (*model.Course, []model.Lesson) {
	t.Helper()
	course := &model.Course{
		Title:    "Test Course",
		Category: category,
		AgeGroup: model.Group7To9,
	}
	require.NoError(t, e.db.Create(course).Error)

	lessons := make([]model.Lesson, 0, n)
	for i := 1; i <= n; i++ {
		lesson := model.Lesson{
			CourseID:    course.ID,
			Title:       fmt.Sprintf("Lesson %d", i),
			OrderNumber: i,
			Points:      pointsEach,
		}
		require.NoError(t, e.db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return course, lessons
}
