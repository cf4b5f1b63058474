package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"little_learners_backend/internal/catalog"
	"little_learners_backend/internal/model"
	"little_learners_backend/internal/repository"
	"little_learners_backend/internal/util"
	"little_learners_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LessonService struct {
	Lessons  *repository.LessonRepository
	Sections *repository.SectionRepository
	Storage  *StorageService
}

func NewLessonService(lessons *repository.LessonRepository, sections *repository.SectionRepository, storage *StorageService) *LessonService {
	return &LessonService{Lessons: lessons, Sections: sections, Storage: storage}
}

// GetLesson returns the lesson with its playable section list. Lessons with
// no stored sections get the default trio; lessons missing a challenge get
// one appended, so every lesson is completable the same way.
func (s *LessonService) GetLesson(lessonID string) (*model.Lesson, []model.LessonSection, error) {
	lesson, err := s.Lessons.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	stored, err := s.Sections.FindByLesson(lessonID)
	if err != nil {
		return nil, nil, err
	}
	return lesson, catalog.EnsureSections(lessonID, stored), nil
}

// UploadVideo stores a lesson's video, probes it, and generates a thumbnail.
// The probe and thumbnail are best-effort; a video that ffmpeg cannot read
// is still attached.
func (s *LessonService) UploadVideo(ctx context.Context, lessonID string, file *multipart.FileHeader) (*model.Lesson, error) {
	lesson, err := s.Lessons.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "lesson-video-*"+filepath.Ext(file.Filename))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		return nil, err
	}

	if info, err := util.GetVideoInfo(tmp.Name()); err != nil {
		logger.Log.Warn("video probe failed", zap.String("lessonId", lessonID), zap.Error(err))
	} else {
		logger.Log.Info("lesson video probed",
			zap.String("lessonId", lessonID),
			zap.Float64("duration", info.Duration),
			zap.Int("width", info.Width),
			zap.Int("height", info.Height))
	}

	objectName := fmt.Sprintf("lessons/%s/video%s", lessonID, filepath.Ext(file.Filename))
	videoURL, err := s.Storage.UploadFile(ctx, objectName, tmp.Name(), file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	thumbPath := tmp.Name() + ".jpg"
	if err := util.GenerateThumbnail(tmp.Name(), thumbPath, "00:00:01"); err != nil {
		logger.Log.Warn("thumbnail generation failed", zap.String("lessonId", lessonID), zap.Error(err))
	} else {
		defer os.Remove(thumbPath)
		thumbName := fmt.Sprintf("lessons/%s/thumbnail.jpg", lessonID)
		if _, err := s.Storage.UploadFile(ctx, thumbName, thumbPath, "image/jpeg"); err != nil {
			logger.Log.Warn("thumbnail upload failed", zap.String("lessonId", lessonID), zap.Error(err))
		}
	}

	lesson.VideoURL = &videoURL
	if err := s.Lessons.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}
