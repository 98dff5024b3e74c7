package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/feedback-go-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.RatingParameter{},
		&models.FeedbackPeriod{},
		&models.Class{},
		&models.Subject{},
		&models.Faculty{},
		&models.StudentProfile{},
		&models.TeachingAssignment{},
		&models.FeedbackSubmissionStatus{},
		&models.AggregatedRating{},
	))
	return db
}
