package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/dto"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/models"
	"github.com/MithilaShegaji/ExamIDE-Coding-Platform-for-Placement-Tests/internal/repository"
)

func setupTestService(t *testing.T) (TestService, *gorm.DB, *redis.Client) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Test{}, &models.MCQQuestion{}, &models.MCQOption{}, &models.CodingQuestion{}, &models.TestCase{}, &models.CodingSubmission{}))

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewTestService(repository.NewTestRepository(db), cache, 5*time.Minute, validate, zerolog.Nop())
	return svc, db, cache
}

func TestCreateTestValidatesPayload(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateTestRequest{Name: "", DurationMinutes: 60})
	require.Error(t, err)

	_, err = svc.Create(ctx, dto.CreateTestRequest{Name: "Aptitude Round", DurationMinutes: 0})
	require.Error(t, err)

	created, err := svc.Create(ctx, dto.CreateTestRequest{Name: "Aptitude Round", DurationMinutes: 60})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Aptitude Round", created.Name)
}

func TestGetCachesTestDetail(t *testing.T) {
	svc, db, cache := setupTestService(t)
	ctx := context.Background()

	test := models.Test{Name: "DSA Screening", DurationMinutes: 90}
	require.NoError(t, db.Create(&test).Error)

	key := fmt.Sprintf("test:detail:%d", test.ID)
	require.Equal(t, int64(0), cache.Exists(ctx, key).Val())

	first, err := svc.Get(ctx, test.ID)
	require.NoError(t, err)
	require.Equal(t, "DSA Screening", first.Name)
	require.Equal(t, int64(1), cache.Exists(ctx, key).Val(), "detail must be cached after the first read")

	// A second read is served from the cache, so a direct row change is not
	// visible until the key is invalidated.
	require.NoError(t, db.Model(&models.Test{}).Where("id = ?", test.ID).Update("name", "Renamed").Error)

	second, err := svc.Get(ctx, test.ID)
	require.NoError(t, err)
	require.Equal(t, "DSA Screening", second.Name)

	require.NoError(t, cache.Del(ctx, key).Err())
	third, err := svc.Get(ctx, test.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", third.Name)
}

func TestGetUnknownTest(t *testing.T) {
	svc, _, _ := setupTestService(t)

	_, err := svc.Get(context.Background(), 4242)
	require.ErrorIs(t, err, ErrTestNotFound)
}

func TestDeleteInvalidatesCachedDetail(t *testing.T) {
	svc, db, cache := setupTestService(t)
	ctx := context.Background()

	test := models.Test{Name: "Final Round", DurationMinutes: 45}
	require.NoError(t, db.Create(&test).Error)

	_, err := svc.Get(ctx, test.ID)
	require.NoError(t, err)

	key := fmt.Sprintf("test:detail:%d", test.ID)
	require.Equal(t, int64(1), cache.Exists(ctx, key).Val())

	require.NoError(t, svc.Delete(ctx, test.ID))
	require.Equal(t, int64(0), cache.Exists(ctx, key).Val(), "delete must drop the cached detail")

	require.ErrorIs(t, svc.Delete(ctx, test.ID), ErrTestNotFound)
}

func TestListReturnsNewestFirst(t *testing.T) {
	svc, db, _ := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Test{Name: "First", DurationMinutes: 30}).Error)
	require.NoError(t, db.Create(&models.Test{Name: "Second", DurationMinutes: 30}).Error)

	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, "Second", summaries[0].Name)
	require.Equal(t, "First", summaries[1].Name)
}
