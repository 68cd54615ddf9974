package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bidhaus/auction-backend/internal/cfg"
	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/internal/infrastructure"
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/jitter"
	"github.com/bidhaus/auction-backend/pkg/logger"
)

const (
	cleanupTimeout  = 30 * time.Second
	cleanupAttempts = 3
)

// PhotoInfrastructure управляет загрузкой и очисткой фотографий лотов в MinIO.
type PhotoInfrastructure struct {
	photoRepo   usecase.PhotoRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewPhotoInfrastructure(photoRepo usecase.PhotoRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *PhotoInfrastructure {
	return &PhotoInfrastructure{
		photoRepo:   photoRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
	}
}

// UploadPhotos загружает фотографии лота в MinIO параллельно с ограничением
// одновременных операций. Первая ошибка отменяет остальные загрузки и
// запускает фоновую очистку уже загруженных объектов.
func (m *PhotoInfrastructure) UploadPhotos(ctx context.Context, req *usecase.UploadPhotosReq) (*usecase.UploadPhotosRes, error) {
	const op = "PhotoInfrastructure.UploadPhotos"

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(m.cfg.UploadPhotosLimit)

	keys := make([]string, len(req.Photos))
	var mu sync.Mutex

	for i, photo := range req.Photos {
		group.Go(func() error {
			photoID := uuid.NewString()
			ext, err := infrastructure.GetExtensionFromMIME(photo.MimeType)
			if err != nil {
				return fmt.Errorf("invalid mime type %s for %s: %w", photo.MimeType, photo.Name, err)
			}

			objKey := fmt.Sprintf("%s/%s-%s.%s", req.Name, photo.Name, photoID, ext)
			newPhoto := domain.NewPhoto(photoID, m.cfg.BucketName, objKey, photo.Data, photo.Size, photo.MimeType)

			key, err := m.photoRepo.Upload(ctx, newPhoto)
			if err != nil {
				return fmt.Errorf("upload %s failed: %w", photo.Name, err)
			}

			mu.Lock()
			keys[i] = key
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		uploaded := make([]string, 0, len(keys))
		for _, key := range keys {
			if key != "" {
				uploaded = append(uploaded, key)
			}
		}
		m.CleanupPhotos(uploaded)

		return nil, e.Wrap(op, err)
	}

	return usecase.NewUploadPhotosRes(keys), nil
}

// CleanupPhotos запускает фоновую очистку указанных ключей MinIO
func (m *PhotoInfrastructure) CleanupPhotos(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys удаляет указанные объекты из MinIO с экспоненциальной
// задержкой и jitter между попытками.
func (m *PhotoInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done()
	const op = "PhotoInfrastructure.cleanupUploadedKeys"
	m.logger.Infof("%s: Cleaning up uploaded keys", op)

	ctx, cancel := context.WithTimeout(m.shutdownCtx, cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			if err := m.photoRepo.Delete(ctx, key); err == nil {
				break
			}

			select {
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			default:
			}

			if attempt < cleanupAttempts-1 {
				sleepTime := jitter.ExponentialBackoff(time.Second, 10*time.Second, attempt, jitter.DefaultJitter)

				select {
				case <-time.After(sleepTime):
				case <-ctx.Done():
					m.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
					return
				}
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *PhotoInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
