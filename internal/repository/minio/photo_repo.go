package minio

import (
	"bytes"
	"context"

	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"

	"github.com/bidhaus/auction-backend/internal/cfg"
	"github.com/bidhaus/auction-backend/internal/domain"
	"github.com/bidhaus/auction-backend/pkg/e"
)

// PhotoRepo реализует репозиторий фотографий лотов поверх MinIO.
type PhotoRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewPhotoRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *PhotoRepo {
	return &PhotoRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload загружает фотографию в MinIO и возвращает ключ объекта.
func (p *PhotoRepo) Upload(ctx context.Context, photo *domain.Photo) (string, error) {
	reader := bytes.NewReader(photo.Bytes)

	info, err := p.mc.PutObject(ctx, p.cfg.BucketName, photo.ObjectKey, reader, photo.Size, minio.PutObjectOptions{
		ContentType: photo.MimeType,
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет объект из MinIO по указанному ключу.
func (p *PhotoRepo) Delete(ctx context.Context, key string) error {
	if err := p.mc.RemoveObject(ctx, p.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
