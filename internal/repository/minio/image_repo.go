package minio

import (
	"context"
	"net/url"
	"time"

	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ImageRepo реализует репозиторий изображений поверх MinIO.
type ImageRepo struct {
	mc *minio.Client
}

func NewImageRepo(mc *minio.Client) *ImageRepo {
	return &ImageRepo{
		mc: mc,
	}
}

// PresignedURL возвращает временную ссылку на скачивание изображения.
// Ответ MinIO по ссылке отдаётся с Content-Type изображения.
func (i *ImageRepo) PresignedURL(ctx context.Context, image *domain.Image, ttl time.Duration) (string, error) {
	params := url.Values{}
	if image.ContentType != "" {
		params.Set("response-content-type", image.ContentType)
	}

	u, err := i.mc.PresignedGetObject(ctx, image.Bucket, image.ObjectKey, ttl, params)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return u.String(), nil
}
