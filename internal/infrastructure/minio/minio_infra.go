package minio

import (
	"context"
	"sync"

	"github.com/DRSN-tech/home-store/internal/cfg"
	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/internal/infrastructure"
	"github.com/DRSN-tech/home-store/internal/usecase"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/DRSN-tech/home-store/pkg/logger"
)

// MinioInfrastructure подставляет в товары ссылки на изображения из MinIO.
type MinioInfrastructure struct {
	imageRepo    usecase.ImageRepository
	cfg          *cfg.MinIOCfg
	logger       logger.Logger
	presignLimit int
}

func NewMinioInfrastructure(imageRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger) *MinioInfrastructure {
	limit := cfg.PresignLimit
	if limit < 1 {
		limit = 1
	}

	return &MinioInfrastructure{
		imageRepo:    imageRepo,
		cfg:          cfg,
		logger:       logger,
		presignLimit: limit,
	}
}

// ResolveURLs подписывает ссылки на изображения параллельно с ограничением одновременных операций.
// При ошибке ссылка товара остаётся пустой.
func (m *MinioInfrastructure) ResolveURLs(ctx context.Context, products []domain.Product) {
	const op = "MinioInfrastructure.ResolveURLs"

	sem := make(chan struct{}, m.presignLimit)
	var wg sync.WaitGroup

	for i := range products {
		if products[i].Image == "" {
			continue
		}

		wg.Add(1)
		go func(p *domain.Product) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			mime, err := infrastructure.GetMIMEFromKey(p.Image)
			if err != nil {
				m.logger.Debugf("%s: %s: %v", op, p.Image, err)
			}

			image := domain.NewImage(m.cfg.BucketName, p.Image, mime)
			u, err := m.imageRepo.PresignedURL(ctx, image, m.cfg.ImageURLTTL)
			if err != nil {
				m.logger.Warnf("failed to presign image of product %d: %v", p.ID, e.Wrap(op, err))
				return
			}

			p.ImageURL = u
		}(&products[i])
	}

	wg.Wait()
}
