package minio

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/home-store/internal/cfg"
	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/pkg/logger"
	"github.com/stretchr/testify/assert"
)

type fakeImageRepo struct {
	mu       sync.Mutex
	inFlight int32
	peak     int32
	images   []domain.Image
}

func (f *fakeImageRepo) PresignedURL(_ context.Context, image *domain.Image, ttl time.Duration) (string, error) {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)

	f.mu.Lock()
	if cur > f.peak {
		f.peak = cur
	}
	f.images = append(f.images, *image)
	f.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	if image.ObjectKey == "goods/broken.jpg" {
		return "", errors.New("presign failed")
	}
	return "https://s3/" + image.Bucket + "/" + image.ObjectKey + "?ttl=" + ttl.String(), nil
}

func TestResolveURLs(t *testing.T) {
	repo := &fakeImageRepo{}
	infra := NewMinioInfrastructure(repo, &cfg.MinIOCfg{
		BucketName:   "goods",
		ImageURLTTL:  time.Hour,
		PresignLimit: 2,
	}, logger.Discard())

	products := []domain.Product{
		{ID: 1, Image: "goods/1.jpg"},
		{ID: 2, Image: "goods/broken.jpg"},
		{ID: 3},
		{ID: 4, Image: "goods/4.png"},
		{ID: 5, Image: "goods/5.webp"},
	}

	infra.ResolveURLs(context.Background(), products)

	assert.Equal(t, "https://s3/goods/goods/1.jpg?ttl=1h0m0s", products[0].ImageURL)
	assert.Empty(t, products[1].ImageURL)
	assert.Empty(t, products[2].ImageURL)
	assert.NotEmpty(t, products[3].ImageURL)
	assert.NotEmpty(t, products[4].ImageURL)

	assert.LessOrEqual(t, repo.peak, int32(2))
	assert.Len(t, repo.images, 4)
	for _, img := range repo.images {
		if img.ObjectKey == "goods/4.png" {
			assert.Equal(t, "image/png", img.ContentType)
		}
	}
}
