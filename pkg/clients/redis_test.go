package clients

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/home-store/internal/cfg"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClient_WaitReady(t *testing.T) {
	mr := miniredis.RunT(t)

	client := NewRedisClient(&cfg.RedisCfg{Addr: mr.Addr(), DialTimeout: time.Second, Timeout: time.Second})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.WaitReady(context.Background()))

	mr.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	assert.Error(t, client.WaitReady(ctx))
}

func TestNewMinIOClient(t *testing.T) {
	mc, err := NewMinIOClient(&cfg.MinIOCfg{
		MinioEndpoint:     "localhost:9000",
		MinioRootUser:     "minio",
		MinioRootPassword: "minio123",
		MinioRegion:       "us-east-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", mc.EndpointURL().Host)
}
