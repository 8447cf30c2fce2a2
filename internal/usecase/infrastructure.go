package usecase

import (
	"context"

	"github.com/DRSN-tech/home-store/internal/domain"
)

// ImagesInfra подставляет ссылки на изображения товаров.
type ImagesInfra interface {
	ResolveURLs(ctx context.Context, products []domain.Product)
}

// MessageProducer публикует события в брокер сообщений.
type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// TxManager выполняет fn в одной транзакции БД.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
