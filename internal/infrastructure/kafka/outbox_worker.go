package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/home-store/internal/repository/pgdb"
	"github.com/DRSN-tech/home-store/internal/usecase"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/DRSN-tech/home-store/pkg/jitter"
	"github.com/DRSN-tech/home-store/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const (
	// pollInterval — как долго ждать уведомления, прежде чем проверить outbox самостоятельно.
	pollInterval = 30 * time.Second

	reconnectBase = time.Second
	reconnectMax  = 30 * time.Second
)

// OutboxWorker пересылает события outbox в Kafka.
// Новые события будят его через LISTEN/NOTIFY; при обрыве соединения он переподключается с backoff.
type OutboxWorker struct {
	repo       usecase.OutboxRepository
	logger     logger.Logger
	producer   usecase.MessageProducer
	batchLimit int
	dbConnStr  string
	backoff    jitter.Backoff

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	batchLimit int,
	dbConnStr string,
) *OutboxWorker {
	if batchLimit < 1 {
		batchLimit = 1
	}

	return &OutboxWorker{
		repo:       repo,
		logger:     logger,
		producer:   producer,
		batchLimit: batchLimit,
		dbConnStr:  dbConnStr,
		backoff:    jitter.NewBackoff(reconnectBase, reconnectMax),
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		// Обрабатываем "остатки" при старте
		w.logger.Infof("Draining pending outbox events on startup...")
		w.drain(ctx)

		w.listenOutboxNotifications(ctx)
		w.logger.Infof("Outbox worker stopped")
	}()
}

func (w *OutboxWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	attempt := 0
	for {
		subscribed, err := w.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		if subscribed {
			attempt = 0
		}

		w.logger.Warnf("Outbox listener: %v. Reconnecting...", err)
		if err := w.backoff.Sleep(ctx, attempt); err != nil {
			return
		}
		attempt++
	}
}

// listen держит одно LISTEN-соединение до ошибки или отмены ctx.
// subscribed сообщает, удалось ли подписаться на канал.
func (w *OutboxWorker) listen(ctx context.Context) (subscribed bool, err error) {
	conn, err := pgx.Connect(ctx, w.dbConnStr)
	if err != nil {
		return false, e.Wrap("failed to connect for LISTEN", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgdb.OutboxChannel); err != nil {
		return false, e.Wrap("failed to LISTEN", err)
	}
	w.logger.Infof("Subscribed to '%s' channel", pgdb.OutboxChannel)

	// События, записанные пока соединения не было
	w.drain(ctx)

	for {
		waitCtx, cancel := context.WithTimeout(ctx, pollInterval)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		switch {
		case ctx.Err() != nil:
			return true, ctx.Err()
		case errors.Is(err, context.DeadlineExceeded):
			w.drain(ctx)
		case err != nil:
			return true, e.Wrap("connection lost", err)
		case notif.Channel == pgdb.OutboxChannel:
			w.logger.Debugf("Received outbox notification, draining outbox events")
			w.drain(ctx)
		}
	}
}

// drain обрабатывает пачки, пока в outbox есть ожидающие события.
func (w *OutboxWorker) drain(ctx context.Context) {
	for ctx.Err() == nil {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
			return
		}
		if !hasMore {
			return
		}
	}
}

// processBatch отправляет одну пачку. Событие, которое не удалось отправить, возвращается в pending,
// а обработка пачки прерывается, чтобы не нарушить порядок событий.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.batchLimit)
	if err != nil {
		return false, err
	}

	if len(events) == 0 {
		return false, nil
	}

	for i, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			w.release(events[i:])
			return false, err
		}
		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	return len(events) == w.batchLimit, nil
}

// release возвращает неотправленные события в очередь.
func (w *OutboxWorker) release(events []*usecase.OutboxEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, event := range events {
		if err := w.repo.MarkAsPending(ctx, event.ID); err != nil {
			w.logger.Warnf("release event %d failed: %v", event.ID, err)
		}
	}
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	req := usecase.NewWriteRawMessageReq(event.AggregateID, event.EventType, event.Payload)
	if err := w.producer.WriteRawMessage(ctx, req); err != nil {
		if isRetryableError(err) {
			return e.Wrap("Temporary Kafka failure, will retry", err)
		}
		return e.Wrap("Permanent Kafka failure", err)
	}
	return nil
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
