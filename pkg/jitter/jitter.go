// Package jitter добавляет случайность в интервалы ожидания между повторными попытками,
// чтобы переподключения не происходили синхронно.
package jitter

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Duration возвращает продолжительность с применённым джиттером.
// Результат находится в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	randMutex.Lock()
	jitter := globalRand.Float64() * jitterFactor * float64(d)
	randMutex.Unlock()
	return d + time.Duration(jitter)
}

// Backoff описывает политику экспоненциального отступления.
type Backoff struct {
	Base   time.Duration
	Max    time.Duration
	Factor float64
}

// NewBackoff создаёт политику с коэффициентом джиттера по умолчанию.
func NewBackoff(base, max time.Duration) Backoff {
	return Backoff{Base: base, Max: max, Factor: DefaultJitter}
}

// Delay вычисляет задержку без джиттера для попытки attempt (нумерация с нуля).
// Задержка удваивается на каждой попытке и ограничена Max.
func (b Backoff) Delay(attempt int) time.Duration {
	delay := b.Base
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= b.Max {
			return b.Max
		}
	}
	return delay
}

// Next возвращает задержку для попытки attempt с учётом джиттера.
func (b Backoff) Next(attempt int) time.Duration {
	return Duration(b.Delay(attempt), b.Factor)
}

// Sleep ждёт Next(attempt) либо отмены контекста.
// Возвращает ошибку контекста, если ожидание было прервано.
func (b Backoff) Sleep(ctx context.Context, attempt int) error {
	timer := time.NewTimer(b.Next(attempt))
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
