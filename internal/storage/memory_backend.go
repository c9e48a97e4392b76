package storage

import (
	"context"
	"sync"

	"github.com/sandeepkv93/lifeboost/internal/model"
)

// MemoryBackend keeps the encoded snapshot in memory. Saves still go
// through the codec so round-trip behaviour matches the durable backends.
type MemoryBackend struct {
	mu      sync.Mutex
	payload []byte
	saves   int
	loadErr error
	saveErr error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// NewMemoryBackendWithPayload seeds the backend with raw snapshot bytes.
func NewMemoryBackendWithPayload(raw []byte) *MemoryBackend {
	return &MemoryBackend{payload: append([]byte(nil), raw...)}
}

func (b *MemoryBackend) Load(_ context.Context) (model.Record, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loadErr != nil {
		return model.Record{}, false, failure("load", b.loadErr)
	}
	if b.payload == nil {
		return model.Record{}, false, nil
	}
	rec, err := DecodeSnapshot(b.payload)
	if err != nil {
		return model.Record{}, false, err
	}
	return rec, true, nil
}

func (b *MemoryBackend) Save(_ context.Context, rec model.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saveErr != nil {
		return failure("save", b.saveErr)
	}
	payload, err := EncodeSnapshot(rec)
	if err != nil {
		return err
	}
	b.payload = payload
	b.saves++
	return nil
}

func (b *MemoryBackend) Close() error { return nil }

// FailLoads makes every following Load fail with err (nil clears it).
func (b *MemoryBackend) FailLoads(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loadErr = err
}

// FailSaves makes every following Save fail with err (nil clears it).
func (b *MemoryBackend) FailSaves(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saveErr = err
}

func (b *MemoryBackend) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}

func (b *MemoryBackend) Payload() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.payload...)
}
