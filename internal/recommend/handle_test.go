// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package recommend

import (
	"errors"
	"sync"
	"testing"
)

func TestHandleStartsEmpty(t *testing.T) {
	t.Parallel()

	h := NewHandle()
	if h.Ready() {
		t.Error("new handle should not be ready")
	}
	if _, err := h.Get(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Get() err = %v, want ErrNotReady", err)
	}
}

func TestHandlePublish(t *testing.T) {
	h := NewHandle()
	svc := fiveTrackService(t)

	h.Publish(svc)

	if !h.Ready() {
		t.Error("handle should be ready after Publish")
	}
	got, err := h.Get()
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != svc {
		t.Error("Get() returned a different service")
	}
}

func TestHandleConcurrentReaders(t *testing.T) {
	h := NewHandle()
	svc := fiveTrackService(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Readers must observe either nothing or a complete service
			if s, err := h.Get(); err == nil {
				if s.CatalogSize() != 5 {
					t.Error("observed incomplete service")
				}
			}
		}()
	}
	h.Publish(svc)
	wg.Wait()

	if got, err := h.Get(); err != nil || got.CatalogSize() != 5 {
		t.Errorf("final Get() = %v, %v", got, err)
	}
}
