// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package recommend

import "sync/atomic"

// Handle is the atomic publication point between catalog loading and request
// handling. It starts empty; once a fully built Service is published, readers
// observe it completely or not at all. There is no partially initialized
// state to observe.
type Handle struct {
	svc atomic.Pointer[Service]
}

// NewHandle returns an empty handle.
func NewHandle() *Handle {
	return &Handle{}
}

// Publish makes the service visible to readers. Publishing a replacement
// catalog later is safe; in-flight requests finish on the old one.
func (h *Handle) Publish(svc *Service) {
	h.svc.Store(svc)
}

// Get returns the published service, or ErrNotReady before publication.
func (h *Handle) Get() (*Service, error) {
	svc := h.svc.Load()
	if svc == nil {
		return nil, ErrNotReady
	}
	return svc, nil
}

// Ready reports whether a service has been published.
func (h *Handle) Ready() bool {
	return h.svc.Load() != nil
}
