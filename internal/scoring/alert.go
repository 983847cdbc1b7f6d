package scoring

import (
	"sync"
	"time"
)

// AlertPolicy throttles low-safety alerts during live tracking. An alert
// fires when the score drops below the threshold and the session has not
// alerted within the cooldown window, which stops alert storms while a
// user lingers in or re-enters a flagged area.
//
// State is kept per tracking session; concurrent sessions never share a
// last-alert time.
type AlertPolicy struct {
	threshold float64
	cooldown  time.Duration

	mu        sync.Mutex
	lastAlert map[string]time.Time
}

// NewAlertPolicy creates a policy with the given score threshold and
// minimum time between alerts per session
func NewAlertPolicy(threshold float64, cooldown time.Duration) *AlertPolicy {
	return &AlertPolicy{
		threshold: threshold,
		cooldown:  cooldown,
		lastAlert: make(map[string]time.Time),
	}
}

// ShouldAlert decides whether a new alert fires for this session at `now`,
// and records the fire time when it does. Each call evaluates the threshold
// independently; there is no separate clear threshold, so after the cooldown
// a still-low score re-fires immediately.
func (p *AlertPolicy) ShouldAlert(sessionID string, score float64, now time.Time) bool {
	if score >= p.threshold {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if last, ok := p.lastAlert[sessionID]; ok && now.Sub(last) < p.cooldown {
		return false
	}

	p.lastAlert[sessionID] = now
	return true
}

// EndSession drops a session's alert state. Safe to call for unknown sessions.
func (p *AlertPolicy) EndSession(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.lastAlert, sessionID)
}

// Threshold returns the configured score threshold
func (p *AlertPolicy) Threshold() float64 {
	return p.threshold
}
