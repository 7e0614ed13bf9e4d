package goSession

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const (
	auditEventLoginSuccess     = "login_success"
	auditEventLoginFailure     = "login_failure"
	auditEventSessionCreated   = "session_created"
	auditEventSessionDestroyed = "session_destroyed"
	auditEventSessionExpired   = "session_expired"
	auditEventRehydrateStale   = "rehydrate_stale_identity"
	auditEventUnauthorized     = "unauthorized_request"
	auditEventProviderError    = "identity_provider_error"
	auditEventStoreError       = "session_store_error"
)

// auditSessionRef derives a short non-reversible reference for a session
// token. The raw token is a bearer credential and must never reach a sink.
func auditSessionRef(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:6])
}

func (e *Engine) auditEmit(ctx context.Context, event AuditEvent) {
	if e == nil || e.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	e.audit.Emit(ctx, event)
}

func (e *Engine) auditLogin(ctx context.Context, username, identityID string, err error) {
	event := AuditEvent{
		EventType:  auditEventLoginSuccess,
		Username:   username,
		IdentityID: identityID,
		Success:    true,
	}
	if err != nil {
		event.EventType = auditEventLoginFailure
		event.Success = false
		event.Error = err.Error()
		event.IdentityID = ""
	}
	e.auditEmit(ctx, event)
}

func (e *Engine) auditSession(ctx context.Context, eventType, token string) {
	e.auditEmit(ctx, AuditEvent{
		EventType:  eventType,
		SessionRef: auditSessionRef(token),
		Success:    true,
	})
}

func (e *Engine) auditFailure(ctx context.Context, eventType, token string, err error) {
	event := AuditEvent{
		EventType:  eventType,
		SessionRef: auditSessionRef(token),
		Success:    false,
	}
	if err != nil {
		event.Error = err.Error()
	}
	e.auditEmit(ctx, event)
}
