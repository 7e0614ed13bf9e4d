package internaldefs

import (
	goSession "github.com/MrEthical07/goSession"
)

// CounterDef binds a [goSession.MetricID] to its exported metric name.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goSession.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session engine.
var CounterDefs = []CounterDef{
	{ID: goSession.MetricLoginSuccess, Name: "gosession_login_success_total", Help: "Successful login attempts."},
	{ID: goSession.MetricLoginFailure, Name: "gosession_login_failure_total", Help: "Failed login attempts (unknown user and wrong secret are one bucket)."},
	{ID: goSession.MetricSessionCreated, Name: "gosession_session_created_total", Help: "Sessions minted by resolution."},
	{ID: goSession.MetricSessionDestroyed, Name: "gosession_session_destroyed_total", Help: "Sessions destroyed by logout."},
	{ID: goSession.MetricSessionExpired, Name: "gosession_session_expired_total", Help: "Sessions evicted by idle timeout."},
	{ID: goSession.MetricRehydrateStale, Name: "gosession_rehydrate_stale_total", Help: "Identity references that no longer resolve."},
	{ID: goSession.MetricUnauthorized, Name: "gosession_unauthorized_total", Help: "Requests rejected by the authorization gate."},
	{ID: goSession.MetricProviderError, Name: "gosession_provider_error_total", Help: "Identity-store backend failures."},
	{ID: goSession.MetricStoreError, Name: "gosession_store_error_total", Help: "Session-store backend failures."},
}

// AuditDroppedName is the metric name for audit events discarded under
// dispatcher back-pressure.
const AuditDroppedName = "gosession_audit_dropped_total"

// AuditDroppedHelp documents [AuditDroppedName].
const AuditDroppedHelp = "Dropped audit events due to dispatcher backpressure."
