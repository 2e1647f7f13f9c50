// Package audit records security-relevant events for shiplog.
//
// Events are written as RFC5424 syslog lines to stdout and, when
// SHIPLOG_AUDIT_DATABASE_URL is set, persisted to the audit_messages table.
//
// # Event Types
//
//   - RegisterEvent: a new account was created, or registration was refused
//   - AuthenticateEvent: a login succeeded or failed, with the internal reason
//   - TokenRejectedEvent: a request to a protected route carried no usable token
//
// # Usage
//
//	audit.Log(audit.AuthenticateEvent{
//		Username: "alice",
//		ClientIP: r.RemoteAddr,
//		Success:  true,
//	})
//
// Set SHIPLOG_AUDIT_ENABLED=false to turn audit logging off.
package audit
