package audit

import "fmt"

// TokenRejectedEvent records a request to a protected route that was refused.
type TokenRejectedEvent struct {
	ClientIP string
	Method   string
	Path     string
	Reason   string
}

func (e TokenRejectedEvent) MessageID() string {
	return "token-rejected"
}

func (e TokenRejectedEvent) Message() string {
	return fmt.Sprintf("rejected %s %s: %s", e.Method, e.Path, e.Reason)
}

func (e TokenRejectedEvent) Severity() Severity {
	return SeverityWarning
}

func (e TokenRejectedEvent) Facility() int {
	return FacilityAuth
}

func (e TokenRejectedEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "authorize",
			"result":    "failure",
			"path":      e.Path,
		},
	}
}
