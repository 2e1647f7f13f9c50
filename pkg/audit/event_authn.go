package audit

import "fmt"

// AuthenticateEvent records a login attempt. Reason is the internal cause of
// a failure and never reaches the client.
type AuthenticateEvent struct {
	Username string
	UserID   string
	ClientIP string
	Success  bool
	Reason   string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated", e.Username)
	}
	msg := fmt.Sprintf("%s failed to authenticate", e.Username)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "login",
			"result":    result(e.Success),
		},
	}
	if e.UserID != "" {
		sd[SDIDAuth]["id"] = e.UserID
	}
	return sd
}
