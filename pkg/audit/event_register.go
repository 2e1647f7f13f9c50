package audit

import "fmt"

// RegisterEvent records an account registration.
type RegisterEvent struct {
	Username string
	UserID   string
	ClientIP string
	Success  bool
	Reason   string
}

func (e RegisterEvent) MessageID() string {
	return "register"
}

func (e RegisterEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s registered", e.Username)
	}
	msg := fmt.Sprintf("%s failed to register", e.Username)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e RegisterEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e RegisterEvent) Facility() int {
	return FacilityAuth
}

func (e RegisterEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDSubject: {
			"user": e.Username,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "create",
			"result":    result(e.Success),
		},
	}
	if e.UserID != "" {
		sd[SDIDSubject]["id"] = e.UserID
	}
	return sd
}
