package valueobjects

import "fmt"

type Severity string

const (
	SeverityMinor    Severity = "MINOR"
	SeverityMajor    Severity = "MAJOR"
	SeverityCritical Severity = "CRITICAL"
)

func (s Severity) String() string {
	return string(s)
}

func (s Severity) IsValid() bool {
	switch s {
	case SeverityMinor, SeverityMajor, SeverityCritical:
		return true
	}
	return false
}

// TicketType routes a ticket to the support queue or to production.
type TicketType string

const (
	TypeSupport TicketType = "Support"
	TypeProd    TicketType = "Prod"
)

func (t TicketType) String() string {
	return string(t)
}

func (t TicketType) IsValid() bool {
	return t == TypeSupport || t == TypeProd
}

func NewSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return sev, nil
}
