// Package tool holds the internal services an entity exposes to its agents,
// such as a mail relay or a lookup API.
package tool

import (
	"fmt"
	"strings"
	"time"
)

// Spec is the editable part of a tool.
type Spec struct {
	EntityID    *uint
	Tool        string
	Name        string
	Server      string
	Port        int
	Password    string
	APILink     string
	Description string
	ClientURL   string
	Active      bool
}

func (s Spec) validate() error {
	if strings.TrimSpace(s.Tool) == "" {
		return fmt.Errorf("tool key is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(s.Server) == "" {
		return fmt.Errorf("server is required")
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("port %d is out of range", s.Port)
	}
	return nil
}

type Tool struct {
	id        uint
	spec      Spec
	deploying bool
	logs      string
	createdAt time.Time
	updatedAt time.Time
}

func NewTool(spec Spec) (*Tool, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Tool{spec: spec, createdAt: now, updatedAt: now}, nil
}

func ReconstructTool(id uint, spec Spec, deploying bool, logs string, createdAt, updatedAt time.Time) *Tool {
	return &Tool{id: id, spec: spec, deploying: deploying, logs: logs, createdAt: createdAt, updatedAt: updatedAt}
}

func (t *Tool) ID() uint             { return t.id }
func (t *Tool) Spec() Spec           { return t.spec }
func (t *Tool) EntityID() *uint      { return t.spec.EntityID }
func (t *Tool) Active() bool         { return t.spec.Active }
func (t *Tool) Deploying() bool      { return t.deploying }
func (t *Tool) Logs() string         { return t.logs }
func (t *Tool) CreatedAt() time.Time { return t.createdAt }
func (t *Tool) UpdatedAt() time.Time { return t.updatedAt }

func (t *Tool) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("tool ID is already set")
	}
	t.id = id
	return nil
}

func (t *Tool) Edit(spec Spec) error {
	if err := spec.validate(); err != nil {
		return err
	}
	t.spec = spec
	t.updatedAt = time.Now().UTC()
	return nil
}

// Deploy marks the tool as being rolled out and appends a log line.
func (t *Tool) Deploy(line string) {
	t.deploying = true
	t.appendLog(line)
}

// Deployed clears the deploying flag and activates the tool.
func (t *Tool) Deployed(line string) {
	t.deploying = false
	t.spec.Active = true
	t.appendLog(line)
}

func (t *Tool) appendLog(line string) {
	if line == "" {
		return
	}
	if t.logs != "" {
		t.logs += "\n"
	}
	t.logs += line
	t.updatedAt = time.Now().UTC()
}
