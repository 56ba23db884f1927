package dto

import (
	"time"

	"github.com/deskhub/deskhub/internal/domain/tool"
	"github.com/deskhub/deskhub/internal/shared/mapper"
)

// ToolDTO never carries the tool password; it is write-only.
type ToolDTO struct {
	ID          uint      `json:"id"`
	Entity      *uint     `json:"entity"`
	Tool        string    `json:"tool"`
	Name        string    `json:"name"`
	Server      string    `json:"server"`
	Port        int       `json:"port"`
	APILink     string    `json:"api_link"`
	Active      bool      `json:"active"`
	Deploying   bool      `json:"deploying"`
	Logs        string    `json:"logs"`
	Description string    `json:"description"`
	ClientURL   string    `json:"client_url"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToToolDTO(t *tool.Tool) *ToolDTO {
	s := t.Spec()
	return &ToolDTO{
		ID:          t.ID(),
		Entity:      s.EntityID,
		Tool:        s.Tool,
		Name:        s.Name,
		Server:      s.Server,
		Port:        s.Port,
		APILink:     s.APILink,
		Active:      s.Active,
		Deploying:   t.Deploying(),
		Logs:        t.Logs(),
		Description: s.Description,
		ClientURL:   s.ClientURL,
		CreatedAt:   t.CreatedAt(),
	}
}

func ToToolDTOs(list []*tool.Tool) []*ToolDTO {
	out := mapper.MapSlicePtrSkipNil(list, ToToolDTO)
	if out == nil {
		return []*ToolDTO{}
	}
	return out
}
