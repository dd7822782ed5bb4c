package internal

import (
	"github.com/flowstate-health/flowstate-tui/api"
	"github.com/flowstate-health/flowstate-tui/health"
)

// Services holds the initialized external collaborators for one profile.
type Services struct {
	Backend    api.API
	Health     health.Provider
	Transcribe Transcriber
}

// NewServices creates a Services container from the given collaborators.
func NewServices(backend api.API, provider health.Provider, transcriber Transcriber) *Services {
	return &Services{
		Backend:    backend,
		Health:     provider,
		Transcribe: transcriber,
	}
}
