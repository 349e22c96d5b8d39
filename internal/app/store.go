package app

import (
	"github.com/adanyl0v/nonbon/internal/models"
	"github.com/adanyl0v/nonbon/internal/services"
)

var globalFocusService services.FocusService

// InitFocusService creates the process-wide item store. Items live only
// as long as the process does.
func InitFocusService() {
	globalFocusService = services.NewFocusService(
		globalLogger.With().
			Str("component", "focus_service").
			Logger(),
	)
	globalLogger.Info().
		Int("max_active", models.MaxActive).
		Msg("initialized focus service")
}
