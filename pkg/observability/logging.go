package observability

import (
	"log/slog"

	"github.com/aretw0/atelier/pkg/domain"
)

// LoggingHooks returns change hooks that audit structural changes to logger.
func LoggingHooks(logger *slog.Logger) domain.ChangeHooks {
	if logger == nil {
		return domain.ChangeHooks{}
	}
	component := func(msg string) func(*domain.ComponentEvent) {
		return func(e *domain.ComponentEvent) {
			logger.Info(msg,
				"name", domain.NameOf(e.Component),
				"type", domain.TypeName(e.Component),
			)
		}
	}
	return domain.ChangeHooks{
		OnComponentAdded:    component("component_added"),
		OnComponentRemoving: component("component_removing"),
		OnComponentChanged: func(e *domain.ComponentChangedEvent) {
			logger.Debug("component_changed",
				"type", domain.TypeName(e.Component),
				"member", e.Member,
			)
		},
		OnComponentRename: func(e *domain.ComponentRenameEvent) {
			logger.Info("component_rename",
				"old_name", e.OldName,
				"new_name", e.NewName,
			)
		},
	}
}
