package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/megsikon/kanban-server/internal/config"
	"github.com/megsikon/kanban-server/internal/logger"
	"github.com/megsikon/kanban-server/internal/store"
	"github.com/megsikon/kanban-server/internal/store/sqlite"
)

// StoreHandle wraps the store so the injector can shut it down cleanly.
type StoreHandle struct {
	Store store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Store.Close()
}

// ProvideStore opens the SQLite store and registers it for shutdown.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	s, err := sqlite.Open(cfg.Database.Path, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	log.Info("Store opened", "path", cfg.Database.Path)

	return &StoreHandle{Store: s}, nil
}
