package providers

import (
	"github.com/samber/do/v2"

	"github.com/megsikon/kanban-server/internal/api"
	"github.com/megsikon/kanban-server/internal/logger"
	"github.com/megsikon/kanban-server/internal/repo"
)

// ProvideRepositories wires the entity repositories on top of the store.
func ProvideRepositories(i do.Injector) (*api.Repositories, error) {
	handle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &api.Repositories{
		Tags:  repo.NewTagRepository(handle.Store, log.Logger),
		Users: repo.NewUserRepository(handle.Store, log.Logger),
		Items: repo.NewWorkItemRepository(handle.Store, log.Logger),
	}, nil
}
