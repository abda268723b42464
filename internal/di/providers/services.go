package providers

import (
	"github.com/samber/do/v2"

	"github.com/parleyapp/parley-server/internal/logger"
	"github.com/parleyapp/parley-server/internal/service"
	"github.com/parleyapp/parley-server/internal/validation"
)

// ProvideNotificationService provides the notification bus.
// The SSE manager doubles as its push emitter.
func ProvideNotificationService(i do.Injector) (*service.NotificationService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewNotificationService(storeHandle.Store, sseHandle.Manager, validation.New(), log.Logger), nil
}

// ProvideVoteService provides the vote ledger.
// The store resolves post identities, so it serves as the directory too.
func ProvideVoteService(i do.Injector) (*service.VoteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewVoteService(storeHandle.Store, storeHandle.Store, log.Logger), nil
}

// ProvideSolutionService provides the solution marker.
func ProvideSolutionService(i do.Injector) (*service.SolutionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	notifications := do.MustInvoke[*service.NotificationService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSolutionService(storeHandle.Store, storeHandle.Store, notifications, log.Logger), nil
}

// ProvideBookmarkService provides the bookmark store.
func ProvideBookmarkService(i do.Injector) (*service.BookmarkService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookmarkService(storeHandle.Store, storeHandle.Store, log.Logger), nil
}
