package router

import (
	"github.com/taskdeck/taskdeck/internal/application"
	"github.com/taskdeck/taskdeck/internal/cache"
	"github.com/taskdeck/taskdeck/internal/container"
	pginfra "github.com/taskdeck/taskdeck/internal/infrastructure/postgres"
	handlers "github.com/taskdeck/taskdeck/internal/interface/http"
	"github.com/taskdeck/taskdeck/internal/router/modules"
)

func buildAuthModule() *modules.AuthModule {
	repo := pginfra.NewUserRepository(container.GetPGPool())
	svc := application.NewUserService(repo, container.GetJWT(), container.GetLogger())
	handler := handlers.NewAuthHandler(
		svc,
		container.GetLogger(),
		container.GetConfig().CookieDomain,
		container.GetConfig().CookieSecure,
	)
	return modules.NewAuthModule(handler, container.GetJWT())
}

func buildTaskModule() *modules.TaskModule {
	repo := pginfra.NewTaskRepository(container.GetPGPool())

	var taskCache application.ListCache
	if rdb := container.GetRedis(); rdb != nil {
		taskCache = cache.NewTaskCache(rdb, container.GetConfig().CacheTTL)
	}

	svc := application.NewTaskService(repo, taskCache, container.GetLogger())
	handler := handlers.NewTaskHandler(svc, container.GetLogger())
	return modules.NewTaskModule(handler, container.GetJWT())
}

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	r.Add(buildAuthModule())
	r.Add(buildTaskModule())
	r.Add(modules.NewHealthModule(container.GetConfig(), container.GetPGPool()))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
