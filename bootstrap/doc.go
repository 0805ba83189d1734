// Package bootstrap runs a speechkit binary through its lifecycle.
//
// An App starts its registered components in order, runs configure
// callbacks and hooks, prints a startup summary and stops everything in
// reverse order on shutdown. Run blocks until a signal arrives; RunTask
// runs one finite task, as the CLI subcommands do.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(storageComponent)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*AppConfig]) error {
//	    return wireRoutes(a)
//	})
//	err = app.Run(ctx)
package bootstrap
