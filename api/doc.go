// Package api exposes the batch orchestrator, the live transcription session
// and the transcript edit ledger over HTTP.
//
// Handlers are registered on a gin router:
//
//	h := api.New(svc, ledger.New(log), log,
//		api.WithLocales(catalogue),
//		api.WithSession(session),
//	)
//	h.Register(srv.GinEngine())
//
// Failures are written as the errors package's JSON envelope. Degraded
// results from the orchestrator are not failures: they are returned with a
// 200 status and a "degraded" field.
package api
