// Package health provides liveness and readiness probes.
//
// [LivenessHandler] always answers OK. [ReadinessHandler] runs a set of
// named [Checks] in parallel under a shared timeout (5s by default) and
// answers 503 when any of them fails. Any func(context.Context) error is a
// check, db.Healthcheck included.
//
// A pebble application mounts both with WithHealthChecks; an attached
// database helper is checked as "db":
//
//	app, err := pebble.New(
//	    pebble.WithConfigDir("configs"),
//	    pebble.WithHealthChecks(
//	        pebble.WithReadinessCheck("search", search.Ping),
//	    ),
//	)
//
// Responses are plain text unless the client asks for JSON with
// Accept: application/json or ?format=json:
//
//	OK
//	Service Unavailable: db, search
//
//	{"status":"unhealthy","checks":{"db":{"status":"unhealthy","error":"connection refused"}}}
//
// [Run] executes the same checks outside HTTP, for example from a startup
// hook; [Response.Err] wraps [ErrCheckFailed] with the failed check names.
// A check still running at the deadline fails with [ErrCheckTimeout].
package health
