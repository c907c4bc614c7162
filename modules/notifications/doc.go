// Package notifications is the server of record for the notification
// feed: storage backends (in-memory, Postgres, MongoDB), a Redis-backed
// unread-count cache, the service enforcing per-user scoping, and the
// HTTP router serving the feed API the client library consumes.
//
// Wiring is explicit: pick a Storage, optionally wrap it in a
// CountCache, build a Service, and mount the Router behind whatever
// authentication resolves the acting user:
//
//	storage := notifications.NewPostgresStorage(pool)
//	svc, err := notifications.NewService(notifications.NewCountCache(storage, rdb))
//	if err != nil {
//		return err
//	}
//	r.Mount("/", notifications.Router(svc, identityFromSession))
package notifications
