// Package redis wraps go-redis with the service's logging and component
// lifecycle. It backs the shared locale catalogue cache so several service
// instances fetch the platform's model list once per TTL.
//
//	client, err := redis.New(redis.Config{Enabled: true, Addr: "localhost:6379"}, log)
//	store := redis.NewTypedStore[[]locale.Info](client, "locales")
package redis
