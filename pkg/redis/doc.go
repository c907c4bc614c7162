// Package redis provides Redis connectivity with URL-based configuration
// and connection retry. It is used for the unread-count cache in front of
// the notification store.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
package redis
