// Package redis connects to Redis with retries and exposes a health check.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	checks["redis"] = redis.Healthcheck(client)
//
// Config fields are read from REDIS_* environment variables via
// github.com/caarlos0/env. The landing service only needs Redis when rate
// limits are shared between instances.
package redis
