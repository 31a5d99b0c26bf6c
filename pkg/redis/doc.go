// Package redis connects to Redis and provides a session.Store backed by it.
//
// Connect retries the initial ping according to Config, Healthcheck adapts a
// client to a readiness probe, and Store maps session records onto Redis
// hashes:
//
//	Exists      EXISTS key
//	Expire      EXPIRE key seconds
//	GetSingle   HGET key default
//	SetSingle   HSET key default value
//	GetMultiple HMGET key field...
//	SetMultiple HSET key field value...
//
// Every command failure is joined with ErrCommandFailed. Invalid arguments
// return the session package sentinels before any command is sent.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := redis.NewStoreFromConfig(client, cfg)
//	mw, err := session.New(session.WithStore(store))
package redis
