/*
Package datasource seeds memstore stores from external systems.

A Source[T] reads entities; Warm streams a whole selection into a store and
Fetch loads individual identifiers the store is missing. Both go through the
store's Set, so the store's validation and subscribers see every entity.
Nothing is ever written back: a store stays a cache.

Implementations:
  - ddb: DynamoDB source (query or scan, paginated, with retries)
  - mock: in-memory source for tests

Usage:

	src := ddb.New[User](client, cfg)
	stats, err := datasource.Warm[User](ctx, users, src, nil)
*/
package datasource
