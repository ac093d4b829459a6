/*
Package ddb provides a DynamoDB data source for warming memstore stores.

The Source reads a table whose partition key attribute holds the entity
identifier (KeyAttribute, "ID" by default):

  - GetOne uses GetItem on the key attribute
  - Stream queries when the params carry a key condition and scans otherwise,
    page by page, retrying throttling and server errors

Configuration:
LoadConfig reads a YAML file, then a .env file, then MEMSTORE_DDB_* variables:

	# ddb.yaml
	region: us-east-1
	table: ratings
	keyAttribute: ID

	cfg, err := ddb.LoadConfig("ddb.yaml")
	client, err := ddb.NewClient(ctx, cfg)
	src := ddb.New[RatingSystem](client, cfg)

	params := ddb.Partition("ClubID", "oakville").
	    OnIndex("GSI1").
	    SortKeyPrefix("SK", "RATING#").
	    Build()
	stats, err := datasource.Warm[RatingSystem](ctx, ratings, src, params)
*/
package ddb
