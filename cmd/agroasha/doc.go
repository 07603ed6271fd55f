// The agroasha command runs and manages the AgroAsha catalog service.
//
//	agroasha serve             # start the API server
//	agroasha migrate           # run pending migrations
//	agroasha migrate:rollback  # roll back the last batch
//	agroasha migrate:status    # show migration status
//	agroasha seed              # seed starter data
//	agroasha route:list        # list API routes
package main
