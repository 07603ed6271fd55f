// Package migrations contains the schema migration files. Each file
// registers itself via init(), so importing this package (see
// cmd/agroasha/main.go) is enough to make every migration available to the
// runner.
package migrations
