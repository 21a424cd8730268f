/*
Package gormstore implements datastore.DataStore on SQL databases through gorm.

MySQL, PostgreSQL and SQLite are supported. Statements handed to
ExecuteQuery use '?' placeholders, which gorm rewrites for the driver:

	db, err := gormstore.Open(gormstore.Config{Driver: "sqlite", DSN: "people.db", Migrate: []any{&Person{}}})
	store, err := gormstore.New[Person, int64](db)
	svc := entitycrud.NewService[Person, int64](store, entitycrud.WithSchema(store.Schema()))

MySQL DSNs should set clientFoundRows=true. Without it the driver reports
matched rows whose values did not change as unaffected, and Update of an
unchanged entity reports false:

	user:pass@tcp(localhost:3306)/app?parseTime=true&clientFoundRows=true
*/
package gormstore
