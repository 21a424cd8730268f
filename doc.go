/*
Package entitycrud provides a generic create/read/update/delete layer over
pluggable datastores, with structured query conditions translated into
parameterized SQL-like clauses.

The library is organized around a small set of pieces:
  - registry: resolves the entity and key types of a generic instance and maps entity types to table schemas
  - condition: the Condition model and its translation into a WHERE clause
  - datastore: the DataStore contract and its backends (gorm, DynamoDB, in-memory)
  - controller: outcome-reporting operations and HTTP routes over a Service

Basic Usage:

	// Describe how the entity maps onto its table
	registry.RegisterSchema[Person](storagemodels.Schema{
		Table:   "people",
		Key:     "id",
		Columns: map[string]string{"age": "age", "name": "name"},
	})

	// Build a service over a datastore
	store, _ := gormstore.New[Person, int64](db)
	people := entitycrud.NewService[Person, int64](store)

	// Query with a condition
	cond := condition.New().Equals("age", 30)
	adults, err := people.Query(ctx, cond)

Services for several entity types can be kept in a Catalog:

	catalog := entitycrud.NewCatalog()
	entitycrud.RegisterService(catalog, "people", people)
	svc, _ := entitycrud.ServiceFor[Person, int64](catalog)
*/
package entitycrud
