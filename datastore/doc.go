/*
Package datastore defines the persistence contract consumed by EntityCRUD.

The main interface is DataStore[T, K], implemented by every backend:

	type DataStore[T any, K comparable] interface {
	    Save(ctx context.Context, entity T) (any, error)
	    Update(ctx context.Context, entity T) (int64, error)
	    Find(ctx context.Context, key K) (*T, error)
	    List(ctx context.Context) ([]T, error)
	    Delete(ctx context.Context, entity T) (int64, error)
	    ExecuteQuery(ctx context.Context, stmt storagemodels.Statement) ([]T, error)
	}

The core never issues SQL itself; it hands a Statement to ExecuteQuery and the
backend binds, executes and materializes rows. Backends own transactions,
locking and connection handling.

Implementations:
  - gormstore: SQL databases through gorm (postgres, mysql, sqlite)
  - ddb: DynamoDB, with PartiQL for ExecuteQuery
  - mock: in-memory implementation with failure injection for testing
*/
package datastore
