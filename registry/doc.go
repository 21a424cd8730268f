/*
Package registry resolves generic type bindings and manages table schemas for EntityCRUD.

The registry system enables:
  - Recovery of the (entity, key) types a generic component was built with
  - Explicit, startup-time schema registration instead of struct metadata
  - Schema documents loaded from YAML

Type Resolution:
Generic components embed a zero-size witness and are resolved once:

	type Service[T Entity[K], K comparable] struct {
	    registry.Declaration[T, K]
	    binding registry.TypeBinding
	}

	binding, err := registry.ResolveBinding(svc)     // errors.IsNotResolved(err) on failure
	keyType, ok := registry.ResolveGenericArgument(svc, 1)

Resolution never panics. Non-declared instances, out-of-range indices and
interface-typed arguments all report "not resolved".

Schema Registry:
Associates Go types with table and column names:

	registry.RegisterSchema[User](storagemodels.Schema{
	    Table: "users",
	    Key:   "ID",
	    Columns: map[string]string{"ID": "id", "Name": "user_name"},
	})

	schemas, _ := registry.LoadSchemaFile(f)
	registry.RegisterSchema[User](schemas["User"])

The registry is thread-safe and should be populated during initialization.
*/
package registry
