/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

Items are marshaled by the entity's json tags. Key attributes are derived
through a KeyTemplate, which supports single-table designs:

	keys := ddb.KeyTemplate{
	    "PK": "RATING#{id}",
	    "SK": "RATING#{id}",
	}
	store, err := ddb.New[RatingSystem, string](client, "main", "id",
	    ddb.WithKeyTemplate(keys),
	    ddb.WithEntityType("RatingSystem"),
	)

Save and Update are conditional puts, so Save never overwrites and Update
never creates. ExecuteQuery runs PartiQL through ExecuteStatement; LIKE and
IN conditions cannot be expressed there and are rejected.
*/
package ddb
