/*
Package storagemodels defines the value types shared by every EntityCRUD package.

Key Types:

Entity:
Any record exposing a primary key:

	type User struct {
	    ID   int64
	    Name string
	}

	func (u User) PrimaryKey() int64 { return u.ID }

Schema:
Logical field names mapped to storage columns for one entity type:

	schema := Schema{
	    Table: "users",
	    Key:   "ID",
	    Columns: map[string]string{
	        "ID":   "id",
	        "Name": "user_name",
	    },
	}

Statement:
Clause text with its bound values in placeholder order:

	stmt := Statement{Text: " WHERE user_name LIKE ? ", Args: []any{"%bob%"}}

These types carry no behavior beyond lookups so every backend can depend on them.
*/
package storagemodels
