/*
Package condition describes structured filters and translates them into
parameterized WHERE clauses.

A Condition is an ordered list of Params, each a logical field name, an
Association and an operand:

	cond := condition.New().
	    Equals("Age", 30).
	    Like("Name", "bob").
	    In("ID", "1,2,3")

	stmt, err := condition.Translate(schema, cond)
	// stmt.Text: " WHERE age = ?  AND user_name LIKE ?  AND id IN (1,2,3) "
	// stmt.Args: [30 "%bob%"]

Field names are mapped to columns through the entity's storagemodels.Schema;
an unmapped field fails with a schema error. Bound values follow placeholder
order exactly, one per placeholder. In and NotIn lists are inlined only after
every element has been checked to be a numeric or quoted string literal.

Conditions travel as JSON:

	{"params":[{"name":"Age","association":"Equals","value":30}]}
*/
package condition
