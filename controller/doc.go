/*
Package controller exposes an entity service at a transport boundary.

A Controller coerces key text to the service's key type, calls the service,
and reports every operation as a Result with an OK, FAIL or ERROR outcome.
Service errors never escape a Controller; they are logged and classified:

	c := controller.New[Person, int64](people, controller.WithMetrics(m))
	res := c.Delete(ctx, "5, 6,,7") // removes keys 5, 6 and 7
	fmt.Println(res.Text())         // "OK" or "FAIL"

Routes mounts a Controller on an httprouter.Router.
*/
package controller
