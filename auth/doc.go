// Package auth provides the authentication strategies used by the Cloud
// Agents client.
//
// A Strategy turns held credentials into an Authorization header value. Two
// strategies are provided:
//
//   - Basic: "Basic " + base64(username:secret)
//   - Bearer: "Bearer " + token
//
// Strategies are immutable and perform no I/O, so the client computes the
// header once per binding and reuses it:
//
//	strategy, err := auth.NewBasic("username", "secret")
//	if err != nil {
//		log.Fatal(err)
//	}
//	client.Use(strategy)
package auth
