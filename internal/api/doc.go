// Package api provides the HTTP handlers of the media API.
//
// Every handler follows the same pipeline: authentication is enforced by
// middleware, the request is decoded and validated, the service performs
// authorization and data access, and the result is shaped into JSON. Any
// error along the way is passed to HandleAPIError, which is the only place
// errors are turned into responses.
package api
