// Package service provides application-level operations on users and media.
// Services enforce ownership rules and coordinate the data store with the
// object store; request validation happens before they are called.
package service
