// Package auth issues and verifies bearer tokens and checks passwords.
// Authentication of a request depends only on the token; the credential
// store is consulted only at login.
package auth
