// Package ciutil detects the execution environment (CI or local) and reads
// the environment variables shared by tests and tooling, such as the test
// database URL.
package ciutil
