// Package manifest builds the public manifest served for a project and
// caches its signature. Serving and signing themselves belong to callers:
// this package produces the bytes and remembers the last signature for
// them.
package manifest
