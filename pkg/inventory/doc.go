// Package inventory implements the validated create path for inventory objects.
//
// AddObject accepts the raw request body, checks the required fields and
// the optional parent reference, and writes the object and its relationship
// inside a single transaction so an object never commits without the link
// that was requested for it.
package inventory
