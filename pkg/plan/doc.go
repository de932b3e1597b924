/*
Package plan defines the exchange format for curriculum documents.

A plan document maps each course code to its attributes (name, credits,
prerequisite and co-requisite codes, status, semester). Documents travel
as JSON or YAML; this package decodes raw bytes into a typed Document,
collecting every field-level problem into an AggregateError instead of
failing on the first one, and encodes a Document back into the same shape
so exports round-trip through the loader.

Structural validation (dangling references, self-references, cycles) is
not done here; that is the compiler's job.
*/
package plan
