/*
Package session implements session management for the engine.

It serializes access to each session's progress so that every user
interaction runs as one atomic sequence (mutate, resolve, return) with no
partial-state observation, while unrelated sessions proceed in parallel.
Lock entries are reference counted and garbage collected when idle.
*/
package session
