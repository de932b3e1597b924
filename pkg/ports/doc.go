/*
Package ports defines the driven ports (interfaces) for the Espalier engine.

These interfaces decouple the core logic from external implementations,
allowing the engine to work with various plan sources and progress
backends.

# Key Interfaces

  - PlanSource: Responsible for listing and loading raw plan documents
    (e.g., from a directory of JSON/YAML files or from memory).
  - ProgressStore: Responsible for persisting and loading per-session
    student Progress.
*/
package ports
