/*
Package domain contains the core domain models for the Espalier engine.

It defines the fundamental entities of a study plan: Courses linked by
prerequisite and co-requisite edges, the immutable Curriculum graph built
from them, and the mutable per-session Progress overlay. This package is
kept pure and free of external dependencies like I/O or persistence,
following Hexagonal Architecture principles.

# Key Entities

  - Course: A single subject with its prerequisite/co-requisite edges.
  - Curriculum: The immutable, validated graph of a study plan.
  - Progress: The per-session mapping of course code to Status.
  - Eligibility: The per-course label (completed, eligible, locked)
    produced by a resolution pass.
*/
package domain
