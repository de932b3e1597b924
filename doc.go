/*
Package espalier turns university study plans into prerequisite and
co-requisite graphs and answers one question about them: given what a
student has completed and is currently taking, which courses can they
enroll in next?

The Engine is the high-level entry point. It compiles plan documents into
immutable Curriculum graphs, keeps a per-session Progress overlay, and
recomputes the full eligibility mapping after every status change:

	eng, _ := espalier.New(
		espalier.WithPlanSource(file.New("planes")),
	)
	elig, _ := eng.StartSession(ctx, "demo", "itam-computacion")
	elig, _ = eng.UpdateStatus(ctx, "demo", "COM-11101", domain.StatusCompleted)

Every structural invariant (no dangling references, no self-loops, no
prerequisite cycles) is enforced once at load time, so eligibility
resolution is a one-hop check per course.
*/
package espalier
