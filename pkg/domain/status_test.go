package domain

import "testing"

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusNotTaken, StatusInProgress, StatusCompleted} {
		if !s.Valid() {
			t.Errorf("%d should be valid", int(s))
		}
	}
	for _, s := range []Status{-1, 3, 99} {
		if s.Valid() {
			t.Errorf("%d should be invalid", int(s))
		}
	}
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusNotTaken:   "not-taken",
		StatusInProgress: "in-progress",
		StatusCompleted:  "completed",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(s), s.String(), want)
		}
	}
}

func TestProgressCloneIsIndependent(t *testing.T) {
	cur := newTestCurriculum(&Course{Code: "A"})
	p := NewProgress(cur)
	clone := p.Clone()
	clone["A"] = StatusCompleted

	if p["A"] != StatusNotTaken {
		t.Error("mutating the clone leaked into the original")
	}
}

func TestProgressReset(t *testing.T) {
	cur := newTestCurriculum(
		&Course{Code: "A", DeclaredStatus: StatusCompleted},
		&Course{Code: "B", DeclaredStatus: StatusInProgress},
	)
	p := NewProgress(cur)
	p.Reset()

	for code, status := range p {
		if status != StatusNotTaken {
			t.Errorf("%s not reset: %s", code, status)
		}
	}
}
