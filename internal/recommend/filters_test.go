package recommend

import (
	"testing"

	"travelmate/internal/directory"
)

func TestApplyPeopleHardFiltersAgeGap(t *testing.T) {
	snap := directory.NewSnapshot()
	viewer := baseUser("viewer", "Toronto")
	viewer.Age = 22
	viewer.PreferNearAge = true
	snap.AddUser(viewer)

	near := baseUser("near", "Toronto")
	near.Age = 27
	snap.AddUser(near)

	far := baseUser("far", "Toronto")
	far.Age = 28
	snap.AddUser(far)

	younger := baseUser("younger", "Toronto")
	younger.Age = 18
	snap.AddUser(younger)

	out := ApplyPeopleHardFilters(snap, "viewer", []string{"near", "far", "younger"})
	if !contains(out, "near") {
		t.Fatal("gap of exactly 5 should pass")
	}
	if contains(out, "far") {
		t.Fatal("gap of 6 should be dropped")
	}
	if !contains(out, "younger") {
		t.Fatal("gap of 4 below should pass")
	}
}

func TestApplyPeopleHardFiltersVerifiedOnly(t *testing.T) {
	snap := directory.NewSnapshot()
	viewer := baseUser("viewer", "Toronto")
	viewer.VerifiedOnly = true
	snap.AddUser(viewer)

	full := baseUser("full", "Toronto")
	snap.AddUser(full)

	noAge := baseUser("no_age", "Toronto")
	noAge.AgeVerified = false
	snap.AddUser(noAge)

	noStudent := baseUser("no_student", "Toronto")
	noStudent.VerifiedStudent = false
	snap.AddUser(noStudent)

	out := ApplyPeopleHardFilters(snap, "viewer", []string{"full", "no_age", "no_student"})
	if len(out) != 1 || out[0] != "full" {
		t.Fatalf("want only fully verified candidate, got %v", out)
	}
}

func TestApplyPeopleHardFiltersNoPreferences(t *testing.T) {
	snap := directory.NewSnapshot()
	viewer := baseUser("viewer", "Toronto")
	viewer.Age = 22
	snap.AddUser(viewer)

	old := baseUser("old", "Toronto")
	old.Age = 40
	old.VerifiedStudent = false
	old.AgeVerified = false
	snap.AddUser(old)

	out := ApplyPeopleHardFilters(snap, "viewer", []string{"old", "dangling"})
	if !contains(out, "old") {
		t.Fatal("filters applied without preferences set")
	}
	if contains(out, "dangling") {
		t.Fatal("dangling candidate id survived")
	}
}
