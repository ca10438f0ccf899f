package organizer

import (
	"reflect"
	"testing"
)

func TestMergePlacementsSharesDestination(t *testing.T) {
	in := []Placement{
		{Dir: "/d", Name: "report", Files: []string{"/d/a", "/d/b"}},
		{Dir: "/d", Name: "photo", Files: []string{"/d/c", "/d/d"}},
		{Dir: "/d", Name: "report", Files: []string{"/d/e", "/d/f"}},
	}
	got := mergePlacements(in)
	want := []Placement{
		{Dir: "/d", Name: "report", Files: []string{"/d/a", "/d/b", "/d/e", "/d/f"}},
		{Dir: "/d", Name: "photo", Files: []string{"/d/c", "/d/d"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mergePlacements = %+v, want %+v", got, want)
	}
}
