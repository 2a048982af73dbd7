package environment

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

func TestFromPairs(t *testing.T) {
	s := FromPairs([]string{
		"PATH=/usr/bin",
		"EMPTY=",
		"EQUALS=a=b",
		"NOVALUE",
		"",
		"=C:=C:\\work",
		"PATH=/bin",
	})

	want := map[string]string{
		"PATH":   "/bin",
		"EMPTY":  "",
		"EQUALS": "a=b",
		"=C:":    "C:\\work",
	}
	assert.DeepEqual(t, want, s.Map())
	assert.Equal(t, s.Len(), 4)
}

func TestCapture(t *testing.T) {
	t.Setenv("ENVSCHEMA_TEST_VAR", "42")

	s := Capture()

	value, ok := s.Lookup("ENVSCHEMA_TEST_VAR")
	assert.Assert(t, ok)
	assert.Equal(t, value, "42")
}

func TestCaptureIsImmutable(t *testing.T) {
	t.Setenv("ENVSCHEMA_TEST_VAR", "before")

	s := Capture()
	t.Setenv("ENVSCHEMA_TEST_VAR", "after")

	value, _ := s.Lookup("ENVSCHEMA_TEST_VAR")
	assert.Equal(t, value, "before")

	m := s.Map()
	m["ENVSCHEMA_TEST_VAR"] = "changed"
	value, _ = s.Lookup("ENVSCHEMA_TEST_VAR")
	assert.Equal(t, value, "before")
}

func TestFromMapCopies(t *testing.T) {
	src := map[string]string{"A": "1"}
	s := FromMap(src)
	src["A"] = "2"

	value, _ := s.Lookup("A")
	assert.Equal(t, value, "1")
}

func TestNamesSorted(t *testing.T) {
	s := FromMap(map[string]string{"B": "", "A": "", "C": ""})
	assert.DeepEqual(t, s.Names(), []string{"A", "B", "C"})
}

func TestInstance(t *testing.T) {
	s := FromMap(map[string]string{"PATH": "/usr/bin", "COUNT": "5"})

	got := s.Instance()
	want := map[string]any{"PATH": "/usr/bin", "COUNT": "5"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Instance() mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptySnapshot(t *testing.T) {
	var s Snapshot

	assert.Equal(t, s.Len(), 0)
	assert.Equal(t, len(s.Instance()), 0)
	_, ok := s.Lookup("PATH")
	assert.Assert(t, !ok)
}
