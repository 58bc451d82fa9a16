package properties

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEntries_Find(t *testing.T) {
	es := ParseString("# a=1\na=1\n b = 2\na=3\n")

	if got := es.Find("a"); got != 1 {
		t.Errorf("Find(a) = %d, want 1", got)
	}
	if got := es.Find("b"); got != 2 {
		t.Errorf("Find(b) = %d, want 2", got)
	}
	if got := es.Find("missing"); got != -1 {
		t.Errorf("Find(missing) = %d, want -1", got)
	}
}

func TestEntries_Get(t *testing.T) {
	es := ParseString("b = 2 \n")

	v, ok := es.Get("b")
	if !ok || v != "2" {
		t.Errorf("Get(b) = %q, %v, want %q, true", v, ok, "2")
	}
	if _, ok := es.Get("c"); ok {
		t.Error("Get(c) ok = true, want false")
	}
}

func TestEntries_UpsertReplacesInPlace(t *testing.T) {
	es := ParseString("# header\nfoo=old\nbar=1\n")
	es.Upsert("foo", "new")

	want := "# header\nfoo=new\nbar=1\n"
	if got := string(Serialize(es)); got != want {
		t.Errorf("after Upsert = %q, want %q", got, want)
	}
}

func TestEntries_UpsertAppends(t *testing.T) {
	var es Entries
	es.Upsert("foo", "bar")
	es.Upsert("baz", "qux")

	want := Entries{Property("foo", "bar"), Property("baz", "qux")}
	if diff := cmp.Diff(want, es); diff != "" {
		t.Errorf("Upsert mismatch (-want +got):\n%s", diff)
	}
}

func TestEntries_Append(t *testing.T) {
	var es Entries
	es.Append(Comment("expo-test"), Blank())
	es.Append(Property("foo", "bar"))

	if len(es) != 3 {
		t.Fatalf("len = %d, want 3", len(es))
	}
	if es[2].Key != "foo" {
		t.Errorf("es[2].Key = %q, want foo", es[2].Key)
	}
}

func TestEntries_Remove(t *testing.T) {
	es := ParseString("a=1\nb=2\na=3\n")

	if !es.Remove("a") {
		t.Fatal("Remove(a) = false, want true")
	}
	if got := string(Serialize(es)); got != "b=2\n" {
		t.Errorf("after Remove = %q, want %q", got, "b=2\n")
	}
	if es.Remove("a") {
		t.Error("second Remove(a) = true, want false")
	}
}

func TestEntries_CloneIsIndependent(t *testing.T) {
	es := Entries{Property("a", "1")}
	c := es.Clone()
	c.Upsert("a", "2")

	if es[0].Value != "1" {
		t.Errorf("original mutated: %q", es[0].Value)
	}
	if Entries(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}
