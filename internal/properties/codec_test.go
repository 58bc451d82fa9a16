package properties

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParse_Lines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Entries
	}{
		{"empty", "", nil},
		{"comment", "# hello world\n", Entries{Comment("hello world")}},
		{"comment without space", "#hello\n", Entries{Comment("hello")}},
		{"comment leading whitespace stripped", "#  \tindented\n", Entries{Comment("indented")}},
		{"blank", "\n", Entries{Blank()}},
		{"whitespace only is blank", "   \t\n", Entries{Blank()}},
		{"property", "foo=bar\n", Entries{Property("foo", "bar")}},
		{"value keeps delimiter", "org.gradle.jvmargs=-Xmx2048m -Dfile.encoding=UTF-8\n",
			Entries{Property("org.gradle.jvmargs", "-Xmx2048m -Dfile.encoding=UTF-8")}},
		{"key and value verbatim", "foo = bar \n", Entries{Property("foo ", " bar ")}},
		{"empty value", "foo=\n", Entries{Property("foo", "")}},
		{"escaped delimiter in key", `a\=b=c` + "\n", Entries{Property(`a\=b`, "c")}},
		{"escaped backslash before delimiter", `a\\=b` + "\n", Entries{Property(`a\\`, "b")}},
		{"no delimiter is passthrough", "android.useAndroidX\n", Entries{Passthrough("android.useAndroidX")}},
		{"empty key is passthrough", "=value\n", Entries{Passthrough("=value")}},
		{"indented comment is passthrough", "  # note\n", Entries{Passthrough("  # note")}},
		{"only escaped delimiter is passthrough", `a\=b` + "\n", Entries{Passthrough(`a\=b`)}},
		{"missing final newline", "a=1\nb=2", Entries{Property("a", "1"), Property("b", "2")}},
		{"carriage return kept in value", "a=1\r\n", Entries{Property("a", "1\r")}},
		{"trailing blank line", "a=1\n\n", Entries{Property("a", "1"), Blank()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseString(tt.input)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestSerialize(t *testing.T) {
	entries := Entries{
		Comment("expo-test"),
		Blank(),
		Property("foo", "bar"),
		Blank(),
		Comment("end-expo-test"),
	}

	got := string(Serialize(entries))
	want := "# expo-test\n\nfoo=bar\n\n# end-expo-test\n"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerialize_Passthrough(t *testing.T) {
	got := string(Serialize(Entries{Passthrough("  # odd line"), Property("a", "b")}))
	want := "  # odd line\na=b\n"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestRoundTrip_EntriesSurviveSerialize(t *testing.T) {
	sequences := []Entries{
		nil,
		{Blank()},
		{Comment("")},
		{Comment("Project-wide Gradle settings.")},
		{Property("android.useAndroidX", "true"), Property("hermesEnabled", "false")},
		{Property("org.gradle.jvmargs", "-Xmx2048m -XX:MaxMetaspaceSize=512m")},
		{Property(`weird\=key`, "v=w"), Property("k", "")},
		{Passthrough("android.enableJetifier"), Passthrough("  # indented")},
		{Comment("a"), Blank(), Blank(), Property("x", " spaced "), Comment("b # c")},
	}

	for i, entries := range sequences {
		if err := Validate(entries); err != nil {
			t.Fatalf("sequence %d: Validate() error = %v", i, err)
		}
		got := Parse(Serialize(entries))
		if diff := cmp.Diff(entries, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("sequence %d: Parse(Serialize(E)) mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestIdempotence_SerializedContent(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"# Project-wide Gradle settings.\n\norg.gradle.jvmargs=-Xmx2048m\nandroid.useAndroidX=true\n",
		"foo=bar\n\n# expo-test\n\nfoo=bar\n\n# end-expo-test\n",
		"weird line\n  indented=value\n",
	}

	for _, in := range inputs {
		first := Serialize(Parse([]byte(in)))
		second := Serialize(Parse(first))
		if string(first) != string(second) {
			t.Errorf("Serialize(Parse(%q)) not stable: %q then %q", in, first, second)
		}
		if string(first) != in {
			t.Errorf("Serialize(Parse(%q)) = %q, want input unchanged", in, first)
		}
	}
}

func TestSerialize_HandEditedFileNormalizesTerminator(t *testing.T) {
	got := string(Serialize(ParseString("a=1")))
	if got != "a=1\n" {
		t.Errorf("Serialize(Parse(%q)) = %q, want %q", "a=1", got, "a=1\n")
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{"comment with newline", Comment("a\nb")},
		{"comment with leading space", Comment(" a")},
		{"empty key", Property("", "v")},
		{"whitespace key", Property("  ", "v")},
		{"key starts with marker", Property("#k", "v")},
		{"key with delimiter", Property("a=b", "v")},
		{"key escapes delimiter", Property(`a\`, "v")},
		{"value with newline", Property("k", "a\nb")},
		{"passthrough that parses as property", Passthrough("a=b")},
		{"passthrough that parses as blank", Passthrough("  ")},
		{"blank with text", Entry{Kind: KindBlank, Text: "x"}},
		{"unknown kind", Entry{Kind: Kind(42)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate([]Entry{tt.entry}); err == nil {
				t.Errorf("Validate(%+v) = nil, want error", tt.entry)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	cases := map[Kind]string{
		KindComment:     "comment",
		KindBlank:       "blank",
		KindProperty:    "property",
		KindPassthrough: "passthrough",
		Kind(9):         "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
