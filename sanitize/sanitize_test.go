package sanitize

import (
	"strings"
	"testing"
)

func TestCleanRemovesScriptBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"script with content", `<script>alert("xss")</script>Hello`, "Hello"},
		{"uppercase script", `<SCRIPT>alert(1)</SCRIPT>World`, "World"},
		{"script with attributes", `<script type="text/javascript">x()</script>ok`, "ok"},
		{"unterminated script drops remainder", `safe<script>alert(1)`, "safe"},
		{"two script blocks", `<script>a()</script>mid<script>b()</script>end`, "midend"},
		{"plain tags stripped", `<b>Bold</b> and <i>italic</i>`, "Bold and italic"},
		{"trims whitespace", "  Hello World  ", "Hello World"},
		{"empty", "", ""},
		{"only tags", "<div><span></span></div>", ""},
		{"lone angle bracket kept", "3 < 5", "3 < 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Fatalf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		`<script>alert("xss")</script>Hello`,
		"  Hello World  ",
		"<b>nested <i>tags</i></b>",
		"plain text",
		"dangling < bracket",
	}

	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Fatalf("Clean not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestValidProfileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "John", true},
		{"with space", "Mary Jane", true},
		{"with hyphen", "Anna-Lena", true},
		{"digits ok", "Kid42", true},
		{"too short", "A", false},
		{"too long", strings.Repeat("A", 51), false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"markup", "<script>", false},
		{"double space", "Mary  Jane", false},
		{"double hyphen", "Anna--Lena", false},
		{"unicode rejected", "Zoë", false},
		{"underscore rejected", "kid_one", false},
		{"exactly two chars", "Jo", true},
		{"exactly fifty chars", strings.Repeat("A", 50), true},
		{"surrounding spaces trimmed", "  Jo  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidProfileName(tt.input); got != tt.want {
				t.Fatalf("ValidProfileName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCheckUploadShortCircuitOrder(t *testing.T) {
	allowed := []string{"image/png", "image/jpeg"}

	// Fails every check; the MIME message must win because checks run in order.
	res := CheckUpload(FileMeta{Name: "../evil sh", MIMEType: "application/x-sh", SizeBytes: 99 << 20}, allowed, 5)
	if res.Valid || res.Reason != "file type not allowed" {
		t.Fatalf("expected type rejection first, got %+v", res)
	}

	res = CheckUpload(FileMeta{Name: "../huge.png", MIMEType: "image/png", SizeBytes: 6 << 20}, allowed, 5)
	if res.Valid || res.Reason != "file exceeds size limit" {
		t.Fatalf("expected size rejection second, got %+v", res)
	}

	res = CheckUpload(FileMeta{Name: "../traversal.png", MIMEType: "image/png", SizeBytes: 1024}, allowed, 5)
	if res.Valid || res.Reason != "invalid file name" {
		t.Fatalf("expected name rejection last, got %+v", res)
	}
}

func TestCheckUploadAccepts(t *testing.T) {
	res := CheckUpload(FileMeta{Name: "avatar_v2.png", MIMEType: "image/png", SizeBytes: 5 * 1024 * 1024}, []string{"image/png"}, 5)
	if !res.Valid || res.Reason != "" {
		t.Fatalf("expected valid upload, got %+v", res)
	}
}

func TestCheckUploadExactMIMEMatchOnly(t *testing.T) {
	res := CheckUpload(FileMeta{Name: "a.png", MIMEType: "image/png; charset=binary", SizeBytes: 10}, []string{"image/png"}, 5)
	if res.Valid {
		t.Fatal("parameterized MIME type must not match exact allow-list entry")
	}

	res = CheckUpload(FileMeta{Name: "a.png", MIMEType: "image/svg+xml", SizeBytes: 10}, []string{"image/png"}, 5)
	if res.Valid {
		t.Fatal("prefix-adjacent MIME type must not match")
	}
}

func TestCheckUploadRejectsPathAndUnicodeNames(t *testing.T) {
	bad := []string{"a/b.png", `a\b.png`, "my avatar.png", "ünïcode.png", "", "a..png/"}
	for _, name := range bad {
		res := CheckUpload(FileMeta{Name: name, MIMEType: "image/png", SizeBytes: 10}, []string{"image/png"}, 5)
		if res.Valid {
			t.Fatalf("expected rejection for filename %q", name)
		}
	}

	// Dots and dashes are fine when the rest of the name is clean.
	res := CheckUpload(FileMeta{Name: "week-3.report.v1.png", MIMEType: "image/png", SizeBytes: 10}, []string{"image/png"}, 5)
	if !res.Valid {
		t.Fatalf("expected acceptance, got %+v", res)
	}
}
