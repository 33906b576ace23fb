package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  Type
	}{
		{"function", FUNCTION},
		{"const", CONST},
		{"return", RETURN},
		{"export", EXPORT},
		{"true", TRUE},
		{"null", NULL},
		{"Button", IDENT},
		{"onPress", IDENT},
		{"Function", IDENT}, // keywords are case-sensitive
	}

	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.want {
			t.Errorf("LookupIdent(%q) = %v, want %v", tt.ident, got, tt.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	if ARROW.String() != "=>" {
		t.Errorf("ARROW.String() = %q, want %q", ARROW.String(), "=>")
	}
	if EXPORT.String() != "export" {
		t.Errorf("EXPORT.String() = %q, want %q", EXPORT.String(), "export")
	}
	if got := Type(9999).String(); got != "TOKEN(9999)" {
		t.Errorf("unknown type String() = %q", got)
	}
}

func TestIsKeyword(t *testing.T) {
	if !IsKeyword(RETURN) {
		t.Error("RETURN should be a keyword")
	}
	if IsKeyword(IDENT) {
		t.Error("IDENT should not be a keyword")
	}
	if IsKeyword(ARROW) {
		t.Error("ARROW should not be a keyword")
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{
		Start: Position{Line: 1, Column: 1, Offset: 10},
		End:   Position{Line: 1, Column: 11, Offset: 20},
	}

	if !s.Contains(10) {
		t.Error("span should contain its start offset")
	}
	if !s.Contains(19) {
		t.Error("span should contain offset 19")
	}
	if s.Contains(20) {
		t.Error("span end offset is exclusive")
	}
	if s.Contains(9) {
		t.Error("span should not contain offset before start")
	}
}
