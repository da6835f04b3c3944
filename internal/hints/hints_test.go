package hints

import (
	"strings"
	"testing"
)

func TestHints_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "types file", got: ForTypesFile(), want: "786432|r"},
		{name: "replacements file", got: ForReplacementsFile(), want: ">>"},
		{name: "output directory", got: ForOutputDirectory(), want: "writable"},
		{name: "timeout", got: ForTimeout(), want: "matchTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.got, "\n  hint: ") {
				t.Errorf("got %q, want hint prefix", tt.got)
			}
			if !strings.Contains(tt.got, tt.want) {
				t.Errorf("got %q, want mention of %q", tt.got, tt.want)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searched []string
		want     string
		notWant  string
	}{
		{
			name:     "suggests user config path",
			searched: []string{"mdfix.yaml", "/home/u/.config/go-mdfix/mdfix.yaml"},
			want:     "or create /home/u/.config/go-mdfix/mdfix.yaml",
		},
		{
			name:     "local paths only",
			searched: []string{"mdfix.yaml", "mdfix.yml"},
			want:     "--config",
			notWant:  "or create",
		},
		{name: "nothing searched", want: "--config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ForConfigNotFound(tt.searched)
			if !strings.Contains(got, tt.want) {
				t.Errorf("got %q, want containing %q", got, tt.want)
			}
			if tt.notWant != "" && strings.Contains(got, tt.notWant) {
				t.Errorf("got %q, want no %q", got, tt.notWant)
			}
		})
	}
}

func TestForUnknownProcessor(t *testing.T) {
	t.Parallel()

	if got := ForUnknownProcessor(nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	got := ForUnknownProcessor([]string{"bbcode", "ltag-cleaner"})
	if !strings.Contains(got, "available: bbcode, ltag-cleaner") {
		t.Errorf("got %q, want the list", got)
	}
}

func TestFormat_Empty(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(%q) = %q, want empty", "", got)
	}
}
