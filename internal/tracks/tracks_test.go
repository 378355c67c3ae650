package tracks

import (
	"strings"
	"testing"
)

func TestParseList(t *testing.T) {
	input := `# comment
https://example.com/audio

2023/06/Above-All.mp3
2023/07/Rainy-Evening.mp3|Rainy Evening (Extended)
https://cdn.example.org/full/url.mp3
`
	list, err := ParseList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseList failed: %v", err)
	}

	if list.BaseURL != "https://example.com/audio/" {
		t.Errorf("BaseURL = %q, want base with trailing slash", list.BaseURL)
	}
	if list.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", list.Len())
	}

	c := list.candidate(0)
	if c.URL != "https://example.com/audio/2023/06/Above-All.mp3" {
		t.Errorf("URL = %q", c.URL)
	}
	if c.DisplayName != "Above All" || c.Custom {
		t.Errorf("DisplayName = %q, Custom = %v, want derived name", c.DisplayName, c.Custom)
	}

	c = list.candidate(1)
	if c.DisplayName != "Rainy Evening (Extended)" || !c.Custom {
		t.Errorf("custom name not honored: %q, Custom = %v", c.DisplayName, c.Custom)
	}

	c = list.candidate(2)
	if c.URL != "https://cdn.example.org/full/url.mp3" {
		t.Errorf("full-URL entry should bypass base, got %q", c.URL)
	}
}

func TestParseList_Empty(t *testing.T) {
	_, err := ParseList(strings.NewReader("https://example.com/\n"))
	if err != ErrEmptyList {
		t.Errorf("err = %v, want ErrEmptyList", err)
	}
}

func TestLoadList_EmbeddedDefault(t *testing.T) {
	list, err := LoadList("")
	if err != nil {
		t.Fatalf("LoadList(\"\") failed: %v", err)
	}
	if list.Len() == 0 {
		t.Fatal("embedded default list is empty")
	}
	if list.BaseURL == "" {
		t.Fatal("embedded default list has no base URL")
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		entry string
		want  string
	}{
		{"2023/06/Above-All.mp3", "Above All"},
		{"quiet_hours.mp3", "quiet hours"},
		{"Night%20Bus.mp3", "Night Bus"},
	}
	for _, c := range cases {
		if got := displayName(c.entry); got != c.want {
			t.Errorf("displayName(%q) = %q, want %q", c.entry, got, c.want)
		}
	}
}

func TestRandomSource_NextStaysInList(t *testing.T) {
	input := "https://example.com/\na.mp3\nb.mp3\nc.mp3\n"
	list, err := ParseList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseList failed: %v", err)
	}

	src := NewRandomSource(list)
	seen := map[string]bool{}
	for range 100 {
		c := src.Next()
		seen[c.Path] = true
		if !strings.HasPrefix(c.URL, "https://example.com/") {
			t.Fatalf("candidate URL outside base: %q", c.URL)
		}
	}
	if len(seen) < 2 {
		t.Errorf("100 draws over 3 entries hit %d distinct tracks", len(seen))
	}
}
