package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_ContentLines(t *testing.T) {
	input := `<html><head><title>Spec</title></head><body>
<nav>menu</nav>
<h1>3 Power</h1>
<p>The PSU
   shall work.</p>
<ul><li>one</li></ul>
<pre>a
b</pre>
<script>var x = 1;</script>
</body></html>`
	p := &HTMLParser{}
	pages, err := p.Parse(strings.NewReader(input), "spec.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	want := []string{"3 Power", "The PSU shall work.", "one", "a", "b"}
	got := strings.Split(pages[0].Text, "\n")
	if len(got) != len(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("line[%d]: expected %q, got %q", i, w, got[i])
		}
	}
}
