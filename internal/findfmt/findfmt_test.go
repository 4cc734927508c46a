package findfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"a11ylens/internal/dom"
	"a11ylens/internal/inspect"
)

const page = `<body>
<img id="logo" data-box="0 0 10 10">
<label for="q" data-box="0 20 30 10"></label>
<input id="q" tabindex="2" data-box="40 20 60 10">
<a id="home" tabindex="1" data-box="0 40 20 10"></a>
<a id="more" data-box="0 60 20 10"></a>
</body>`

func result(t *testing.T) *inspect.Result {
	t.Helper()
	snap, err := dom.ParseHTML(strings.NewReader(page), dom.Viewport{Width: 200, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	return inspect.Inspect(context.Background(), snap, inspect.DefaultOptions())
}

func TestPrettyWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	err := Pretty(&buf, result(t), PrettyOpts{Title: "page.html", ShowPath: true, ShowLinks: true})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"page.html\n",
		"ERROR   ALT1001 img#logo",
		"alt?",
		"WARNING TAB3002 a#more",
		"Element without explicit tab position",
		"label → input#q",
		"tab order (tabindex)",
		"  1. a#home [tabindex=1]",
		"  2. input#q [tabindex=2]",
		"  3. a#more [no tabindex] ?",
		"2 findings, 1 error, 1 warning, 3 tab stops",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("escape codes with color disabled")
	}
}

func TestPrettyColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, result(t), PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes:\n%q", buf.String())
	}
}

func TestShortIsStable(t *testing.T) {
	a, b := Short(result(t)), Short(result(t))
	if a != b {
		t.Fatalf("short output differs between runs")
	}
	want := []string{
		`F 1 ALT1001 red img#logo "alt?"`,
		"L 2 3",
		"P 4 1 darkblue",
		"P 3 2 darkblue",
		"P 5 ∞ darkred",
	}
	for _, line := range want {
		if !strings.Contains(a, line+"\n") {
			t.Errorf("missing %q in:\n%s", line, a)
		}
	}
	if Short(nil) != "" {
		t.Errorf("nil result should render empty")
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, result(t), JSONOpts{Source: "page.html"}); err != nil {
		t.Fatal(err)
	}
	var out Output
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Source != "page.html" || out.Count != 2 || !out.UseHints {
		t.Errorf("header = %+v", out)
	}
	if len(out.Path) != 3 || out.Path[0].Hint == nil || *out.Path[0].Hint != 1 || out.Path[2].Hint != nil || !out.Path[2].Suspect {
		t.Errorf("path = %+v", out.Path)
	}
	if len(out.Links) != 1 || out.Links[0].To != "input#q" {
		t.Errorf("links = %+v", out.Links)
	}
	if out.Findings[0].Box != (dom.Rect{W: 10, H: 10}) || out.Findings[0].Severity != "ERROR" {
		t.Errorf("finding = %+v", out.Findings[0])
	}

	limited := BuildOutput(result(t), JSONOpts{Max: 1})
	if len(limited.Findings) != 1 || limited.Count != 2 {
		t.Errorf("Max should trim findings only: %+v", limited)
	}
	empty := BuildOutput(nil, JSONOpts{})
	if empty.Findings == nil || empty.Path == nil {
		t.Errorf("empty output must encode arrays, not null")
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"pretty", "SHORT", "json", ""} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("sarif"); err == nil {
		t.Errorf("sarif accepted")
	}
}
