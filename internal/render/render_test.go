package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/abelbrown/siadash/internal/trend"
	"github.com/google/go-cmp/cmp"
)

func sample() []trend.Trend {
	return []trend.Trend{
		{Title: "A", Summary: "first", Source: "news", Traffic: trend.TextIndicator("10K+")},
		{Title: "B", Source: "social", Score: trend.NumberIndicator(4200)},
		{Title: "C"},
	}
}

func TestGridEmptyShowsSinglePlaceholder(t *testing.T) {
	r := NewRegion("trends-grid", VariantGrid)
	Grid(r, sample(), nil)
	Grid(r, []trend.Trend{}, nil)

	if !r.Empty() || len(r.Cards) != 0 {
		t.Fatalf("expected no cards, got %d", len(r.Cards))
	}
	if r.Placeholder != GridPlaceholder {
		t.Errorf("Placeholder = %q", r.Placeholder)
	}

	var buf bytes.Buffer
	if err := r.WriteHTML(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Count(out, GridPlaceholder) != 1 {
		t.Errorf("expected exactly one placeholder in %q", out)
	}
	if strings.Contains(out, "trend-card") {
		t.Errorf("empty grid should render no cards: %q", out)
	}
}

func TestGridCardFields(t *testing.T) {
	r := NewRegion("g", VariantGrid)
	Grid(r, sample(), []string{"news"})

	want := []Card{
		{Title: "A", Summary: "first", Source: "news", Indicator: "10K+"},
		{Title: "B", Summary: NoSummary, Source: "social", Indicator: "4,200"},
		{Title: "C", Summary: NoSummary, Source: trend.DefaultSource, Indicator: NoIndicator},
	}
	if len(r.Cards) != len(want) {
		t.Fatalf("got %d cards", len(r.Cards))
	}
	for i, c := range r.Cards {
		c.Action = Action{}
		if diff := cmp.Diff(want[i], c); diff != "" {
			t.Errorf("card %d (-want +got):\n%s", i, diff)
		}
	}
	if r.Banner != "" {
		t.Errorf("single source should not set a banner, got %q", r.Banner)
	}
}

func TestGridRenderIsIdempotent(t *testing.T) {
	r := NewRegion("g", VariantGrid)
	list := sample()
	sources := []string{"news", "social"}

	Grid(r, list, sources)
	var first bytes.Buffer
	r.WriteHTML(&first)

	Grid(r, list, sources)
	var second bytes.Buffer
	r.WriteHTML(&second)

	if first.String() != second.String() {
		t.Errorf("second render differs:\n%s\n---\n%s", first.String(), second.String())
	}
	if n := strings.Count(second.String(), "alert-info"); n != 1 {
		t.Errorf("expected exactly one banner, got %d", n)
	}
	if n := strings.Count(second.String(), `class="trend-card`); n != len(list) {
		t.Errorf("expected %d cards, got %d", len(list), n)
	}
	if r.Banner != "Trends from: news, social" {
		t.Errorf("Banner = %q", r.Banner)
	}
}

func TestGridBannerFollowsLatestRender(t *testing.T) {
	r := NewRegion("g", VariantGrid)
	two := sample()

	Grid(r, two, []string{"news", "social"})
	if r.Banner != "Trends from: news, social" {
		t.Fatalf("Banner = %q", r.Banner)
	}

	Grid(r, two[:1], []string{"news"})
	if r.Banner != "" {
		t.Errorf("single-source render kept banner %q", r.Banner)
	}
	if len(r.Cards) != 1 {
		t.Errorf("got %d cards, want 1", len(r.Cards))
	}

	Grid(r, two, []string{"news", "social"})
	Grid(r, nil, []string{"news", "social"})
	if r.Banner != "" || r.Placeholder != GridPlaceholder {
		t.Errorf("empty render: banner=%q placeholder=%q", r.Banner, r.Placeholder)
	}

	var buf bytes.Buffer
	if err := r.WriteHTML(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "alert-info") || strings.Count(out, GridPlaceholder) != 1 {
		t.Errorf("empty grid should show only the placeholder:\n%s", out)
	}

	Grid(r, two, []string{"news", "social"})
	Failed(r)
	if r.Banner != "" {
		t.Errorf("Failed kept banner %q", r.Banner)
	}
}

func TestGridBannerScenario(t *testing.T) {
	env, err := trend.Decode([]byte(`{"trends": {"news": [{"title":"A"}], "social": [{"title":"B"}]}, "sources": ["news","social"]}`))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegion("g", VariantGrid)
	Grid(r, env.Normalize(), env.Attribution())

	if r.Banner != "Trends from: news, social" {
		t.Errorf("Banner = %q", r.Banner)
	}
	if len(r.Cards) != 2 || r.Cards[0].Title != "A" || r.Cards[1].Title != "B" {
		t.Errorf("unexpected cards: %+v", r.Cards)
	}
}

func TestHTMLEscapesUntrustedText(t *testing.T) {
	r := NewRegion("g", VariantGrid)
	evil := `<script>alert("x")</script>`
	Grid(r, []trend.Trend{{Title: evil, Source: `<b>src</b>`, Traffic: trend.TextIndicator(`<i>9</i>`)}}, []string{"<a>", "b"})

	var buf bytes.Buffer
	if err := r.WriteHTML(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, raw := range []string{"<script>", "<b>src", "<i>9", "<a>"} {
		if strings.Contains(out, raw) {
			t.Errorf("raw markup %q leaked into output:\n%s", raw, out)
		}
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("expected escaped title in output:\n%s", out)
	}
}

func TestActionCarriesOriginalRecord(t *testing.T) {
	long := strings.Repeat("x", 150)
	original := trend.Trend{Title: `Q&A <live>`, Summary: long, Source: "rss", Category: "tech", URL: "https://e.test/?a=1&b=2"}
	r := NewRegion("g", VariantGrid)
	Grid(r, []trend.Trend{original}, nil)

	act, ok := r.Action(0)
	if !ok {
		t.Fatal("no action for card 0")
	}
	if act.Kind != ActionSelect {
		t.Errorf("Kind = %v, want select", act.Kind)
	}
	if diff := cmp.Diff(original, act.Trend); diff != "" {
		t.Errorf("action record differs from original (-want +got):\n%s", diff)
	}
	if r.Cards[0].Summary == long {
		t.Error("display summary should be truncated")
	}
	if _, ok := r.Action(1); ok {
		t.Error("Action(1) should not exist")
	}

	// The data attribute decodes back to the same record.
	var buf bytes.Buffer
	r.WriteHTML(&buf)
	if strings.Contains(buf.String(), "<live>") {
		t.Errorf("raw title leaked into markup:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), `data-trend="{&#34;title&#34;:`) {
		t.Errorf("payload attribute not escaped as expected:\n%s", buf.String())
	}
	data, _ := json.Marshal(act.Trend)
	var back trend.Trend
	json.Unmarshal(data, &back)
	if diff := cmp.Diff(original, back); diff != "" {
		t.Errorf("payload round trip (-want +got):\n%s", diff)
	}
}

func TestSummaryTruncation(t *testing.T) {
	exact := strings.Repeat("a", SummaryLimit)
	if got := Summary(exact); got != exact {
		t.Errorf("exactly %d runes should not be truncated", SummaryLimit)
	}
	over := strings.Repeat("é", SummaryLimit+1)
	got := Summary(over)
	if got != strings.Repeat("é", SummaryLimit)+Ellipsis {
		t.Errorf("Summary(101 runes) = %q", got)
	}
	if Summary("   ") != NoSummary {
		t.Error("blank summary should fall back")
	}
	if got := Summary("<p>Hello <b>world</b> &amp; friends</p>"); got != "Hello world & friends" {
		t.Errorf("markup not stripped: %q", got)
	}
}

func TestSidebarLimitAndAction(t *testing.T) {
	var list []trend.Trend
	for i := 0; i < 15; i++ {
		list = append(list, trend.Trend{Title: strings.Repeat("t", i+1)})
	}
	r := NewRegion("pipeline-trends-list", VariantSidebar)
	Sidebar(r, list, 0)
	if len(r.Cards) != DefaultSidebarSize {
		t.Fatalf("got %d cards, want %d", len(r.Cards), DefaultSidebarSize)
	}
	Sidebar(r, list, 3)
	if len(r.Cards) != 3 {
		t.Fatalf("got %d cards, want 3", len(r.Cards))
	}
	for _, c := range r.Cards {
		if c.Action.Kind != ActionApply {
			t.Errorf("sidebar action = %v, want apply", c.Action.Kind)
		}
	}

	Sidebar(r, nil, 3)
	if r.Placeholder != SidebarPlaceholder || !r.Empty() {
		t.Errorf("empty sidebar placeholder = %q", r.Placeholder)
	}
	Failed(r)
	if r.Placeholder != FailedPlaceholder {
		t.Errorf("Failed placeholder = %q", r.Placeholder)
	}
}

func TestTerminalStripsControlSequences(t *testing.T) {
	r := NewRegion("g", VariantGrid)
	Grid(r, []trend.Trend{{Title: "ok\x1b[31mred", Source: "s"}}, nil)
	out := Terminal(r, DarkPalette, 80, 0, 0, -1)
	if strings.Contains(out, "\x1b[31mred") {
		t.Errorf("escape sequence from record reached terminal output")
	}
	if !strings.Contains(out, "ok[31mred") {
		t.Errorf("sanitized title missing: %q", out)
	}

	Grid(r, nil, nil)
	if out := Terminal(r, LightPalette, 80, 0, 0, 0); !strings.Contains(out, GridPlaceholder) {
		t.Errorf("terminal placeholder missing: %q", out)
	}
}
