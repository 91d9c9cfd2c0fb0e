package trend

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustDecode(t *testing.T, body string) Envelope {
	t.Helper()
	env, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode(%s): %v", body, err)
	}
	return env
}

func titles(list []Trend) []string {
	out := make([]string, len(list))
	for i, tr := range list {
		out[i] = tr.Title
	}
	return out
}

func TestNormalizeFlatPreservesOrder(t *testing.T) {
	env := mustDecode(t, `{"trends":[{"title":"C"},{"title":"A"},{"title":"B"}]}`)
	if env.Trends.Shape() != ShapeFlat {
		t.Fatalf("shape = %v, want flat", env.Trends.Shape())
	}
	got := titles(env.Normalize())
	if diff := cmp.Diff([]string{"C", "A", "B"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeFlatIsIdentity(t *testing.T) {
	list := []Trend{
		{Title: "one", Source: "news", Traffic: TextIndicator("20K+")},
		{Title: "two", Score: NumberIndicator(0.5)},
	}
	if diff := cmp.Diff(list, Normalize(Flat(list))); diff != "" {
		t.Errorf("flat normalize changed records (-want +got):\n%s", diff)
	}
}

func TestNormalizeBySourceDocumentOrder(t *testing.T) {
	env := mustDecode(t, `{"trends":{"news":[{"title":"A"}],"social":[{"title":"B"}]},"sources":["news","social"]}`)
	if env.Trends.Shape() != ShapeBySource {
		t.Fatalf("shape = %v, want by-source", env.Trends.Shape())
	}
	if diff := cmp.Diff([]string{"A", "B"}, titles(env.Normalize())); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"news", "social"}, env.Attribution()); diff != "" {
		t.Errorf("attribution (-want +got):\n%s", diff)
	}

	// Key order follows the document, not the alphabet.
	env = mustDecode(t, `{"trends":{"zeta":[{"title":"Z1"},{"title":"Z2"}],"alpha":[{"title":"A1"}]}}`)
	if diff := cmp.Diff([]string{"Z1", "Z2", "A1"}, titles(env.Normalize())); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestNormalizeBySourceCountsEveryElementOnce(t *testing.T) {
	body := `{"trends":{
		"google_trends":[{"title":"g1"},{"title":"g2"},{"title":"g3"}],
		"twitter":[],
		"newsapi":[{"title":"n1"},{"title":"g1"}],
		"rss_feeds":[{"title":"r1"}],
		"mixed":[{"title":"m1","summary":123},{"title":"m2"},{"title":"m3","url":false,"source":["x"]}]
	}}`
	env := mustDecode(t, body)

	sum := 0
	want := map[string]int{}
	for _, g := range env.Trends.Groups() {
		sum += len(g.Trends)
		for _, tr := range g.Trends {
			want[tr.Title]++
		}
	}
	got := env.Normalize()
	if len(got) != sum || sum != 9 {
		t.Fatalf("len = %d, sum of groups = %d, want 9", len(got), sum)
	}
	counts := map[string]int{}
	for _, tr := range got {
		counts[tr.Title]++
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("element multiset mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeMalformedYieldsEmpty(t *testing.T) {
	cases := map[string]string{
		"null":      `{"trends":null}`,
		"missing":   `{"sources":["x"]}`,
		"string":    `{"trends":"oops"}`,
		"number":    `{"trends":42}`,
		"bool":      `{"trends":true}`,
		"empty":     `{"trends":[]}`,
		"bad-group": `{"trends":{"news":"not a list"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			got := mustDecode(t, body).Normalize()
			if got == nil || len(got) != 0 {
				t.Errorf("Normalize() = %#v, want empty non-nil slice", got)
			}
		})
	}
}

func TestDecodeRejectsNonObjectBodies(t *testing.T) {
	for _, body := range []string{``, `[]`, `<html>`, `{"trends":`} {
		if _, err := Decode([]byte(body)); err == nil {
			t.Errorf("Decode(%q) should fail", body)
		}
	}
}

func TestDecodeSkipsNonObjectElements(t *testing.T) {
	env := mustDecode(t, `{"trends":[{"title":"ok"}, 3, "x", null, {"title": 5}, {"title":"ok2"}]}`)
	// The object with a numeric title is kept, with its title treated as absent.
	if diff := cmp.Diff([]string{"ok", "", "ok2"}, titles(env.Normalize())); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecodeIgnoresMistypedFields(t *testing.T) {
	env := mustDecode(t, `{"trends":[
		{"title":"A","summary":123,"source":"news"},
		{"title":"B","url":false,"category":{"x":1},"traffic":"5K+"}
	]}`)
	want := []Trend{
		{Title: "A", Source: "news"},
		{Title: "B", Traffic: TextIndicator("5K+")},
	}
	if diff := cmp.Diff(want, env.Normalize()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	var tr Trend
	if err := json.Unmarshal([]byte(`[1,2]`), &tr); err == nil {
		t.Error("non-object record should fail to decode")
	}
}

func TestDecodeRepeatedSourceKey(t *testing.T) {
	env := mustDecode(t, `{"trends":{"a":[{"title":"1"}],"b":[{"title":"2"}],"a":[{"title":"3"}]}}`)
	if diff := cmp.Diff([]string{"3", "2"}, titles(env.Normalize())); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestTrendRoundTrip(t *testing.T) {
	in := `{"title":"Café <b>","summary":"s \"q\"","source":"rss","category":"tech","url":"https://x.test/a?b=1&c=2","traffic":"50K+","score":0.87}`
	var tr Trend
	if err := json.Unmarshal([]byte(in), &tr); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(tr)
	if err != nil {
		t.Fatal(err)
	}
	var back Trend
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(tr, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if back.Traffic.String() != "50K+" {
		t.Errorf("traffic = %q", back.Traffic.String())
	}
}

func TestIndicatorString(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`12500`, "12,500"},
		{`0.875`, "0.88"},
		{`"20K+"`, "20K+"},
		{`null`, ""},
		{`{"x":1}`, ""},
	}
	for _, c := range cases {
		var i Indicator
		if err := json.Unmarshal([]byte(c.raw), &i); err != nil {
			t.Fatalf("unmarshal %s: %v", c.raw, err)
		}
		if got := i.String(); got != c.want {
			t.Errorf("Indicator(%s).String() = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestTrendIndicatorPrefersTraffic(t *testing.T) {
	tr := Trend{Traffic: TextIndicator("1M"), Score: NumberIndicator(3)}
	if tr.Indicator().String() != "1M" {
		t.Errorf("expected traffic first")
	}
	tr.Traffic = Indicator{}
	if tr.Indicator().String() != "3" {
		t.Errorf("expected score fallback, got %q", tr.Indicator().String())
	}
	if (Trend{}).SourceLabel() != DefaultSource {
		t.Errorf("SourceLabel fallback")
	}
}

func TestAttributionFallsBackToGroupKeys(t *testing.T) {
	env := mustDecode(t, `{"trends":{"news":[],"social":[]},"sources":"bogus"}`)
	if diff := cmp.Diff([]string{"news", "social"}, env.Attribution()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	env = mustDecode(t, `{"trends":[],"sources":["a","a"," ","b"]}`)
	if diff := cmp.Diff([]string{"a", "b"}, env.Attribution()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestTrendsMarshalKeepsGroupOrder(t *testing.T) {
	tr := BySource(
		SourceGroup{Name: "z", Trends: []Trend{{Title: "1"}}},
		SourceGroup{Name: "a"},
	)
	data, err := json.Marshal(tr)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"z":[{"title":"1"}],"a":[]}` {
		t.Errorf("got %s", data)
	}
}

func TestDedupe(t *testing.T) {
	list := []Trend{{Title: "AI"}, {Title: "ai "}, {Title: "Vote"}}
	if diff := cmp.Diff([]string{"AI", "Vote"}, titles(Dedupe(list))); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestQueryPath(t *testing.T) {
	cases := []struct {
		q    Query
		want string
	}{
		{Query{}, "/api/ui/trends"},
		{Query{Flatten: true}, "/api/ui/trends?flatten=1"},
		{Query{Flatten: true, Force: true, Keywords: "ai & tech", Limit: 10},
			"/api/ui/trends?flatten=1&force=1&keywords=ai+%26+tech&limit=10"},
	}
	for _, c := range cases {
		if got := c.q.Path(); got != c.want {
			t.Errorf("Path() = %q, want %q", got, c.want)
		}
	}
}
