package views

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"regscope/internal/domain"
	"regscope/internal/sortfilter"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func TestFormatNumber(t *testing.T) {
	en := NewNumberFormatter(language.English)
	assert.Equal(t, "0", en.Format(0))
	assert.Equal(t, "999", en.Format(999))
	assert.Equal(t, "1,234", en.Format(1234))
	assert.Equal(t, "99,000,000", en.Format(99000000))
}

func TestSortIndicator(t *testing.T) {
	st := sortfilter.State{SortKey: sortfilter.FieldWordCount, Direction: sortfilter.Descending}
	assert.Equal(t, "↓", SortIndicator(sortfilter.FieldWordCount, st))
	assert.Equal(t, "⇅", SortIndicator(sortfilter.FieldName, st))

	st.Direction = sortfilter.Ascending
	assert.Equal(t, "↑", SortIndicator(sortfilter.FieldWordCount, st))

	st.SortKey = sortfilter.FieldNone
	assert.Equal(t, "⇅", SortIndicator(sortfilter.FieldWordCount, st))
}

func agencies() []domain.Agency {
	return []domain.Agency{
		{Name: "Apple Agency", Slug: "apple", WordCount: 500, Sections: 2},
		{Name: "Zebra Agency", Slug: "zebra", WordCount: 1500, Sections: 5},
	}
}

func listView(rows []domain.Agency, source int) *ListView {
	return &ListView{
		Rows:      rows,
		Selected:  0,
		Total:     len(rows),
		Source:    source,
		SortState: sortfilter.DefaultState(),
	}
}

func TestRenderAgencyList(t *testing.T) {
	r := NewRenderer(language.English)
	out := plain(r.Render(ViewState{
		Width:  100,
		Height: 30,
		Page:   PageAgencies,
		List:   listView(agencies(), 2),
	}))

	assert.Contains(t, out, "Agencies")
	assert.Contains(t, out, "▸ Apple Agency")
	assert.Contains(t, out, "1,500 words")
	assert.Contains(t, out, "5 sections")
	assert.Contains(t, out, "Words ↓")
	assert.Contains(t, out, "Name ⇅")
	assert.Contains(t, out, "Sections ⇅")
	assert.Less(t, strings.Index(out, "Apple Agency"), strings.Index(out, "Zebra Agency"))
}

func TestRenderEmptySearchResult(t *testing.T) {
	r := NewRenderer(language.English)
	list := listView(nil, 2)
	list.Query = "xyz"

	out := plain(r.Render(ViewState{Width: 100, Height: 30, Page: PageAgencies, List: list}))
	assert.Contains(t, out, NoAgenciesMessage)
	assert.Contains(t, out, "Search: xyz")
	assert.Contains(t, out, "(0 of 2)")
}

func TestRenderLoading(t *testing.T) {
	r := NewRenderer(language.English)
	out := plain(r.Render(ViewState{Width: 100, Height: 30, Page: PageAgencies, Loading: true, Spinner: "*", List: listView(nil, 0)}))
	assert.Contains(t, out, "* Loading agencies...")
	assert.NotContains(t, out, NoAgenciesMessage)
}

func TestRenderDetail(t *testing.T) {
	r := NewRenderer(language.English)
	parent := domain.Agency{Name: "Department of Agriculture", WordCount: 12345, Sections: 40}

	t.Run("with children", func(t *testing.T) {
		out := plain(r.Render(ViewState{Width: 100, Height: 30, Page: PageAgencyDetail, Agency: &parent, List: listView(agencies(), 2)}))
		assert.Contains(t, out, "Department of Agriculture")
		assert.Contains(t, out, "Total Words: 12,345")
		assert.Contains(t, out, "Child Agencies: 2")
		assert.Contains(t, out, "Zebra Agency")
	})

	t.Run("leaf agency", func(t *testing.T) {
		out := plain(r.Render(ViewState{Width: 100, Height: 30, Page: PageAgencyDetail, Agency: &parent, List: listView(nil, 0)}))
		assert.Contains(t, out, NoChildrenMessage)
	})

	t.Run("no child matches", func(t *testing.T) {
		list := listView(nil, 2)
		list.Query = "nothing"
		out := plain(r.Render(ViewState{Width: 100, Height: 30, Page: PageAgencyDetail, Agency: &parent, List: list}))
		assert.Contains(t, out, NoChildMatchesMessage)
	})

	t.Run("not found", func(t *testing.T) {
		out := plain(r.Render(ViewState{Width: 100, Height: 30, Page: PageAgencyDetail}))
		assert.Contains(t, out, AgencyNotFoundMessage)
	})
}

func TestRenderAnalytics(t *testing.T) {
	r := NewRenderer(language.English)
	analytics := &domain.Analytics{
		Totals: domain.TotalStatistics{TotalAgencies: 150, TotalSections: 20000, TotalWords: 99000000},
		Corrections: []domain.CorrectionCount{
			{Year: 2021, Corrections: 40},
			{Year: 2022, Corrections: 80},
		},
	}

	out := plain(r.Render(ViewState{Width: 100, Height: 40, Page: PageAnalytics, Analytics: analytics}))
	for _, want := range []string{"Total Agencies", "150", "Total Sections", "20,000", "Total Words", "99,000,000", "Corrections per Year", "2021", "2022"} {
		assert.Contains(t, out, want)
	}

	lines := strings.Split(out, "\n")
	var bar2021, bar2022 int
	for _, line := range lines {
		switch {
		case strings.Contains(line, "2021 │"):
			bar2021 = strings.Count(line, "█")
		case strings.Contains(line, "2022 │"):
			bar2022 = strings.Count(line, "█")
		}
	}
	assert.Greater(t, bar2022, 0)
	assert.Equal(t, bar2022/2, bar2021, "bars scale to the busiest year")
}

func TestRenderNotificationAndScrollIndicators(t *testing.T) {
	r := NewRenderer(language.English)
	list := listView(agencies()[:1], 30)
	list.Total = 30
	list.Above = 4
	list.Below = 25

	out := plain(r.Render(ViewState{Width: 100, Height: 30, Page: PageAgencies, List: list, Notification: "Failed to load agencies. Please try again later."}))
	assert.Contains(t, out, "↑ 4 more above ↑")
	assert.Contains(t, out, "↓ 25 more below ↓")
	assert.Contains(t, out, "Failed to load agencies. Please try again later.")
}

func TestHighlightKeepsName(t *testing.T) {
	r := NewRenderer(language.English)
	row := plain(r.agencyRender.RenderAgency(domain.Agency{Name: "Émile Agency", WordCount: 1}, false, "agen", 80))
	assert.Contains(t, row, "Émile Agency")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
