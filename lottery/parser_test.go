package lottery

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noValue는 value 속성이 없는 날짜 입력란을 뜻합니다
const noValue = "\x00"

type page struct {
	dates   []string
	normals []string
	lucky   []string
	replay  []string
}

func validPage() page {
	return page{
		dates:   []string{"01.02.2023"},
		normals: []string{"3", "14", "27", "8", "39", "21"},
		lucky:   []string{"6"},
		replay:  []string{"10"},
	}
}

func (p page) html() string {
	var sb strings.Builder
	sb.WriteString("<html><body><form>")
	for _, d := range p.dates {
		if d == noValue {
			sb.WriteString(`<input type="text" id="formattedFilterDate" name="formattedFilterDate">`)
			continue
		}
		fmt.Fprintf(&sb, `<input type="text" id="formattedFilterDate" name="formattedFilterDate" value="%s">`, d)
	}
	sb.WriteString(`</form><div class="filter-results"><div class="quotes__game"><div class="actual-numbers__numbers">`)
	for _, n := range p.normals {
		fmt.Fprintf(&sb, `<div class="actual-numbers__number___normal"><span>%s</span></div>`, n)
	}
	for _, n := range p.lucky {
		fmt.Fprintf(&sb, `<div class="actual-numbers__number___lucky"><span>%s</span></div>`, n)
	}
	for _, n := range p.replay {
		fmt.Fprintf(&sb, `<div class="actual-numbers__number___replay"><span>%s</span></div>`, n)
	}
	sb.WriteString("</div></div></div></body></html>")
	return sb.String()
}

func withNow(t *testing.T, fixed time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = orig })
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDrawFromHTML(t *testing.T) {
	t.Run("well formed page", func(t *testing.T) {
		draw, err := ParseDrawFromHTML(validPage().html(), nil)
		require.NoError(t, err)

		assert.Equal(t, date(2023, time.February, 1), draw.Date)
		assert.Equal(t, [MainNumberCount]uint8{3, 14, 27, 8, 39, 21}, draw.MainNumbers)
		assert.Equal(t, uint8(6), draw.LuckyNumber)
		assert.Equal(t, uint8(10), draw.ReplayNumber)
	})

	t.Run("fixture page", func(t *testing.T) {
		data, err := os.ReadFile("testdata/winning-numbers.html")
		require.NoError(t, err)

		draw, err := ParseDrawFromHTML(string(data), nil)
		require.NoError(t, err)

		assert.Equal(t, date(2026, time.October, 17), draw.Date)
		assert.Equal(t, [MainNumberCount]uint8{4, 17, 9, 33, 41, 22}, draw.MainNumbers)
		assert.Equal(t, uint8(5), draw.LuckyNumber)
		assert.Equal(t, uint8(8), draw.ReplayNumber)
	})

	t.Run("numbers keep page order", func(t *testing.T) {
		p := validPage()
		p.normals = []string{"42", "1", "30", "2", "19", "7"}

		draw, err := ParseDrawFromHTML(p.html(), nil)
		require.NoError(t, err)
		assert.Equal(t, [MainNumberCount]uint8{42, 1, 30, 2, 19, 7}, draw.MainNumbers)
	})

	t.Run("surrounding whitespace is ignored", func(t *testing.T) {
		p := validPage()
		p.lucky = []string{"\n  4  "}

		draw, err := ParseDrawFromHTML(p.html(), nil)
		require.NoError(t, err)
		assert.Equal(t, uint8(4), draw.LuckyNumber)
	})
}

func TestParseDrawFromHTMLNumberCounts(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *page)
		field  string
	}{
		{"five main numbers", func(p *page) { p.normals = p.normals[:5] }, "추첨 번호"},
		{"seven main numbers", func(p *page) { p.normals = append(p.normals, "11") }, "추첨 번호"},
		{"no main numbers", func(p *page) { p.normals = nil }, "추첨 번호"},
		{"no lucky number", func(p *page) { p.lucky = nil }, "럭키 번호"},
		{"two lucky numbers", func(p *page) { p.lucky = []string{"1", "2"} }, "럭키 번호"},
		{"no replay number", func(p *page) { p.replay = nil }, "리플레이 번호"},
		{"two replay numbers", func(p *page) { p.replay = []string{"1", "2"} }, "리플레이 번호"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPage()
			tt.modify(&p)
			html := p.html()

			draw, err := ParseDrawFromHTML(html, nil)
			require.Error(t, err)
			assert.Equal(t, LottoDraw{}, draw)
			assert.ErrorIs(t, err, ErrUnexpectedMarkup)

			var parsingErr *UnexpectedParsingError
			require.ErrorAs(t, err, &parsingErr)
			assert.Contains(t, parsingErr.Message, tt.field)
			assert.Equal(t, html, parsingErr.HTML)
		})
	}
}

func TestParseDrawFromHTMLDate(t *testing.T) {
	withNow(t, time.Date(2026, time.October, 19, 15, 4, 5, 0, time.UTC))

	t.Run("matching expected date", func(t *testing.T) {
		expected := date(2023, time.February, 1)

		draw, err := ParseDrawFromHTML(validPage().html(), &expected)
		require.NoError(t, err)
		assert.Equal(t, expected, draw.Date)
	})

	t.Run("expected date with time and zone", func(t *testing.T) {
		zurich := time.FixedZone("CET", 3600)
		expected := time.Date(2023, time.February, 1, 20, 30, 0, 0, zurich)

		draw, err := ParseDrawFromHTML(validPage().html(), &expected)
		require.NoError(t, err)
		assert.Equal(t, date(2023, time.February, 1), draw.Date)
	})

	t.Run("different expected date", func(t *testing.T) {
		expected := date(2023, time.February, 2)

		draw, err := ParseDrawFromHTML(validPage().html(), &expected)
		assert.ErrorIs(t, err, ErrSuppliedDateHasNoDraw)
		assert.NotErrorIs(t, err, ErrUnexpectedMarkup)
		assert.Equal(t, LottoDraw{}, draw)
	})

	t.Run("two date inputs", func(t *testing.T) {
		p := validPage()
		p.dates = []string{"01.02.2023", "01.02.2023"}

		_, err := ParseDrawFromHTML(p.html(), nil)
		assert.ErrorIs(t, err, ErrUnexpectedMarkup)

		expected := date(2023, time.February, 1)
		_, err = ParseDrawFromHTML(p.html(), &expected)
		assert.ErrorIs(t, err, ErrUnexpectedMarkup)
	})

	t.Run("no date input without expected date defaults to today", func(t *testing.T) {
		p := validPage()
		p.dates = nil

		draw, err := ParseDrawFromHTML(p.html(), nil)
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.October, 19), draw.Date)
		assert.Equal(t, uint8(6), draw.LuckyNumber)
	})

	t.Run("no date input with expected date", func(t *testing.T) {
		p := validPage()
		p.dates = nil
		expected := date(2023, time.February, 1)

		_, err := ParseDrawFromHTML(p.html(), &expected)
		assert.ErrorIs(t, err, ErrUnexpectedMarkup)
	})

	t.Run("date input without value defaults to today", func(t *testing.T) {
		p := validPage()
		p.dates = []string{noValue}

		draw, err := ParseDrawFromHTML(p.html(), nil)
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.October, 19), draw.Date)
	})

	t.Run("malformed date value", func(t *testing.T) {
		for _, value := range []string{"2023-02-01", "", "32.01.2023", "1.2.23"} {
			p := validPage()
			p.dates = []string{value}

			_, err := ParseDrawFromHTML(p.html(), nil)

			var dateErr *DateParsingError
			require.ErrorAs(t, err, &dateErr, value)
			assert.Equal(t, value, dateErr.Value)

			var timeErr *time.ParseError
			assert.ErrorAs(t, err, &timeErr)
		}
	})

	t.Run("date is checked before numbers", func(t *testing.T) {
		p := validPage()
		p.normals = nil
		expected := date(2024, time.March, 3)

		_, err := ParseDrawFromHTML(p.html(), &expected)
		assert.ErrorIs(t, err, ErrSuppliedDateHasNoDraw)
	})
}

func TestParseDrawFromHTMLInvalidNumber(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *page)
	}{
		{"text main number", func(p *page) { p.normals[2] = "abc" }},
		{"negative main number", func(p *page) { p.normals[0] = "-1" }},
		{"overflowing lucky number", func(p *page) { p.lucky = []string{"256"} }},
		{"empty replay number", func(p *page) { p.replay = []string{""} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPage()
			tt.modify(&p)

			draw, err := ParseDrawFromHTML(p.html(), nil)
			assert.ErrorIs(t, err, ErrUnexpectedMarkup)
			assert.Equal(t, LottoDraw{}, draw)

			var numErr *strconv.NumError
			assert.ErrorAs(t, err, &numErr)
		})
	}
}

func TestParseDrawFromHTMLConcurrent(t *testing.T) {
	const workers = 32

	pages := make([]string, workers)
	want := make([]LottoDraw, workers)
	for i := range pages {
		p := validPage()
		p.dates = []string{FormatDate(date(2023, time.January, 1).AddDate(0, 0, i))}
		p.normals[0] = strconv.Itoa(i + 1)
		p.lucky = []string{strconv.Itoa(i%6 + 1)}
		pages[i] = p.html()

		draw, err := ParseDrawFromHTML(pages[i], nil)
		require.NoError(t, err)
		want[i] = draw
	}

	got := make([]LottoDraw, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range pages {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = ParseDrawFromHTML(pages[i], nil)
		}(i)
	}
	wg.Wait()

	for i := range pages {
		require.NoError(t, errs[i])
		assert.Equal(t, want[i], got[i])
	}
}

func TestUnexpectedParsingErrorMessage(t *testing.T) {
	err := &UnexpectedParsingError{Message: "구조 오류", HTML: "<html></html>"}
	assert.Equal(t, "구조 오류", err.Error())

	wrapped := &UnexpectedParsingError{Message: "변환 실패", Err: errors.New("boom")}
	assert.Equal(t, "변환 실패: boom", wrapped.Error())
}

func BenchmarkParseDrawFromHTML(b *testing.B) {
	data, err := os.ReadFile("testdata/winning-numbers.html")
	require.NoError(b, err)
	html := string(data)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseDrawFromHTML(html, nil); err != nil {
			b.Fatal(err)
		}
	}
}
