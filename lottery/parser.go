package lottery

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

const numbersScope = ".filter-results .quotes__game .actual-numbers__numbers "

// 페이지 구조와의 계약입니다. 패키지 초기화 시 한 번만 컴파일되고 이후 변경되지 않습니다.
var (
	formattedDateSelector = cascadia.MustCompile("input#formattedFilterDate")
	normalNumberSelector  = cascadia.MustCompile(numbersScope + ".actual-numbers__number___normal span")
	luckyNumberSelector   = cascadia.MustCompile(numbersScope + ".actual-numbers__number___lucky span")
	replayNumberSelector  = cascadia.MustCompile(numbersScope + ".actual-numbers__number___replay span")
)

// ParseDrawFromHTML은 당첨번호 페이지 HTML에서 추첨 결과를 추출합니다.
//
// expected가 nil이 아니면 페이지의 추첨일이 그 날짜와 같아야 하며,
// 다르면 ErrSuppliedDateHasNoDraw를 반환합니다. 페이지에 날짜 입력란이 없으면
// expected가 없을 때에 한해 오늘 날짜를 사용합니다. expected가 있는데 날짜
// 입력란이 없으면 UnexpectedParsingError를 반환합니다.
//
// 부작용이 없는 순수 함수이므로 여러 고루틴에서 동시에 호출해도 됩니다.
func ParseDrawFromHTML(html string, expected *time.Time) (LottoDraw, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return LottoDraw{}, fmt.Errorf("HTML 파싱 실패: %w", err)
	}

	draw := newLottoDraw()

	// 날짜 확인
	dates := doc.FindMatcher(formattedDateSelector)
	switch {
	case dates.Length() > 1 || (dates.Length() == 0 && expected != nil):
		return LottoDraw{}, unexpected(html, "HTML 응답에서 날짜 요소 1개를 기대했지만 %d개를 찾았습니다", dates.Length())
	case dates.Length() == 1:
		if value, exists := dates.Attr("value"); exists {
			date, err := ParseDate(value)
			if err != nil {
				return LottoDraw{}, &DateParsingError{Value: value, Err: err}
			}
			draw.Date = date

			if expected != nil && !draw.Date.Equal(DateOf(*expected)) {
				return LottoDraw{}, ErrSuppliedDateHasNoDraw
			}
		}
	}

	// 추첨 번호 6개
	normals := doc.FindMatcher(normalNumberSelector)
	if normals.Length() != MainNumberCount {
		return LottoDraw{}, unexpected(html, "HTML 응답에서 추첨 번호 %d개를 기대했지만 %d개를 찾았습니다", MainNumberCount, normals.Length())
	}

	for i := range normals.Nodes {
		n, err := parseNumber(html, "추첨 번호", normals.Eq(i))
		if err != nil {
			return LottoDraw{}, err
		}
		draw.MainNumbers[i] = n
	}

	// 럭키 번호
	lucky, err := parseSingleNumber(html, "럭키 번호", doc.FindMatcher(luckyNumberSelector))
	if err != nil {
		return LottoDraw{}, err
	}
	draw.LuckyNumber = lucky

	// 리플레이 번호
	replay, err := parseSingleNumber(html, "리플레이 번호", doc.FindMatcher(replayNumberSelector))
	if err != nil {
		return LottoDraw{}, err
	}
	draw.ReplayNumber = replay

	return draw, nil
}

// parseSingleNumber는 정확히 1개만 있어야 하는 번호 요소를 읽습니다
func parseSingleNumber(html, field string, s *goquery.Selection) (uint8, error) {
	if s.Length() != 1 {
		return 0, unexpected(html, "HTML 응답에서 %s 1개를 기대했지만 %d개를 찾았습니다", field, s.Length())
	}
	return parseNumber(html, field, s)
}

// parseNumber는 요소의 텍스트를 번호로 변환합니다.
// 숫자가 아니면 페이지 형식이 바뀐 것이므로 구조 오류로 처리합니다.
func parseNumber(html, field string, s *goquery.Selection) (uint8, error) {
	text := strings.TrimSpace(s.Text())

	n, err := strconv.ParseUint(text, 10, 8)
	if err != nil {
		return 0, &UnexpectedParsingError{
			Message: fmt.Sprintf("%s를 숫자로 변환할 수 없습니다 (%q)", field, text),
			HTML:    html,
			Err:     err,
		}
	}

	return uint8(n), nil
}

func unexpected(html, format string, args ...interface{}) *UnexpectedParsingError {
	return &UnexpectedParsingError{
		Message: fmt.Sprintf(format, args...),
		HTML:    html,
	}
}
