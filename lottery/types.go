package lottery

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// DateLayout은 스위스로또 페이지와 폼 전송에 쓰이는 날짜 형식입니다 (DD.MM.YYYY)
	DateLayout = "02.01.2006"

	// jsonDateLayout은 직렬화할 때 쓰는 날짜 형식입니다
	jsonDateLayout = "2006-01-02"

	// MainNumberCount는 추첨 번호 개수입니다
	MainNumberCount = 6
)

// now는 테스트에서 교체할 수 있는 현재 시각 함수입니다
var now = time.Now

// LottoDraw는 한 회차의 스위스로또 추첨 결과입니다
type LottoDraw struct {
	Date         time.Time              // 추첨일 (UTC 자정)
	MainNumbers  [MainNumberCount]uint8 // 추첨 번호 6개 (페이지 순서 그대로)
	LuckyNumber  uint8                  // 럭키 번호
	ReplayNumber uint8                  // 리플레이 번호
}

// drawJSON은 LottoDraw의 직렬화 형태입니다
type drawJSON struct {
	Date         string `json:"date"`
	MainNumbers  []int  `json:"mainNumbers"` // []uint8는 base64로 직렬화됩니다
	LuckyNumber  uint8  `json:"luckyNumber"`
	ReplayNumber uint8  `json:"replayNumber"`
}

// newLottoDraw는 날짜가 오늘이고 번호가 모두 0인 기본 추첨 결과를 만듭니다
func newLottoDraw() LottoDraw {
	return LottoDraw{Date: Today()}
}

// Today는 UTC 기준 오늘 날짜를 UTC 자정으로 반환합니다
func Today() time.Time {
	return DateOf(now().UTC())
}

// DateOf는 시각에서 시간 부분을 버리고 UTC 자정의 날짜로 만듭니다
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate는 DD.MM.YYYY 문자열을 날짜로 변환합니다
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// FormatDate는 날짜를 DD.MM.YYYY 문자열로 변환합니다
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// MarshalJSON은 날짜를 YYYY-MM-DD 문자열로 직렬화합니다
func (d LottoDraw) MarshalJSON() ([]byte, error) {
	numbers := make([]int, 0, MainNumberCount)
	for _, n := range d.MainNumbers {
		numbers = append(numbers, int(n))
	}

	return json.Marshal(drawJSON{
		Date:         d.Date.Format(jsonDateLayout),
		MainNumbers:  numbers,
		LuckyNumber:  d.LuckyNumber,
		ReplayNumber: d.ReplayNumber,
	})
}

// UnmarshalJSON은 MarshalJSON의 결과를 다시 읽어들입니다
func (d *LottoDraw) UnmarshalJSON(data []byte) error {
	var raw drawJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	date, err := time.ParseInLocation(jsonDateLayout, raw.Date, time.UTC)
	if err != nil {
		return fmt.Errorf("추첨일 파싱 실패: %w", err)
	}

	if len(raw.MainNumbers) != MainNumberCount {
		return fmt.Errorf("추첨 번호는 %d개여야 합니다 (현재 %d개)", MainNumberCount, len(raw.MainNumbers))
	}

	var numbers [MainNumberCount]uint8
	for i, n := range raw.MainNumbers {
		if n < 0 || n > 255 {
			return fmt.Errorf("추첨 번호 범위 초과: %d", n)
		}
		numbers[i] = uint8(n)
	}

	d.Date = date
	d.MainNumbers = numbers
	d.LuckyNumber = raw.LuckyNumber
	d.ReplayNumber = raw.ReplayNumber
	return nil
}

// String은 로그 출력용 문자열을 반환합니다
func (d LottoDraw) String() string {
	return fmt.Sprintf("%s %v 럭키:%d 리플레이:%d", FormatDate(d.Date), d.MainNumbers, d.LuckyNumber, d.ReplayNumber)
}
