package lottery

import (
	"errors"
	"fmt"
)

var (
	// ErrSuppliedDateHasNoDraw는 요청한 날짜에 추첨이 없을 때 반환됩니다.
	// 페이지 자체는 정상이므로 다른 날짜로 다시 조회하면 됩니다.
	ErrSuppliedDateHasNoDraw = errors.New("요청한 날짜에 추첨 결과가 없습니다")

	// ErrUnexpectedMarkup은 페이지 구조가 예상과 다를 때의 공통 원인입니다
	ErrUnexpectedMarkup = errors.New("예상하지 못한 페이지 구조")
)

// UnexpectedParsingError는 셀렉터 결과 개수나 번호 내용이 예상과 다를 때 반환됩니다.
// 원인 분석을 위해 응답 HTML 전체를 함께 보관합니다.
type UnexpectedParsingError struct {
	Message string
	HTML    string
	Err     error
}

func (e *UnexpectedParsingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UnexpectedParsingError) Unwrap() error { return e.Err }

// Is는 errors.Is(err, ErrUnexpectedMarkup)이 성립하도록 합니다
func (e *UnexpectedParsingError) Is(target error) bool {
	return target == ErrUnexpectedMarkup
}

// DateParsingError는 페이지의 날짜 값이 DD.MM.YYYY 형식이 아닐 때 반환됩니다
type DateParsingError struct {
	Value string
	Err   error
}

func (e *DateParsingError) Error() string {
	return fmt.Sprintf("날짜 파싱 실패 (%q): %v", e.Value, e.Err)
}

func (e *DateParsingError) Unwrap() error { return e.Err }

// RequestError는 추첨 페이지 요청이 네트워크 또는 HTTP 상태 때문에 실패했을 때 반환됩니다
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s 요청 실패 (상태: %d): %v", e.Method, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s 요청 실패: %v", e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
