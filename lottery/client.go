package lottery

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/publicsuffix"
)

// DefaultDrawURL은 스위스로또 당첨번호 페이지 주소입니다
const DefaultDrawURL = "https://www.swisslos.ch/en/swisslotto/information/winning-numbers/winning-numbers.html"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client는 스위스로또 당첨번호 페이지 클라이언트입니다
type Client struct {
	httpClient *http.Client
	drawURL    string
}

// NewClient는 새로운 클라이언트를 생성합니다. drawURL이 비어 있으면 DefaultDrawURL을 사용합니다.
func NewClient(drawURL string) (*Client, error) {
	if drawURL == "" {
		drawURL = DefaultDrawURL
	}

	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, fmt.Errorf("쿠키 저장소 생성 실패: %w", err)
	}

	httpClient := &http.Client{
		Jar:     jar,
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			// 압축 해제는 직접 처리합니다 (brotli 포함)
			DisableCompression: true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("리다이렉트가 너무 많습니다")
			}
			return nil
		},
	}

	return &Client{
		httpClient: httpClient,
		drawURL:    drawURL,
	}, nil
}

// GetHTTPClient는 HTTP 클라이언트를 반환합니다
func (c *Client) GetHTTPClient() *http.Client {
	return c.httpClient
}

// GetLatestDraw는 최근 추첨 결과를 가져옵니다
func (c *Client) GetLatestDraw(ctx context.Context) (LottoDraw, error) {
	html, err := c.FetchLatestHTML(ctx)
	if err != nil {
		return LottoDraw{}, err
	}
	return ParseDrawFromHTML(html, nil)
}

// GetDrawOfDate는 해당 날짜의 추첨 결과를 가져옵니다.
// 페이지가 다른 날짜의 결과를 보여주면 ErrSuppliedDateHasNoDraw를 반환합니다.
func (c *Client) GetDrawOfDate(ctx context.Context, date time.Time) (LottoDraw, error) {
	html, err := c.FetchHTMLOfDate(ctx, date)
	if err != nil {
		return LottoDraw{}, err
	}
	return ParseDrawFromHTML(html, &date)
}

// GetPreviousDraw는 해당 날짜로 조회했을 때 페이지가 보여주는 추첨 결과를 그대로 가져옵니다.
// 그 날짜에 추첨이 없었다면 직전 추첨 결과가 반환됩니다.
func (c *Client) GetPreviousDraw(ctx context.Context, date time.Time) (LottoDraw, error) {
	html, err := c.FetchHTMLOfDate(ctx, date)
	if err != nil {
		return LottoDraw{}, err
	}
	return ParseDrawFromHTML(html, nil)
}

// FetchLatestHTML은 당첨번호 페이지를 GET으로 가져옵니다
func (c *Client) FetchLatestHTML(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.drawURL, nil)
	if err != nil {
		return "", fmt.Errorf("당첨번호 페이지 요청 생성 실패: %w", err)
	}

	return c.do(req)
}

// FetchHTMLOfDate는 날짜 필터 폼을 POST로 전송하여 해당 날짜의 당첨번호 페이지를 가져옵니다
func (c *Client) FetchHTMLOfDate(ctx context.Context, date time.Time) (string, error) {
	formattedDate := FormatDate(date)

	form := url.Values{}
	form.Set("formattedFilterDate", formattedDate)
	form.Set("filterDate", formattedDate)
	form.Set("currentDate", FormatDate(Today()))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.drawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("당첨번호 페이지 요청 생성 실패: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", c.drawURL)

	return c.do(req)
}

// do는 요청을 보내고 응답 본문을 UTF-8 문자열로 반환합니다
func (c *Client) do(req *http.Request) (string, error) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	requestError := func(status int, err error) error {
		return &RequestError{Method: req.Method, URL: req.URL.String(), StatusCode: status, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", requestError(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", requestError(resp.StatusCode, fmt.Errorf("예상하지 못한 응답: %s", strings.TrimSpace(string(body))))
	}

	reader, err := decompressReader(resp)
	if err != nil {
		return "", requestError(resp.StatusCode, fmt.Errorf("압축 해제 실패: %w", err))
	}

	utf8Reader, err := charset.NewReader(reader, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", requestError(resp.StatusCode, fmt.Errorf("문자셋 변환 실패: %w", err))
	}

	body, err := io.ReadAll(utf8Reader)
	if err != nil {
		return "", requestError(resp.StatusCode, fmt.Errorf("응답 읽기 실패: %w", err))
	}

	return string(body), nil
}

// decompressReader는 Content-Encoding에 맞는 압축 해제 리더를 반환합니다
func decompressReader(resp *http.Response) (io.Reader, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(resp.Body)
	case "deflate":
		return flate.NewReader(resp.Body), nil
	case "br":
		return brotli.NewReader(resp.Body), nil
	default:
		return resp.Body, nil
	}
}
