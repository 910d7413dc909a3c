package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"swisslotto/logger"
)

// DefaultAPIBase는 텔레그램 Bot API 주소입니다
const DefaultAPIBase = "https://api.telegram.org"

// Bot은 텔레그램 봇 구조체입니다
type Bot struct {
	Token   string
	ChatID  string
	APIBase string

	httpClient *http.Client
}

// New는 텔레그램 봇을 생성합니다
func New(token, chatID string) *Bot {
	return &Bot{
		Token:      token,
		ChatID:     chatID,
		APIBase:    DefaultAPIBase,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendMessage는 텔레그램 메시지를 전송합니다
func (b *Bot) SendMessage(ctx context.Context, message string) error {
	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", b.APIBase, b.Token)

	payload := map[string]interface{}{
		"chat_id":    b.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("JSON 마샬링 실패: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("텔레그램 요청 생성 실패: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("텔레그램 API 호출 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("텔레그램 메시지 전송 실패 (상태: %d): %s", resp.StatusCode, string(body))
	}

	log.Println("✅ 텔레그램 메시지 전송 완료")
	return nil
}

// SendMessageSafe는 텔레그램 메시지를 전송하고 에러를 로그로 출력합니다
func (b *Bot) SendMessageSafe(ctx context.Context, message string) {
	if err := b.SendMessage(ctx, message); err != nil {
		logger.Warning("텔레그램 메시지 전송 실패: %v", err)
	}
}
