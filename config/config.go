package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"

	"swisslotto/lottery"
)

// DefaultFile은 기본 설정 파일 경로입니다
const DefaultFile = "config.json"

// Config는 전체 설정을 담는 구조체입니다
type Config struct {
	DrawURL          string `json:"drawUrl,omitempty" envconfig:"SWISSLOTTO_DRAW_URL"`
	TicketsFile      string `json:"ticketsFile,omitempty" envconfig:"SWISSLOTTO_TICKETS_FILE"`
	TelegramBotToken string `json:"telegramBotToken,omitempty" envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `json:"telegramChatId,omitempty" envconfig:"TELEGRAM_CHAT_ID"`
	Timezone         string `json:"timezone,omitempty" envconfig:"SWISSLOTTO_TIMEZONE"`
	CheckSchedule    string `json:"checkSchedule,omitempty" envconfig:"SWISSLOTTO_SCHEDULE"`
	LogDir           string `json:"logDir,omitempty" envconfig:"SWISSLOTTO_LOG_DIR"`
}

// Default는 기본 설정을 반환합니다
func Default() Config {
	return Config{
		DrawURL:       lottery.DefaultDrawURL,
		TicketsFile:   "tickets.json",
		Timezone:      "Europe/Zurich",
		CheckSchedule: "30 20 * * 3,6", // 수요일, 토요일 추첨 후
		LogDir:        "logs",
	}
}

// Load는 설정을 로드합니다
func Load(filename string) (Config, error) {
	// 1. 기본값
	config := Default()

	// 2. 설정 파일 (없으면 건너뜀)
	if err := LoadFromFile(filename, &config); err != nil {
		if !os.IsNotExist(err) {
			return Config{}, err
		}
		log.Printf("설정 파일이 없습니다 (%s), 기본값을 사용합니다\n", filename)
	}

	// 3. 환경변수
	if err := LoadFromEnv(&config); err != nil {
		return Config{}, err
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// LoadFromEnv는 설정된 환경변수만 덮어씁니다
func LoadFromEnv(config *Config) error {
	if err := envconfig.Process("", config); err != nil {
		return fmt.Errorf("환경변수 로드 실패: %w", err)
	}
	return nil
}

// LoadFromFile은 파일의 값으로 설정을 덮어씁니다. 파일이 없으면 os.IsNotExist 에러를 그대로 반환합니다.
func LoadFromFile(filename string, config *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("설정 파일 읽기 실패: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("설정 파일 파싱 실패: %w", err)
	}

	return nil
}

// Validate는 설정 값을 검증합니다
func (c *Config) Validate() error {
	u, err := url.Parse(c.DrawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("당첨번호 페이지 주소가 올바르지 않습니다: %q", c.DrawURL)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if _, err := cron.ParseStandard(c.CheckSchedule); err != nil {
		return fmt.Errorf("스케줄 형식이 올바르지 않습니다 (%q): %w", c.CheckSchedule, err)
	}

	if (c.TelegramBotToken == "") != (c.TelegramChatID == "") {
		return fmt.Errorf("텔레그램 봇 토큰과 채팅 ID는 함께 설정해야 합니다")
	}

	return nil
}

// Location은 설정된 시간대를 반환합니다
func (c *Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("시간대 로드 실패 (%q): %w", c.Timezone, err)
	}
	return location, nil
}

// TelegramEnabled는 텔레그램 알림 사용 여부를 반환합니다
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

// Print는 설정 정보를 출력합니다 (보안상 토큰은 마스킹)
func (c *Config) Print() {
	log.Println("=== 설정 정보 ===")
	log.Printf("  당첨번호 페이지: %s\n", c.DrawURL)
	log.Printf("  티켓 파일: %s\n", c.TicketsFile)
	log.Printf("  시간대: %s\n", c.Timezone)
	log.Printf("  확인 스케줄: %s\n", c.CheckSchedule)

	if c.TelegramEnabled() {
		log.Printf("  텔레그램 알림: 활성화 (%s)\n", maskToken(c.TelegramBotToken))
	} else {
		log.Println("  텔레그램 알림: 비활성화")
	}
}

func maskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-4)
}
