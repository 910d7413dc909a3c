package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swisslotto/config"
	"swisslotto/logger"
	"swisslotto/lottery"
	"swisslotto/scheduler"
	"swisslotto/tasks"
	"swisslotto/telegram"
)

func main() {
	// 커맨드 라인 플래그 파싱
	configFile := flag.String("config", config.DefaultFile, "설정 파일 경로")
	date := flag.String("date", "", "해당 날짜(DD.MM.YYYY)의 추첨 결과 조회 (추첨이 없으면 실패)")
	previous := flag.String("previous", "", "해당 날짜(DD.MM.YYYY) 기준 직전 추첨 결과 조회")
	asJSON := flag.Bool("json", false, "추첨 결과를 JSON으로 출력")
	serviceMode := flag.Bool("service", false, "스케줄러 모드 (추첨일 저녁마다 결과 확인)")

	flag.Parse()

	// 설정 로드
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("❌ 설정 로드 실패: %v\n", err)
	}

	// 로그 파일 초기화 (JSON 출력 시 콘솔 로그는 stderr로)
	console := io.Writer(os.Stdout)
	if *asJSON {
		console = os.Stderr
	}
	if err := logger.Init(cfg.LogDir, console); err != nil {
		log.Fatalf("로그 초기화 실패: %v", err)
	}
	defer logger.Close()

	log.Println("╔════════════════════════════════════════╗")
	log.Println("║      스위스로또 당첨번호 조회 프로그램      ║")
	log.Println("╚════════════════════════════════════════╝")
	log.Println()

	// 설정 정보 출력
	cfg.Print()
	log.Println()

	// 텔레그램 봇 초기화
	var bot *telegram.Bot
	if cfg.TelegramEnabled() {
		bot = telegram.New(cfg.TelegramBotToken, cfg.TelegramChatID)
		log.Println("✅ 텔레그램 봇 초기화 완료")
	} else {
		logger.Warning("텔레그램 설정이 없습니다. 알림은 전송되지 않습니다.")
	}

	log.Println()

	ctx := context.Background()

	var draw lottery.LottoDraw

	// 플래그에 따라 실행
	switch {
	case *serviceMode:
		runScheduler(cfg, bot)
		return

	case *date != "":
		day := parseDateFlag("date", *date)
		draw, err = tasks.CheckDate(ctx, cfg, bot, day)

	case *previous != "":
		day := parseDateFlag("previous", *previous)
		draw, err = tasks.CheckPrevious(ctx, cfg, bot, day)

	default:
		// 기본값: 최근 추첨 결과 1회 조회
		draw, err = tasks.CheckLatest(ctx, cfg, bot)
	}

	if err != nil {
		logger.Close()
		os.Exit(1)
	}

	if *asJSON {
		data, err := json.MarshalIndent(draw, "", "  ")
		if err != nil {
			log.Fatalf("❌ JSON 변환 실패: %v", err)
		}
		fmt.Println(string(data))
	}
}

func parseDateFlag(name, value string) time.Time {
	day, err := lottery.ParseDate(value)
	if err != nil {
		log.Fatalf("❌ -%s 날짜 형식이 올바르지 않습니다 (DD.MM.YYYY): %v", name, err)
	}
	return day
}

// runScheduler는 스케줄러를 실행합니다
func runScheduler(cfg config.Config, bot *telegram.Bot) {
	log.Println("🔄 스케줄러 모드 시작")
	log.Println()

	location, err := cfg.Location()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	sched := scheduler.New(location)

	if err := sched.AddFunc(cfg.CheckSchedule, func() {
		tasks.CheckLatest(context.Background(), cfg, bot)
	}); err != nil {
		log.Fatalf("❌ 추첨 결과 확인 스케줄 등록 실패: %v", err)
	}

	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println("    예약된 스케줄:")
	log.Printf("    - 추첨 결과 확인: %s (%s)\n", cfg.CheckSchedule, cfg.Timezone)
	if next, ok := sched.Next(); ok {
		log.Printf("    - 다음 실행: %s\n", next.In(location).Format("2006-01-02 15:04"))
	}
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println()

	sched.Start()

	log.Println("✅ 스케줄러 시작 완료")
	log.Println("   종료하려면 Ctrl+C를 누르세요.")
	log.Println()

	// 시그널 대기
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println()
	log.Println("⚠️  종료 신호를 받았습니다.")
	log.Println("   실행 중인 작업이 끝나기를 기다립니다...")

	<-sched.Stop().Done()

	log.Println("✅ 프로그램 종료")
}
