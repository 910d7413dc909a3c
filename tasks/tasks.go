package tasks

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"time"

	"swisslotto/config"
	"swisslotto/logger"
	"swisslotto/lottery"
	"swisslotto/telegram"
)

// CheckLatest는 최근 추첨 결과를 조회하고 티켓 당첨 여부를 확인합니다
func CheckLatest(ctx context.Context, cfg config.Config, bot *telegram.Bot) (lottery.LottoDraw, error) {
	printBanner("🎱 최근 추첨 결과 확인")

	client, err := newClient(ctx, cfg, bot)
	if err != nil {
		return lottery.LottoDraw{}, err
	}

	draw, err := client.GetLatestDraw(ctx)
	return report(ctx, cfg, bot, "최근 추첨 결과", draw, err)
}

// CheckDate는 해당 날짜의 추첨 결과를 조회합니다. 그 날짜에 추첨이 없으면 실패합니다.
func CheckDate(ctx context.Context, cfg config.Config, bot *telegram.Bot, date time.Time) (lottery.LottoDraw, error) {
	printBanner(fmt.Sprintf("🗓 %s 추첨 결과 확인", lottery.FormatDate(date)))

	client, err := newClient(ctx, cfg, bot)
	if err != nil {
		return lottery.LottoDraw{}, err
	}

	draw, err := client.GetDrawOfDate(ctx, date)
	return report(ctx, cfg, bot, lottery.FormatDate(date)+" 추첨 결과", draw, err)
}

// CheckPrevious는 해당 날짜로 조회했을 때 페이지가 보여주는 추첨 결과를 확인합니다
func CheckPrevious(ctx context.Context, cfg config.Config, bot *telegram.Bot, date time.Time) (lottery.LottoDraw, error) {
	printBanner(fmt.Sprintf("⏪ %s 기준 직전 추첨 결과 확인", lottery.FormatDate(date)))

	client, err := newClient(ctx, cfg, bot)
	if err != nil {
		return lottery.LottoDraw{}, err
	}

	draw, err := client.GetPreviousDraw(ctx, date)
	return report(ctx, cfg, bot, lottery.FormatDate(date)+" 기준 직전 추첨 결과", draw, err)
}

func newClient(ctx context.Context, cfg config.Config, bot *telegram.Bot) (*lottery.Client, error) {
	client, err := lottery.NewClient(cfg.DrawURL)
	if err != nil {
		logger.Error("클라이언트 생성 실패: %v", err)
		if bot != nil {
			bot.SendMessageSafe(ctx, fmt.Sprintf("❌ <b>스위스로또 조회 실패</b>\n\n클라이언트 생성 오류: %s", html.EscapeString(err.Error())))
		}
		return nil, err
	}
	return client, nil
}

// report는 조회 결과를 로그로 출력하고 티켓 당첨 여부를 확인해 알림을 보냅니다
func report(ctx context.Context, cfg config.Config, bot *telegram.Bot, what string, draw lottery.LottoDraw, err error) (lottery.LottoDraw, error) {
	if err != nil {
		logFailure(what, err)
		if bot != nil {
			if errors.Is(err, lottery.ErrSuppliedDateHasNoDraw) {
				bot.SendMessageSafe(ctx, fmt.Sprintf("ℹ️ <b>%s 없음</b>\n\n해당 날짜에는 추첨이 없었습니다.", what))
			} else {
				bot.SendMessageSafe(ctx, fmt.Sprintf("❌ <b>%s 조회 실패</b>\n\n%s", what, html.EscapeString(err.Error())))
			}
		}
		return lottery.LottoDraw{}, err
	}

	log.Printf("✅ %s 조회 완료: %s\n", what, lottery.FormatDate(draw.Date))
	log.Printf("   추첨 번호: %v, 럭키: %d, 리플레이: %d\n", draw.MainNumbers, draw.LuckyNumber, draw.ReplayNumber)

	// 티켓 당첨 확인
	tickets, err := lottery.LoadTickets(cfg.TicketsFile)
	if err != nil {
		logger.Warning("티켓 파일 로드 실패: %v", err)
	}

	results := lottery.CheckTickets(tickets, draw)
	for _, result := range results {
		if result.Rank > 0 {
			log.Printf("   🎉 [%s] %d등 당첨 (%d개 일치, 럭키: %t)\n", result.Ticket.Name, result.Rank, result.Matched, result.LuckyMatched)
		} else {
			log.Printf("   ❌ [%s] 낙첨 (%d개 일치)\n", result.Ticket.Name, result.Matched)
		}
	}

	if bot != nil {
		bot.SendMessageSafe(ctx, lottery.FormatTicketMessage(draw, results))
	}

	return draw, nil
}

func logFailure(what string, err error) {
	var parsingErr *lottery.UnexpectedParsingError
	var dateErr *lottery.DateParsingError
	var requestErr *lottery.RequestError

	switch {
	case errors.Is(err, lottery.ErrSuppliedDateHasNoDraw):
		logger.Info("%s 없음: 해당 날짜에는 추첨이 없었습니다", what)
	case errors.As(err, &parsingErr):
		logger.Error("%s 페이지 구조 오류: %v", what, parsingErr)
		logger.Debug("페이지 내용 샘플 (처음 300자):\n%s", parsingErr.HTML[:min(300, len(parsingErr.HTML))])
	case errors.As(err, &dateErr):
		logger.Error("%s 날짜 형식 오류: %v", what, dateErr)
	case errors.As(err, &requestErr):
		logger.Error("%s 요청 실패: %v", what, requestErr)
	default:
		logger.Error("%s 조회 실패: %v", what, err)
	}
}

func printBanner(title string) {
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Printf("          %s\n", title)
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}
