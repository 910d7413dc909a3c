package main

import (
	"context"
	"log"
	"time"

	"swisslotto/lottery"
)

// 실제 스위스로또 페이지를 대상으로 조회가 되는지 확인하는 수동 점검용 프로그램입니다
func main() {
	log.Println("=== 당첨번호 조회 테스트 ===")
	log.Println()

	client, err := lottery.NewClient("")
	if err != nil {
		log.Fatalf("❌ 클라이언트 생성 실패: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	draw, err := client.GetLatestDraw(ctx)
	if err != nil {
		log.Fatalf("❌ 최근 추첨 결과 조회 실패: %v", err)
	}

	log.Println("✅ 조회 성공!")
	log.Printf("추첨일: %s\n", lottery.FormatDate(draw.Date))
	log.Printf("추첨 번호: %v\n", draw.MainNumbers)
	log.Printf("럭키 번호: %d\n", draw.LuckyNumber)
	log.Printf("리플레이 번호: %d\n", draw.ReplayNumber)
	log.Println()

	// 지난주 같은 요일 기준 직전 추첨
	lastWeek := lottery.Today().AddDate(0, 0, -7)
	previous, err := client.GetPreviousDraw(ctx, lastWeek)
	if err != nil {
		log.Fatalf("❌ 직전 추첨 결과 조회 실패: %v", err)
	}

	log.Printf("✅ %s 기준 직전 추첨: %s\n", lottery.FormatDate(lastWeek), previous)
}
