package lottery

import (
	"fmt"
	"html"
	"strings"
)

// TicketResult는 티켓 1장의 당첨 확인 결과입니다
type TicketResult struct {
	Ticket        Ticket
	Matched       int  // 일치한 추첨 번호 개수
	LuckyMatched  bool // 럭키 번호 일치 여부
	ReplayMatched bool // 리플레이 번호 일치 여부
	Rank          int  // 등수 (0이면 낙첨)
}

// CheckTicket은 티켓 번호와 추첨 결과를 비교하여 등수를 판정합니다
func CheckTicket(ticket Ticket, draw LottoDraw) TicketResult {
	result := TicketResult{Ticket: ticket}

	// 추첨 번호와 일치하는 개수 확인
	for _, tNum := range ticket.Numbers {
		if draw.hasMainNumber(tNum) {
			result.Matched++
		}
	}

	result.LuckyMatched = ticket.LuckyNumber == int(draw.LuckyNumber)
	result.ReplayMatched = ticket.ReplayNumber != 0 && ticket.ReplayNumber == int(draw.ReplayNumber)

	// 등수 판정
	switch result.Matched {
	case 6:
		result.Rank = rankWithLucky(1, result.LuckyMatched) // 6개 + 럭키: 1등, 6개: 2등
	case 5:
		result.Rank = rankWithLucky(3, result.LuckyMatched)
	case 4:
		result.Rank = rankWithLucky(5, result.LuckyMatched)
	case 3:
		result.Rank = rankWithLucky(7, result.LuckyMatched)
	default:
		result.Rank = 0 // 낙첨
	}

	return result
}

func rankWithLucky(best int, lucky bool) int {
	if lucky {
		return best
	}
	return best + 1
}

func (d LottoDraw) hasMainNumber(num int) bool {
	for _, n := range d.MainNumbers {
		if int(n) == num {
			return true
		}
	}
	return false
}

// FormatDrawMessage는 추첨 결과 메시지를 포맷합니다
func FormatDrawMessage(draw LottoDraw) string {
	var sb strings.Builder

	sb.WriteString("🎰 <b>스위스로또 추첨 결과</b>\n\n")
	fmt.Fprintf(&sb, "🗓 추첨일: %s\n", FormatDate(draw.Date))
	sb.WriteString("🎱 추첨 번호: ")
	for i, num := range draw.MainNumbers {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "<b>%02d</b>", num)
	}
	fmt.Fprintf(&sb, "\n🍀 럭키 번호: <b>%d</b>\n", draw.LuckyNumber)
	fmt.Fprintf(&sb, "🔁 리플레이: <b>%d</b>\n", draw.ReplayNumber)

	return sb.String()
}

// FormatTicketMessage는 추첨 결과와 티켓별 당첨 결과 메시지를 포맷합니다
func FormatTicketMessage(draw LottoDraw, results []TicketResult) string {
	msg := FormatDrawMessage(draw)

	if len(results) == 0 {
		return msg
	}

	msg += "\n━━━━━━━━━━━━━━━━━━━━\n\n"

	bestRank := 0
	totalWinnings := 0

	for _, result := range results {
		msg += fmt.Sprintf("🎲 [%s]\n", html.EscapeString(result.Ticket.Name))
		msg += "   번호: "
		for i, num := range result.Ticket.Numbers {
			if i > 0 {
				msg += ", "
			}
			// 일치하는 번호는 강조
			if draw.hasMainNumber(num) {
				msg += fmt.Sprintf("✅<b>%02d</b>", num)
			} else {
				msg += fmt.Sprintf("%02d", num)
			}
		}
		msg += fmt.Sprintf(" / 럭키 %d\n", result.Ticket.LuckyNumber)

		if result.Rank > 0 {
			msg += fmt.Sprintf("   🎉 <b>%d등 당첨!</b> (%d개 일치", result.Rank, result.Matched)
			if result.LuckyMatched {
				msg += " + 럭키"
			}
			msg += ")\n"

			if bestRank == 0 || result.Rank < bestRank {
				bestRank = result.Rank
			}
			totalWinnings++
		} else {
			msg += fmt.Sprintf("   ❌ 낙첨 (%d개 일치)\n", result.Matched)
		}

		if result.ReplayMatched {
			msg += "   🔁 리플레이 일치 (다음 회차 무료 참여)\n"
		}
		msg += "\n"
	}

	msg += "━━━━━━━━━━━━━━━━━━━━\n"

	if totalWinnings > 0 {
		msg += fmt.Sprintf("\n🎊 <b>총 %d장 당첨!</b>\n", totalWinnings)
		if bestRank <= 3 {
			msg += "💰 <b>고액 당첨! 축하합니다!</b> 🎉\n"
		}
	} else {
		msg += "\n아쉽지만 다음 기회에! 😊\n"
	}

	return msg
}
