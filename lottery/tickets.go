package lottery

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	maxMainNumber   = 42
	maxLuckyNumber  = 6
	maxReplayNumber = 10
)

// Ticket은 사용자가 참여 중인 티켓 1장입니다
type Ticket struct {
	Name         string `json:"name"`                   // 표시 이름
	Numbers      []int  `json:"numbers"`                // 선택한 번호 6개 (1~42)
	LuckyNumber  int    `json:"luckyNumber"`            // 럭키 번호 (1~6)
	ReplayNumber int    `json:"replayNumber,omitempty"` // 리플레이 번호 (0이면 미참여, 1~10)
}

// ticketFile은 티켓 파일 형식입니다
type ticketFile struct {
	Tickets []Ticket `json:"tickets"`
}

// Validate는 티켓 번호가 스위스로또 규칙에 맞는지 검사합니다
func (t Ticket) Validate() error {
	if len(t.Numbers) != MainNumberCount {
		return fmt.Errorf("번호는 %d개여야 합니다 (현재 %d개)", MainNumberCount, len(t.Numbers))
	}

	seen := make(map[int]bool, len(t.Numbers))
	for _, num := range t.Numbers {
		if num < 1 || num > maxMainNumber {
			return fmt.Errorf("번호 %d: 1~%d 범위를 벗어났습니다", num, maxMainNumber)
		}
		if seen[num] {
			return fmt.Errorf("번호 %d: 중복되었습니다", num)
		}
		seen[num] = true
	}

	if t.LuckyNumber < 1 || t.LuckyNumber > maxLuckyNumber {
		return fmt.Errorf("럭키 번호 %d: 1~%d 범위를 벗어났습니다", t.LuckyNumber, maxLuckyNumber)
	}

	if t.ReplayNumber < 0 || t.ReplayNumber > maxReplayNumber {
		return fmt.Errorf("리플레이 번호 %d: 0~%d 범위를 벗어났습니다", t.ReplayNumber, maxReplayNumber)
	}

	return nil
}

// LoadTickets는 티켓 파일을 읽어옵니다
func LoadTickets(path string) ([]Ticket, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // 파일이 없으면 nil 반환
		}
		return nil, fmt.Errorf("티켓 파일 읽기 실패: %w", err)
	}

	var file ticketFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("티켓 파일 파싱 실패: %w", err)
	}

	// 각 티켓 검증
	for i, ticket := range file.Tickets {
		if err := ticket.Validate(); err != nil {
			return nil, fmt.Errorf("티켓 %d (%s): %w", i+1, ticket.Name, err)
		}
		if ticket.Name == "" {
			file.Tickets[i].Name = fmt.Sprintf("티켓 %d", i+1)
		}
	}

	return file.Tickets, nil
}

// CheckTickets는 모든 티켓의 당첨 여부를 확인합니다
func CheckTickets(tickets []Ticket, draw LottoDraw) []TicketResult {
	results := make([]TicketResult, 0, len(tickets))
	for _, ticket := range tickets {
		results = append(results, CheckTicket(ticket, draw))
	}
	return results
}
