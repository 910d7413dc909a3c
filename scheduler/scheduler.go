package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"swisslotto/logger"
)

// Scheduler는 크론 스케줄러입니다
type Scheduler struct {
	cron     *cron.Cron
	location *time.Location
}

// New는 location 시간대로 동작하는 스케줄러를 생성합니다. nil이면 UTC를 사용합니다.
func New(location *time.Location) *Scheduler {
	if location == nil {
		logger.Warning("시간대가 없어 UTC를 사용합니다")
		location = time.UTC
	}

	return &Scheduler{
		// 이전 실행이 끝나지 않았으면 다음 실행은 건너뜀
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		location: location,
	}
}

// AddFunc는 크론 작업을 추가합니다
func (s *Scheduler) AddFunc(spec string, cmd func()) error {
	_, err := s.cron.AddFunc(spec, cmd)
	return err
}

// Next는 등록된 첫 번째 작업의 다음 실행 시각을 반환합니다
func (s *Scheduler) Next() (time.Time, bool) {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}, false
	}
	return entries[0].Schedule.Next(time.Now().In(s.location)), true
}

// Start는 스케줄러를 시작합니다
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop은 스케줄러를 중지하고 실행 중인 작업이 끝나면 완료되는 context를 반환합니다
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
