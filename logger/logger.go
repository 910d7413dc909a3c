package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

var (
	logFile *os.File
)

// Init는 로거를 초기화하고 dir 아래에 로그 파일을 생성합니다.
// 로그는 console과 파일 둘 다에 출력됩니다.
func Init(dir string, console io.Writer) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
	}

	// 로그 파일명: logs/swisslotto_2026-10-17.log
	logFileName := fmt.Sprintf("swisslotto_%s.log", time.Now().Format("2006-01-02"))
	logFilePath := filepath.Join(dir, logFileName)

	// 로그 파일 열기 (append 모드)
	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("로그 파일 생성 실패: %w", err)
	}

	SetOutput(io.MultiWriter(console, logFile))

	log.Printf("✅ 로그 파일 초기화 완료: %s\n", logFilePath)

	return nil
}

// SetOutput은 로그 출력 대상을 바꿉니다
func SetOutput(w io.Writer) {
	log.SetOutput(w)
	log.SetFlags(log.Ldate | log.Ltime)
}

// Close는 로그 파일을 닫습니다
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// 로그 레벨 접두어
const (
	levelInfo    = "[INFO] "
	levelWarning = "[WARNING] "
	levelError   = "[ERROR] "
	levelDebug   = "[DEBUG] "
)

func logf(level, format string, v ...interface{}) {
	log.Output(3, level+fmt.Sprintf(format, v...))
}

// Info는 정보 로그를 출력합니다
func Info(format string, v ...interface{}) { logf(levelInfo, format, v...) }

// Warning은 경고 로그를 출력합니다 (텔레그램 전송 실패, 티켓 파일 오류 등)
func Warning(format string, v ...interface{}) { logf(levelWarning, format, v...) }

// Error는 조회 실패 로그를 출력합니다
func Error(format string, v ...interface{}) { logf(levelError, format, v...) }

// Debug는 페이지 샘플처럼 길고 자세한 내용을 출력합니다
func Debug(format string, v ...interface{}) { logf(levelDebug, format, v...) }
