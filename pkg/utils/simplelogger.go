// Простой файловый логгер для CLI.
//
// Логгер создаёт .log файл в указанной директории с timestamp в имени.
// Пока InitLogger не вызван, все вызовы Info/Debug/... - no-op, поэтому
// библиотечный код может логировать без проверок.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	logFile  *os.File
	logPath  string
	logMutex sync.Mutex
)

// InitLogger создает/открывает .log файл в директории dir.
//
// Имя файла: traceview-YYYY-MM-DD-HH-MM.log (например, traceview-2025-12-27-15-30.log).
// Пустой dir означает текущую директорию. Повторный вызов ничего не делает.
func InitLogger(dir string) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		return nil
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02-15-04")
	filename := filepath.Join(dir, fmt.Sprintf("traceview-%s.log", timestamp))

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f
	logPath = filename

	// Пишем напрямую, мьютекс уже захвачен
	writeLine(formatLine("INFO", "Logger initialized", "file", filename))

	return nil
}

// LogPath возвращает путь к текущему лог-файлу или пустую строку.
func LogPath() string {
	logMutex.Lock()
	defer logMutex.Unlock()
	return logPath
}

// Info - информационное сообщение.
func Info(msg string, keyvals ...any) {
	log("INFO", msg, keyvals...)
}

// Error - сообщение об ошибке.
func Error(msg string, keyvals ...any) {
	log("ERROR", msg, keyvals...)
}

// Debug - отладочное сообщение.
func Debug(msg string, keyvals ...any) {
	log("DEBUG", msg, keyvals...)
}

// Warn - предупреждение.
func Warn(msg string, keyvals ...any) {
	log("WARN", msg, keyvals...)
}

func log(level, msg string, keyvals ...any) {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile == nil {
		return
	}
	writeLine(formatLine(level, msg, keyvals...))
}

// formatLine собирает строку лога.
//
// Формат: [YYYY-MM-DD HH:MM:SS] LEVEL: message key1=value1 key2=value2
// Непарный последний ключ пропускается.
func formatLine(level, msg string, keyvals ...any) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s] %s: %s", timestamp, level, msg)

	for i := 0; i+1 < len(keyvals); i += 2 {
		line += fmt.Sprintf(" %v=%v", keyvals[i], keyvals[i+1])
	}

	return line + "\n"
}

// writeLine пишет строку в файл. Вызывается под logMutex.
// При ошибке записи - fallback на stderr.
func writeLine(line string) {
	if _, err := logFile.WriteString(line); err != nil {
		fmt.Fprintf(os.Stderr, "%s", line)
		fmt.Fprintf(os.Stderr, "[LOGGER ERROR: WriteString failed: %v]\n", err)
		return
	}

	if err := logFile.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Sync failed: %v]\n", err)
	}
}

// Close закрывает лог-файл.
//
// Вызывается через defer в main().
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Close failed: %v]\n", err)
		}
		logFile = nil
		logPath = ""
	}
}
