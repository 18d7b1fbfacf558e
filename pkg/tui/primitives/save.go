package primitives

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// SaveReport сохраняет отчёт в текстовый файл без ANSI кодов.
//
// Имя файла: traceview_YYYYMMDD_HHMMSS.txt в каталоге dir
// (пустой dir - текущий каталог). Возвращает путь к файлу.
func SaveReport(dir string, lines []string, now time.Time) (string, error) {
	filename := filepath.Join(dir, fmt.Sprintf("traceview_%s.txt", now.Format("20060102_150405")))

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(ansi.Strip(line))
		sb.WriteString("\n")
	}

	if err := os.WriteFile(filename, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return filename, nil
}
