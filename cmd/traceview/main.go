// Traceview - CLI утилита для просмотра трейсов агента в терминале.
//
// Использование:
//
//	./traceview trace.json
//	cat trace.json | ./traceview
//	./traceview -raw -width 120 trace.json
//	./traceview -pager trace.json
//	./traceview -prompt              # встроенный промпт PubMed-агента
//	./traceview -prompt my_agent     # промпт из prompts/my_agent.yaml
//
// config.yaml ищется в текущей директории, затем рядом с бинарником.
// Если файла нет, используются встроенные настройки.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/ilkoid/poncho-trace/pkg/app"
	"github.com/ilkoid/poncho-trace/pkg/prompts"
	"github.com/ilkoid/poncho-trace/pkg/utils"
)

// Version - версия утилиты (заполняется при сборке)
var Version = "dev"

func main() {
	// 1. Парсим флаги
	var (
		configPath  = flag.String("config", "", "Path to config.yaml (default: ./config.yaml or next to the binary)")
		showRaw     = flag.Bool("raw", false, "Also print the raw response structure")
		usePager    = flag.Bool("pager", false, "Open the report in a scrollable pager")
		width       = flag.Int("width", 0, "Console width in columns")
		colorMode   = flag.String("color", "", "Color output: auto, always, never")
		scheme      = flag.String("scheme", "", "Color scheme: default, dark, light, dracula")
		logFlag     = flag.Bool("log", false, "Write a log file (traceview-*.log)")
		promptMode  = flag.Bool("prompt", false, "Print a stored system prompt and exit")
		showHelp    = flag.Bool("help", false, "Show help")
		showVersion = flag.Bool("version", false, "Show version")
	)
	flag.Parse()

	// 2. Обработка специальных флагов
	if *showVersion {
		fmt.Printf("traceview version %s\n", Version)
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: at most one argument is allowed")
		fmt.Fprintln(os.Stderr, "Usage: traceview [flags] [file.json|-]")
		fmt.Fprintln(os.Stderr, "Run 'traceview -help' for more information")
		os.Exit(1)
	}

	// 3. Загружаем конфигурацию и применяем флаги поверх неё
	cfg, cfgPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	overrides := flagOverrides{
		Width:   *width,
		Color:   *colorMode,
		Scheme:  *scheme,
		ShowRaw: *showRaw,
		Pager:   *usePager,
		Log:     *logFlag,
	}
	if err := overrides.apply(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// 4. Создаём компоненты
	comps, err := app.Initialize(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating components: %v\n", err)
		os.Exit(1)
	}
	defer utils.Close()

	utils.Info("traceview started", "version", Version, "config", cfgPath, "args", flag.Args())

	// 5. Режим промпта
	if *promptMode {
		promptID := prompts.PubMedAgentPromptID
		if flag.NArg() == 1 {
			promptID = flag.Arg(0)
		}

		text, err := promptText(comps.Prompts, promptID)
		if err != nil {
			exitWithError(err)
		}
		fmt.Println(text)
		return
	}

	// 6. Читаем трейс
	input := flag.Arg(0)
	if (input == "" || input == "-") && isatty.IsTerminal(os.Stdin.Fd()) {
		exitWithError(fmt.Errorf("no input: pass a file or pipe JSON to stdin"))
	}

	rec, name, err := app.ReadRecord(input, os.Stdin)
	if err != nil {
		exitWithError(err)
	}

	// 7. Выводим отчёт
	if cfg.Display.Pager {
		if err := showInPager(comps, rec, name); err != nil {
			exitWithError(err)
		}
		return
	}

	printReport(os.Stdout, comps, rec)

	if path := utils.LogPath(); path != "" {
		fmt.Fprintf(os.Stderr, "\nLog: %s\n", path)
	}
}

// promptText загружает промпт для -prompt.
// Для неизвестного id в ошибку добавляется список встроенных промптов.
func promptText(registry *prompts.SourceRegistry, promptID string) (string, error) {
	text, err := registry.System(promptID)
	if errors.Is(err, prompts.ErrNotFound) {
		return "", fmt.Errorf("%w (built-in prompts: %s)", err,
			strings.Join(prompts.BuiltinPromptIDs(), ", "))
	}
	if err != nil {
		return "", err
	}
	return strings.Trim(text, "\n"), nil
}

// exitWithError печатает ошибку, закрывает лог и завершает процесс с кодом 1.
func exitWithError(err error) {
	utils.Error("traceview failed", "error", err)
	utils.Close()
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// printHelp выводит справку
func printHelp() {
	fmt.Println("Traceview - просмотр трейсов агента в терминале")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  traceview [flags] [file.json|-]   render an agent response record")
	fmt.Println("  traceview -prompt [id]            print a stored system prompt (default \"pubmed_agent\")")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -config string  Path to config.yaml (default \"./config.yaml\")")
	fmt.Println("  -raw            Also print the raw response structure")
	fmt.Println("  -pager          Open the report in a scrollable pager")
	fmt.Println("  -width int      Console width in columns (default 96)")
	fmt.Println("  -color string   Color output: auto, always, never (default \"auto\")")
	fmt.Println("  -scheme string  Color scheme: default, dark, light, dracula")
	fmt.Println("  -log            Write a log file (traceview-*.log)")
	fmt.Println("  -prompt         Print a stored system prompt and exit")
	fmt.Println("  -version        Show version")
	fmt.Println("  -help           Show this help")
	fmt.Println()
	fmt.Println("Pager keys: ↑/↓ scroll, PgUp/PgDn page, g/G top/bottom, s save, ? help, q quit.")
	fmt.Println()
	fmt.Println("If config.yaml is not found, built-in defaults are used.")
}
