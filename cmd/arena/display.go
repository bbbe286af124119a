package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/qixgo/arena/internal/game"
	"github.com/qixgo/arena/internal/persist"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ── Console helpers ────────────────────────────────────────────────

func printBanner(level string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m               qix arena                   \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mlevel:\033[0m %s\n\n", level)
}

func printSection(title string) {
	lineLen := 46 - utf8.RuneCountInString(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label, value string) {
	dotsLen := 42 - utf8.RuneCountInString(label) - utf8.RuneCountInString(value)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), value)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// printSummary writes the end-of-session report with grouped digits.
func printSummary(res game.Result) {
	p := message.NewPrinter(language.English)
	printSection("session")
	printStat("outcome", res.Outcome.String())
	printStat("covered", p.Sprintf("%.1f%%", res.Covered))
	printStat("lives left", p.Sprintf("%d", res.Lives))
	printStat("frames", p.Sprintf("%d", res.Frames))
	printStat("claims", p.Sprintf("%d", res.Claims))
	printStat("deaths", p.Sprintf("%d", res.Deaths))
	printStat("grid digest", fmt.Sprintf("%x", res.Digest[:6]))
	fmt.Println()
}

func printBest(level string, rows []persist.SessionRow) {
	if len(rows) == 0 {
		return
	}
	p := message.NewPrinter(language.English)
	printSection("best of " + level)
	for i, r := range rows {
		printStat(fmt.Sprintf("%d. %s", i+1, r.Player),
			p.Sprintf("%.1f%% in %d frames", r.Covered, r.Frames))
	}
	fmt.Println()
}
