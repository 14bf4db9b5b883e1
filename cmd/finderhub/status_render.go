package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// statusKind classifies one line of a run or budget report.
type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

func (k statusKind) label() string {
	switch k {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (k statusKind) color() text.Color {
	switch k {
	case statusOK:
		return text.FgGreen
	case statusWarn:
		return text.FgYellow
	case statusError:
		return text.FgRed
	default:
		return text.FgBlue
	}
}

const reportLabelWidth = 12

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	line := fmt.Sprintf("  %-*s [%s]", reportLabelWidth, label+":", kind.label())
	if message != "" {
		line += " " + message
	}
	if colorize {
		return kind.color().Sprint(line)
	}
	return line
}

// renderSectionHeader returns the heading and rule lines that open a report.
func renderSectionHeader(title string, colorize bool) []string {
	heading := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(heading))
	if colorize {
		heading = text.FgBlue.Sprint(heading)
		rule = text.FgBlue.Sprint(rule)
	}
	return []string{heading, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
