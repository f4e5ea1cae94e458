package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	domainErrors "github.com/thomas-vilte/issueseed/internal/errors"
	"github.com/thomas-vilte/issueseed/internal/i18n"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Accent  = color.New(color.FgMagenta, color.Bold)
	Dim     = color.New(color.FgHiBlack)
)

// Emoji prefixes used by the progress lines.
const (
	EmojiRocket  = "🚀"
	EmojiFolder  = "📁"
	EmojiWorking = "🔄"
	EmojiSuccess = "✅"
	EmojiFailure = "❌"
	EmojiLink    = "🔗"
	EmojiInfo    = "ℹ️"
	EmojiWarning = "⚠️"
	EmojiList    = "📋"
)

// Printer writes prefixed, colored lines. Emoji prefixes are dropped when
// UseEmoji is false.
type Printer struct {
	W        io.Writer
	UseEmoji bool
}

func NewPrinter(w io.Writer, useEmoji bool) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{W: w, UseEmoji: useEmoji}
}

func (p *Printer) line(emoji string, c *color.Color, msg string) {
	if p.UseEmoji && emoji != "" {
		_, _ = fmt.Fprintf(p.W, "%s %s\n", emoji, c.Sprint(msg))
		return
	}
	_, _ = fmt.Fprintln(p.W, c.Sprint(msg))
}

func (p *Printer) Println(emoji, msg string) {
	if p.UseEmoji && emoji != "" {
		_, _ = fmt.Fprintf(p.W, "%s %s\n", emoji, msg)
		return
	}
	_, _ = fmt.Fprintln(p.W, msg)
}

func (p *Printer) Blank() {
	_, _ = fmt.Fprintln(p.W)
}

func (p *Printer) Success(msg string) {
	p.line(EmojiSuccess, Success, msg)
}

func (p *Printer) Error(msg string) {
	p.line(EmojiFailure, Error, msg)
}

func (p *Printer) Warning(msg string) {
	p.line(EmojiWarning, Warning, msg)
}

func (p *Printer) Info(msg string) {
	p.line(EmojiInfo, Info, msg)
}

func (p *Printer) Banner(msg string) {
	p.line(EmojiRocket, Accent, msg)
}

func (p *Printer) KeyValue(key, value string) {
	keyColored := Dim.Sprint(key + ":")
	valueColored := color.New(color.FgWhite, color.Bold).Sprint(value)
	_, _ = fmt.Fprintf(p.W, "   %s %s\n", keyColored, valueColored)
}

func (p *Printer) Separator() {
	_, _ = fmt.Fprintln(p.W, Dim.Sprint(strings.Repeat("─", 60)))
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Success.Sprint(EmojiSuccess), Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint(EmojiFailure), Error.Sprint(msg))
}

// SmartSpinner is a spinner that reports its outcome when stopped.
type SmartSpinner struct {
	spinner *spinner.Spinner
	w       io.Writer
}

// NewSmartSpinner creates a spinner writing to w. The spinner stays silent
// when w is not a terminal.
func NewSmartSpinner(w io.Writer, message string) *SmartSpinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+message),
		spinner.WithWriter(w),
	)
	return &SmartSpinner{spinner: s, w: w}
}

func (s *SmartSpinner) Start() {
	s.spinner.Start()
}

func (s *SmartSpinner) Stop() {
	s.spinner.Stop()
}

func (s *SmartSpinner) Success(msg string) {
	s.Stop()
	PrintSuccess(s.w, msg)
}

func (s *SmartSpinner) Error(msg string) {
	s.Stop()
	PrintError(s.w, msg)
}

// WithSpinner runs fn while a spinner shows message.
func WithSpinner(w io.Writer, message string, fn func() error) error {
	s := NewSmartSpinner(w, message)
	s.Start()

	if err := fn(); err != nil {
		s.Stop()
		return err
	}

	s.Stop()
	return nil
}

// HandleAppError prints err in a friendly way. AppErrors get their type,
// details and suggestion. If translations is nil, English defaults are used.
func HandleAppError(w io.Writer, err error, translations ...*i18n.Translations) {
	if err == nil {
		return
	}

	var t *i18n.Translations
	if len(translations) > 0 && translations[0] != nil {
		t = translations[0]
	}

	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		_, _ = fmt.Fprintln(w)
		_, _ = Error.Fprintf(w, "%s %s: %s\n", EmojiFailure, appErr.Type, appErr.Message)

		if appErr.Err != nil {
			_, _ = Dim.Fprintf(w, "   Details: %v\n", appErr.Err)
		}

		if appErr.Suggestion != "" {
			_, _ = fmt.Fprintln(w)
			tryPrefix := "💡 Try: "
			if t != nil {
				tryPrefix = t.GetMessage("ui_error_try_suggestion", 0, nil)
			}
			_, _ = color.New(color.FgCyan).Fprint(w, tryPrefix)
			for i, line := range strings.Split(appErr.Suggestion, "\n") {
				if i == 0 {
					_, _ = fmt.Fprintln(w, line)
				} else {
					_, _ = fmt.Fprintf(w, "       %s\n", line)
				}
			}
		}
		_, _ = fmt.Fprintln(w)

		return
	}

	PrintError(w, err.Error())
}
