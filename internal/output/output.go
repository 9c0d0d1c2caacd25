package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jywlabs/brio/internal/journal"
	"github.com/jywlabs/brio/internal/schema"
)

// Printer handles the line-oriented output of the plain wizard and the
// admin commands.
type Printer struct {
	w io.Writer
}

// New creates a new Printer that writes to the given writer.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Screen prints a welcome or farewell screen.
func (p *Printer) Screen(s schema.Screen) {
	if s.Title != "" {
		fmt.Fprintf(p.w, "%s\n", s.Title)
	}
	if s.Body != "" {
		fmt.Fprintf(p.w, "%s\n", s.Body)
	}
	fmt.Fprintln(p.w)
}

// QuestionStart prints the progress header of a question.
// Format: "Pergunta N de M (P%)"
func (p *Printer) QuestionStart(current, total int) {
	fmt.Fprintf(p.w, "Pergunta %d de %d (%d%%)\n", current, total, Percent(current, total))
}

// Greeting prints the personal greeting shown above later questions.
// Format: "Oi, <name>!"
func (p *Printer) Greeting(name string) {
	fmt.Fprintf(p.w, "Oi, %s!\n", name)
}

// Blocked prints why the answer cannot be accepted yet.
// Format: "✗ <reason>"
func (p *Printer) Blocked(reason string) {
	fmt.Fprintf(p.w, "✗ %s\n", reason)
}

// Sending prints the in-flight delivery message.
func (p *Printer) Sending() {
	fmt.Fprintf(p.w, "Enviando suas respostas...\n")
}

// DeliverySuccess prints a success message with checkmark.
// Format: "✓ Respostas enviadas"
func (p *Printer) DeliverySuccess() {
	fmt.Fprintf(p.w, "✓ Respostas enviadas\n")
}

// DeliveryFailure prints a failure message with x.
// Format: "✗ Falha no envio: <reason>"
func (p *Printer) DeliveryFailure(reason string) {
	fmt.Fprintf(p.w, "✗ Falha no envio: %s\n", reason)
}

// Delivery prints one journal entry.
// Format: "<time>  <schema>  #<attempt>  <status>  <session>[  <detail>]"
func (p *Printer) Delivery(e journal.Entry) {
	detail := e.Error
	if detail == "" {
		detail = e.ReceiptTS
	}
	line := fmt.Sprintf("%s  %-10s  #%d  %-7s  %s",
		e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Schema, e.Attempt, e.Status, e.SessionID)
	if detail != "" {
		line += "  " + detail
	}
	fmt.Fprintln(p.w, strings.TrimRight(line, " "))
}

// Percent returns how far through total the current position is, 0-100.
func Percent(current, total int) int {
	if total <= 0 {
		return 0
	}
	return current * 100 / total
}
