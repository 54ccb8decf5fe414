package notifier

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	bodyStyle  = lipgloss.NewStyle().PaddingLeft(1)
)

// ConsoleNotifier prints reports to a terminal writer.
type ConsoleNotifier struct {
	Out io.Writer
}

func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{Out: out}
}

func (c *ConsoleNotifier) Notify(_ context.Context, title, body string) error {
	_, err := fmt.Fprintf(c.Out, "\n%s\n\n%s\n", titleStyle.Render(title), bodyStyle.Render(body))
	return err
}
