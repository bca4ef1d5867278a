package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/daaffalbari/portfolio/internal/chatclient"
	"github.com/daaffalbari/portfolio/internal/render"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

const helpText = `/history  show the conversation
/suggest  list suggested questions (send one with /1 to /4)
/clear    forget the conversation
/quit     leave`

// printer streams the newest assistant turn to out as it grows.
type printer struct {
	out     io.Writer
	term    *render.Terminal
	replyID string
	printed string
}

func newPrinter(out io.Writer, term *render.Terminal) *printer {
	return &printer{out: out, term: term}
}

func (p *printer) onChange(turns []chatclient.Turn) {
	if len(turns) == 0 {
		return
	}
	last := turns[len(turns)-1]
	if last.Role != chatclient.RoleAssistant {
		return
	}
	if last.ID != p.replyID {
		p.replyID, p.printed = last.ID, ""
	}

	if strings.HasPrefix(last.Content, p.printed) {
		fmt.Fprint(p.out, render.Sanitize(last.Content[len(p.printed):]))
	} else {
		// Replaced rather than extended, e.g. by the fallback text.
		fmt.Fprint(p.out, "\n"+render.Sanitize(last.Content))
	}
	p.printed = last.Content
}

func (p *printer) history(turns []chatclient.Turn) {
	for _, t := range turns {
		if t.Role == chatclient.RoleUser {
			fmt.Fprintln(p.out, promptStyle.Render("you> ")+render.Sanitize(t.Content))
			continue
		}
		fmt.Fprintln(p.out, nameStyle.Render("Abel> ")+p.term.Render(t.Content))
	}
}

type repl struct {
	client *chatclient.Client
	out    *printer
}

func newREPL(client *chatclient.Client, out *printer) *repl {
	return &repl{client: client, out: out}
}

func (r *repl) loop(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if turns := r.client.Turns(); len(turns) > 0 {
		r.out.history(turns)
	} else {
		fmt.Fprintln(r.out.out, dimStyle.Render("Ask Abel about Daffa. Type /help for commands."))
		r.suggest()
	}

	for {
		input, err := line.Prompt("you> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			text, quit, err := r.command(ctx, input)
			if err != nil {
				fmt.Fprintln(r.out.out, warnStyle.Render(err.Error()))
			}
			if quit {
				return nil
			}
			if text == "" {
				continue
			}
			input = text
		}

		r.send(ctx, input)
	}
}

// command runs a slash command. A suggestion shortcut returns the text to send.
func (r *repl) command(ctx context.Context, input string) (send string, quit bool, err error) {
	switch cmd := strings.TrimPrefix(input, "/"); cmd {
	case "quit", "exit":
		return "", true, nil
	case "help":
		fmt.Fprintln(r.out.out, helpText)
	case "history":
		r.out.history(r.client.Turns())
	case "suggest":
		r.suggest()
	case "clear":
		if err := r.client.Clear(ctx); err != nil {
			return "", false, err
		}
		fmt.Fprintln(r.out.out, dimStyle.Render("Conversation cleared."))
	default:
		n, convErr := strconv.Atoi(cmd)
		s := r.client.Suggestions()
		if convErr != nil || n < 1 || n > len(s) {
			return "", false, fmt.Errorf("unknown command %s (try /help)", input)
		}
		fmt.Fprintln(r.out.out, promptStyle.Render("you> ")+s[n-1])
		return s[n-1], false, nil
	}
	return "", false, nil
}

func (r *repl) suggest() {
	for i, s := range r.client.Suggestions() {
		fmt.Fprintln(r.out.out, dimStyle.Render(fmt.Sprintf("  /%d %s", i+1, s)))
	}
}

func (r *repl) send(ctx context.Context, text string) {
	// Ctrl+C stops the current reply instead of the program.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Fprint(r.out.out, nameStyle.Render("Abel> "))
	outcome, err := r.client.Send(ctx, text)
	fmt.Fprintln(r.out.out)

	switch {
	case errors.Is(err, chatclient.ErrBusy), errors.Is(err, chatclient.ErrEmptyMessage):
		fmt.Fprintln(r.out.out, warnStyle.Render(err.Error()))
	case outcome == chatclient.OutcomeTruncated:
		fmt.Fprintln(r.out.out, dimStyle.Render("(reply cut short)"))
	}
}
