package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Repl runs the interactive terminal chat loop: read a question, run one
// agent turn, print the answer, repeat. A single conversation spans the whole
// loop so follow-up questions keep their context. Errors are printed to the
// transcript, never swallowed.
//
// The loop ends on EOF (Ctrl-D), "exit"/"quit", or context cancellation.
func Repl(ctx context.Context, svc Service, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "sectorchat: ask about stocks, volumes, IPO performance. Type 'exit' to quit.")

	scanner := bufio.NewScanner(in)
	conversationID := ""

	for {
		fmt.Fprint(out, "\nyou> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			return nil
		}

		fmt.Fprintln(out, "thinking...")
		conv, answer, err := svc.Ask(ctx, conversationID, question)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			if conv != nil {
				conversationID = conv.ID
			}
			continue
		}
		conversationID = conv.ID
		fmt.Fprintf(out, "assistant> %s\n", answer)
	}
}
