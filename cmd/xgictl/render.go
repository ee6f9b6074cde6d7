package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/xylexgaming/xgi-website/internal/config"
	"github.com/xylexgaming/xgi-website/internal/frontend"
)

func newRenderCmd() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "render <hash>",
		Short: "Render a page location against a running API",
		Example: `  xgictl render '#/games?search=wick'
  xgictl render --api https://xylexgaming.com '#/technology'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			doc := frontend.NewMemoryDocument()
			renderer := frontend.NewRenderer(frontend.NewAPIClient(apiURL), doc, apiURL)
			result := renderer.Load(ctx, frontend.ParseHash(args[0]))
			printResult(cmd.OutOrStdout(), doc, result)
			return nil
		},
	}
	cmd.Flags().StringVar(&apiURL, "api", "http://localhost:5000", "base URL of the content API")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var (
		apiURL   string
		view     string
		debounce time.Duration
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Type a search term key by key and show what the page renders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := frontend.View(view)
			if _, ok := target.Collection(); !ok {
				return fmt.Errorf("view must be %s or %s", frontend.ViewGames, frontend.ViewTechnology)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			out := cmd.OutOrStdout()
			doc := frontend.NewMemoryDocument()
			history := frontend.NewMemoryHistory(frontend.Route{View: target}.Hash())
			renderer := frontend.NewRenderer(frontend.NewAPIClient(apiURL), doc, apiURL)

			done := make(chan frontend.RenderResult, 1)
			page := frontend.NewPage(ctx, renderer, history, debounce, frontend.WithRenderHook(func(r frontend.RenderResult) {
				fmt.Fprintf(out, "load #%d %s -> %s\n", r.Seq, r.Route.Hash(), r.Outcome)
				if r.Route.Search != "" {
					select {
					case done <- r:
					default:
					}
				}
			}))
			defer page.Close()

			page.Start()

			term := []rune(args[0])
			for i := range term {
				page.Input(target, string(term[:i+1]))
				time.Sleep(interval)
			}

			select {
			case result := <-done:
				fmt.Fprintf(out, "history: %v\n", history.Entries())
				printResult(out, doc, result)
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
	cmd.Flags().StringVar(&apiURL, "api", "http://localhost:5000", "base URL of the content API")
	cmd.Flags().StringVar(&view, "view", string(frontend.ViewGames), "view to search in")
	cmd.Flags().DurationVar(&debounce, "debounce", config.SearchDebounceFromEnv(), "pause after the last keystroke before searching, $SEARCH_DEBOUNCE_MS when set")
	cmd.Flags().DurationVar(&interval, "interval", 80*time.Millisecond, "delay between keystrokes")
	return cmd
}

func printResult(out io.Writer, doc *frontend.MemoryDocument, result frontend.RenderResult) {
	fmt.Fprintf(out, "view:    %s\n", doc.Visible())
	fmt.Fprintf(out, "outcome: %s (%d records)\n", result.Outcome, result.Count)
	if result.Err != nil {
		fmt.Fprintf(out, "error:   %v\n", result.Err)
	}
	if content := doc.Content(result.Route.View); content != "" {
		fmt.Fprintln(out, content)
	}
}
