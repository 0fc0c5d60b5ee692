package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/kamusis/hrmatch/internal/retrieval"
)

var (
	flagQueryK        int
	flagQueryLexical  bool
	flagQueryNoAnswer bool
)

var queryCmd = &cobra.Command{
	Use:   "query <request>",
	Short: "Rank employees for a free-text staffing request",
	Long: `Rank employees for a free-text staffing request and write a recommendation.

Example:
  hrmatch query "Find Python developers with 3+ years experience, available immediately"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVar(&flagQueryK, "k", 0, "Number of results to show (default top_k from hrmatch.yaml)")
	queryCmd.Flags().BoolVar(&flagQueryLexical, "lexical", false, "Use lexical retrieval only")
	queryCmd.Flags().BoolVar(&flagQueryNoAnswer, "no-answer", false, "Print the ranked list without the recommendation text")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(_ *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if utf8.RuneCountInString(query) < retrieval.MinQueryLength {
		return retrieval.ErrQueryTooShort
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var opts sessionOptions
	if flagQueryLexical {
		opts.mode = retrieval.Lexical
	}
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer closeSession(s)

	k := flagQueryK
	if k <= 0 {
		k = s.cfg.TopK
	}

	resp, err := s.engine.Chat(ctx, query, k)
	if err != nil {
		return err
	}

	fmt.Printf("\nhrmatch query %q  (%s)\n\n", query, resp.Mode)
	printResults(resp.Results)
	if !flagQueryNoAnswer {
		fmt.Printf("\n%s\n", resp.Answer)
	}
	return nil
}
