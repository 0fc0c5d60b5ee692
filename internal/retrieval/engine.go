// Package retrieval routes a staffing query to the semantic or lexical
// retriever and assembles the answer shown to the user.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/kamusis/hrmatch/internal/answer"
	"github.com/kamusis/hrmatch/internal/roster"
	"github.com/kamusis/hrmatch/internal/search"
	"github.com/kamusis/hrmatch/internal/search/index"
)

// Mode selects the preferred retrieval path.
type Mode string

const (
	Semantic Mode = "semantic"
	Lexical  Mode = "lexical"
)

// MinQueryLength is the shortest query Chat accepts, in characters after trimming.
const MinQueryLength = 3

// ErrQueryTooShort is returned by Chat for queries under MinQueryLength.
var ErrQueryTooShort = errors.New("query too short")

// ParseMode validates s as a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Semantic, Lexical:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid mode %q (want %s or %s)", s, Semantic, Lexical)
	}
}

// SemanticSearcher is the semantic retriever. *index.Manager implements it.
type SemanticSearcher interface {
	Search(ctx context.Context, query string, topK int) []search.Result
	Status() index.Status
	Available() bool
}

// Answerer turns a ranked shortlist into prose. It must not fail.
type Answerer interface {
	Answer(ctx context.Context, query string, profiles []roster.Profile) string
}

// Response is the result of Chat.
type Response struct {
	Answer          string
	Recommendations []roster.Profile
	Results         []search.Result
	Mode            Mode
}

// Health summarizes which path queries will take.
type Health struct {
	Mode              Mode
	SemanticAvailable bool
	Reason            string
}

// Engine is safe for concurrent use once constructed.
type Engine struct {
	profiles []roster.Profile
	semantic SemanticSearcher
	answerer Answerer
	mode     Mode
	logger   *slog.Logger
}

// New returns an Engine. semantic and answerer may be nil; a nil semantic
// searcher forces lexical retrieval and a nil answerer uses the template.
func New(profiles []roster.Profile, semantic SemanticSearcher, answerer Answerer, mode Mode) *Engine {
	return &Engine{
		profiles: profiles,
		semantic: semantic,
		answerer: answerer,
		mode:     mode,
		logger:   slog.Default().With("component", "retrieval"),
	}
}

// useSemantic reports whether queries go to the semantic retriever.
func (e *Engine) useSemantic() bool {
	return e.mode == Semantic && e.semantic != nil && e.semantic.Available()
}

// Retrieve ranks profiles for query and reports the path that served it.
func (e *Engine) Retrieve(ctx context.Context, query string, topK int) ([]search.Result, Mode) {
	if e.useSemantic() {
		return e.semantic.Search(ctx, query, topK), Semantic
	}
	return search.Retrieve(query, e.profiles, topK), Lexical
}

// Chat retrieves a shortlist and writes an answer for it.
func (e *Engine) Chat(ctx context.Context, query string, topK int) (*Response, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, ErrQueryTooShort
	}

	results, mode := e.Retrieve(ctx, query, topK)
	recs := search.Profiles(results)
	e.logger.Debug("retrieved", "mode", mode, "results", len(results))

	var text string
	if mode == Semantic {
		if e.answerer != nil {
			text = e.answerer.Answer(ctx, query, recs)
		}
		if strings.TrimSpace(text) == "" {
			text = answer.Template(query, recs)
		}
	} else {
		text = answer.Summary(query, results)
	}

	return &Response{
		Answer:          text,
		Recommendations: recs,
		Results:         results,
		Mode:            mode,
	}, nil
}

// Health reports the configured mode and semantic availability.
func (e *Engine) Health() Health {
	h := Health{Mode: e.mode}
	if e.semantic == nil {
		h.Reason = "semantic retriever not configured"
		return h
	}
	st := e.semantic.Status()
	h.SemanticAvailable = st.State == index.Ready
	h.Reason = st.Reason
	return h
}

// Profiles returns the roster the engine searches.
func (e *Engine) Profiles() []roster.Profile { return e.profiles }
