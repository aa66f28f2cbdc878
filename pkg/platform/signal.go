package platform

import (
	"context"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/chatsift/chatsift/pkg/lineparse"
	"github.com/chatsift/chatsift/pkg/model"
)

// Signal exports use a fixed bracketed timestamp, so no format
// inference is needed.
var signalStart = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}\]`)

const signalTimeLayout = "2006-01-02 15:04"

// Signal parses line-delimited Signal chat exports.
type Signal struct{}

// Platform returns the canonical platform name.
func (Signal) Platform() string { return "signal" }

// Parse scans one export. A format override is accepted for contract
// uniformity but ignored; the Signal timestamp layout is fixed.
func (Signal) Parse(ctx context.Context, r io.Reader, opts ...Option) (*model.Table, error) {
	o := newOptions(opts)

	parser := lineparse.New(lineparse.Dialect{
		Start:      signalStart,
		SplitStart: signalSplitStart,
		ParseTime: func(token string) (time.Time, error) {
			return time.Parse(signalTimeLayout, token)
		},
	}, lineparse.WithMaxSkipped(o.MaxSkipped))

	return parser.Parse(r)
}

func signalSplitStart(line string) (token, rest string, ok bool) {
	end := strings.Index(line, "]")
	if end < 0 {
		return "", "", false
	}
	return line[1:end], strings.TrimSpace(line[end+1:]), true
}
