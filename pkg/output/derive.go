package output

import (
	"strings"

	"github.com/chatsift/chatsift/pkg/model"
)

// derived holds the per-message columns computed at export time for
// the analysis layer: weekday and hour of the timestamp, and word and
// letter counts of the body.
type derived struct {
	Weekday string
	Hour    int
	Words   int
	Letters int
}

func derive(m model.Message) derived {
	return derived{
		Weekday: m.Timestamp.Weekday().String(),
		Hour:    m.Timestamp.Hour(),
		// Words splits on any whitespace run; an empty or
		// whitespace-only body counts 0 words.
		Words:   len(strings.Fields(m.Body)),
		Letters: len([]rune(m.Body)),
	}
}

const timestampLayout = "2006-01-02 15:04:05"
