// chatsift - Chat Export Normalizer
//
// chatsift parses exported chat-history archives from messaging
// platforms into one canonical tabular message schema.
package main

import (
	"os"

	"github.com/chatsift/chatsift/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
