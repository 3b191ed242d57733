// Package loop runs a local, single-terminal game session.
package loop

import (
	"bufio"
	"io"

	"github.com/tomz197/popshot/internal/loop/client"
)

// Run plays on the local terminal until the player quits. There is no
// session server, so inactivity never disconnects.
func Run(r *bufio.Reader, w io.Writer, opts client.ClientOptions) error {
	opts.KickInactive = false
	return client.NewClient(nil, r, w, opts).Run()
}
