package editor

import (
	"context"
	"fmt"
	"strconv"

	"github.com/neovim/go-client/nvim"
)

// Nvim opens locations in a running Neovim over its RPC socket.
type Nvim struct {
	Addr string
}

// Jump dials the socket, edits file and moves the cursor to line.
func (n Nvim) Jump(ctx context.Context, file string, line int) error {
	v, err := nvim.Dial(n.Addr, nvim.DialContext(ctx))
	if err != nil {
		return fmt.Errorf("connecting to nvim at %s: %w", n.Addr, err)
	}
	defer v.Close()

	var escaped string
	if err := v.Call("fnameescape", &escaped, file); err != nil {
		return fmt.Errorf("escaping %s: %w", file, err)
	}

	b := v.NewBatch()
	b.Command("edit +" + strconv.Itoa(line) + " " + escaped)
	b.Command("normal! zz")
	if err := b.Execute(); err != nil {
		return fmt.Errorf("opening %s:%d in nvim: %w", file, line, err)
	}
	return nil
}
