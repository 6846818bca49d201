package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/kgann/pixie/lang/bytecode"
)

// Disasm assembles the named .pasm file and prints it back out in its
// canonical textual form, round-tripping through Unit the way a compiler's
// own disassembler dump would.
func (c *Cmd) Disasm(ctx context.Context, stdio mainer.Stdio, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return printError(stdio, err)
	}

	u, err := bytecode.Assemble(b)
	if err != nil {
		return printError(stdio, err)
	}

	fmt.Fprint(stdio.Stdout, bytecode.Disassemble(u))
	return nil
}
