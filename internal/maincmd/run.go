package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/kgann/pixie/lang/bytecode"
	"github.com/kgann/pixie/lang/runtime"
)

// Run assembles the named .pasm file and invokes its unit with no
// arguments, printing the result to stdout or the error's rendered trace to
// stderr.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return printError(stdio, err)
	}

	u, err := bytecode.Assemble(b)
	if err != nil {
		return printError(stdio, err)
	}

	code, err := runtime.NewCode(u, false)
	if err != nil {
		return printError(stdio, err)
	}

	rt := runtime.NewRuntime()
	th := runtime.NewThread(u.Name)
	th.WithContext(ctx)
	defer th.Close()

	v, err := runtime.Invoke(th, rt, code, nil)
	if err != nil {
		return printError(stdio, err)
	}
	fmt.Fprintln(stdio.Stdout, v)
	return nil
}
