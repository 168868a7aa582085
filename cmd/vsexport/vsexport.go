package main

import (
	"os"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/cmd"
)

/***************************************
 * Launch Command (program entry point)
 ***************************************/

func main() {
	err := cmd.LaunchCommand("vsexport", os.Args[1:]...)
	base.LogPanicIfFailed(cmd.LogCommand, err)
}
