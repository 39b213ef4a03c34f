package main

import (
	"fmt"
	"os"

	"github.com/erp/papelera/internal/cli"
	"github.com/erp/papelera/internal/infrastructure/telemetry"
	"github.com/fatih/color"
)

func main() {
	if err := cli.Execute(telemetry.Version); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("error: ")+err.Error())
		os.Exit(1)
	}
}
