package main

import (
	"fmt"
	"os"

	batch "github.com/TheCacophonyProject/battery-dva/internal/dva-batch"
	calc "github.com/TheCacophonyProject/battery-dva/internal/dva-calc"
	"github.com/TheCacophonyProject/go-utils/logging"
)

var log *logging.Logger

var version = "<not set>"

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err)
	}
}

func runMain() error {
	log = logging.NewLogger("info")
	if len(os.Args) < 2 {
		log.Info("Usage: battery-dva <calc|batch> [args]")
		return fmt.Errorf("no subcommand given")
	}

	subcommand := os.Args[1]
	args := os.Args[2:]

	var err error
	switch subcommand {
	case "calc":
		err = calc.Run(args, version)
	case "batch":
		err = batch.Run(args, version)
	default:
		err = fmt.Errorf("unknown subcommand: %s", subcommand)
	}

	return err
}
