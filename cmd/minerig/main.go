package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/qnkhuat/minerig/pkg"
	"github.com/qnkhuat/minerig/pkg/gui"
	"golang.org/x/term"
)

func main() {
	logPath := flag.String("log", "./minerig.log", "path to log file")
	balancePath := flag.String("balance", "", "path to a YAML balance file")
	rig := flag.String("rig", "", "name of the rig, a random one when empty")
	debug := flag.Bool("debug", false, "log mode changes and commands")
	verbose := flag.Bool("verbose", false, "log every economy tick")
	noColor := flag.Bool("no-color", false, "disable colors")
	flag.Parse()

	logger, logFile, err := pkg.InitLog(*logPath, "RIG: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	balance := pkg.DefaultBalance()
	if *balancePath != "" {
		if balance, err = pkg.LoadBalance(*balancePath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	logLevel := pkg.LogStandard
	if *verbose {
		logLevel = pkg.LogVerbose
	} else if *debug {
		logLevel = pkg.LogDebug
	}

	tty := term.IsTerminal(int(os.Stdout.Fd()))
	screen := gui.NewTerminal(os.Stdout, tty && !*noColor)
	if !tty {
		screen.ClearLines = 0
	} else if _, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil && height > 0 {
		screen.ClearLines = height
	}

	game := pkg.NewGame(pkg.GameConfig{
		Rig:       pkg.RigName(*rig),
		Balance:   balance,
		Presenter: screen,
		Logger:    logger,
		LogLevel:  logLevel,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		cancel()
	}()

	game.Run(ctx, pkg.NewLineReader(os.Stdin))
}
