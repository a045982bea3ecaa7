package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gliderlabs/ssh"
	"github.com/qnkhuat/minerig/pkg"
	"github.com/qnkhuat/minerig/pkg/gui"
)

func main() {
	addr := flag.String("listen", pkg.SshPort, "address to listen on")
	hostKey := flag.String("host-key", "", "path to the SSH host key, generated per run when empty")
	binary := flag.String("binary", "", "run this minerig binary in a pty per session instead of in process")
	idle := flag.Duration("idle-timeout", pkg.ServerIdleTimeout, "close sessions idle for this long")
	logPath := flag.String("log", "./minerig-server.log", "path to log file")
	balancePath := flag.String("balance", "", "path to a YAML balance file")
	debug := flag.Bool("debug", false, "log mode changes and commands")
	verbose := flag.Bool("verbose", false, "log every economy tick")
	flag.Parse()

	logger, logFile, err := pkg.InitLog(*logPath, "SERVER: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	balance := pkg.DefaultBalance()
	if *balancePath != "" {
		if balance, err = pkg.LoadBalance(*balancePath); err != nil {
			log.Fatal(err)
		}
	}

	logLevel := pkg.LogStandard
	if *verbose {
		logLevel = pkg.LogVerbose
	} else if *debug {
		logLevel = pkg.LogDebug
	}

	// Sessions spawned with -binary get the same balance and log level.
	var binaryArgs []string
	if *balancePath != "" {
		binaryArgs = append(binaryArgs, "-balance", *balancePath)
	}
	if *verbose {
		binaryArgs = append(binaryArgs, "-verbose")
	} else if *debug {
		binaryArgs = append(binaryArgs, "-debug")
	}

	s, err := pkg.NewServer(pkg.ServerConfig{
		Addr:        *addr,
		HostKeyFile: *hostKey,
		IdleTimeout: *idle,
		Binary:      *binary,
		BinaryArgs:  binaryArgs,
		Balance:     balance,
		Presenter: func(w io.Writer) pkg.Presenter {
			return gui.NewTerminal(w, true)
		},
		Logger:   logger,
		LogLevel: logLevel,
	})
	if err != nil {
		log.Fatal(err)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		log.Println("Shutting down")
		s.Close()
	}()

	log.Printf("Listening at %s", *addr)
	if err := s.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
		log.Fatal(err)
	}
}
