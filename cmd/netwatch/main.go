// Command netwatch captures live traffic on a chosen network interface and
// prints decoded Ethernet/IP/transport/application records as they arrive.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/wiresock/netwatch/capture"
	"github.com/wiresock/netwatch/config"
	"github.com/wiresock/netwatch/emit"
	"github.com/wiresock/netwatch/stats"
)

const banner = `netwatch — live capture and protocol decode`

const (
	exitOK             = 0
	exitNoInterfaces   = 1
	exitOpenFailed     = 2
	interfacePromptMax = 3
)

func main() {
	os.Exit(run(capture.NewPcapSource(), os.Stdin))
}

// run contains the whole CLI lifecycle. source is injected so tests can
// drive it against a mock rather than a real capture device.
func run(source capture.Source, stdin io.Reader) int {
	fmt.Println(banner)

	if err := config.LoadEnv(".env"); err != nil {
		log.Printf("netwatch: .env: %v", err)
	}
	cfg := config.Load()

	ifaces, err := source.Interfaces()
	if err != nil {
		log.Printf("netwatch: enumerate interfaces: %v", err)
		return exitNoInterfaces
	}
	if len(ifaces) == 0 {
		log.Println("netwatch: no capture interfaces found")
		return exitNoInterfaces
	}

	for i, iface := range ifaces {
		fmt.Printf("%3d. %s (%s)\n", i+1, iface.Name, iface.Description)
	}

	chosen, ok := promptInterface(stdin, len(ifaces), interfacePromptMax)
	if !ok {
		log.Println("netwatch: no valid interface selected, giving up")
		return exitNoInterfaces
	}

	handle, err := source.Open(ifaces[chosen].Name, cfg.Snaplen, cfg.CaptureWindow)
	if err != nil {
		log.Printf("netwatch: open %s: %v", ifaces[chosen].Name, err)
		return exitOpenFailed
	}

	var logWriter io.Writer
	if cfg.LogFilePath != "" {
		logFile, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Printf("netwatch: open log file %s: %v (continuing without it)", cfg.LogFilePath, err)
		} else {
			defer logFile.Close()
			logWriter = logFile
		}
	}
	emitter := emit.New(cfg.LogLevel, os.Stdout, logWriter)

	registry := stats.NewRegistry()
	persist := stats.NewPersistenceWorker(registry, cfg.JSONPath, cfg.DBConnInfo)
	supervisor := capture.NewPipelineSupervisor(handle, registry, emitter, persist)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("netwatch: shutdown signal received, draining capture queue")
		supervisor.Shutdown()
	}()

	log.Printf("netwatch: capturing on %s", ifaces[chosen].Name)
	if err := supervisor.Run(); err != nil {
		log.Printf("netwatch: capture loop ended: %v", err)
	}
	log.Println("netwatch: stopped")
	return exitOK
}

// promptInterface reads a 1-based interface number from r, retrying up to
// maxAttempts times on a non-numeric or out-of-range entry.
func promptInterface(r io.Reader, count, maxAttempts int) (int, bool) {
	scanner := bufio.NewScanner(r)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fmt.Printf("Select interface [1-%d]: ", count)
		if !scanner.Scan() {
			return 0, false
		}
		text := strings.TrimSpace(scanner.Text())
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > count {
			fmt.Printf("invalid selection %q, try again (%d/%d)\n", text, attempt, maxAttempts)
			continue
		}
		return n - 1, true
	}
	return 0, false
}
