package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/crashlight/go-crashlight/configs"
	"github.com/crashlight/go-crashlight/crashlight"
	cwriters "github.com/crashlight/go-crashlight/crashlight/writers"
	"github.com/crashlight/go-crashlight/writers"
)

func main() {
	cfg, err := configs.NewForward("https://collector.example.com/crash", "sometoken")
	if err != nil {
		log.Fatalf("failed to create forward config: %v", err)
	}
	cfg.SetTimeout(time.Second * 10)
	cfg.SetRetryCount(2)
	cfg.SetRetryDelay(time.Millisecond * 300)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	forward, err := writers.NewForwardWriter(ctx, cwriters.GetColorStderr(), cfg)
	if err != nil {
		log.Fatalf("failed to create forward writer: %v", err)
	}

	h := crashlight.New(forward)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		h.EnableColor()
	}
	crashlight.InstallHandler(h)
	defer crashlight.Recover()

	work()
}

func work() {
	boom(3)
}

func boom(depth int) {
	if depth == 0 {
		panic("boom")
	}
	boom(depth - 1)
}
