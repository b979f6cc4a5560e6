// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package run is the CLI's concurrency harness: a thin errgroup wrapper
// used to validate or inspect a batch of schema files at once, plus a
// graceful-shutdown loop for long-running subcommands like "watch". It
// has no part in the codec itself, which runs single-threaded per its
// own concurrency model.
package run

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Func is a long-running task that returns when ctx is canceled.
type Func func(ctx context.Context) error

// Start runs fn until it returns or an interrupt signal arrives. On an
// interrupt it cancels fn's context and then waits until fn returns or
// stopTimeout elapses, whichever comes first. It is meant for
// subcommands like "watch" that poll a set of schema files until the
// user hits Ctrl-C.
func Start(ctx context.Context, stopTimeout time.Duration, fn Func) error {
	notify := make(chan os.Signal, 3)
	signal.Notify(notify, os.Interrupt)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	once := &sync.Once{}
	fin := make(chan bool)
	unlockOnce := func() { once.Do(func() { close(fin) }) }

	var runErr atomic.Value
	go func() {
		if err := fn(ctx); err != nil {
			runErr.Store(err)
		}
		unlockOnce()
	}()

	select {
	case <-notify:
	case <-fin:
	}
	cancel()
	go func() {
		<-time.After(stopTimeout)
		unlockOnce()
	}()
	<-fin

	if err, ok := runErr.Load().(error); ok {
		return err
	}
	return nil
}

// All runs every task concurrently under ctx, returning the first
// error encountered and canceling the rest via ctx.
func All(ctx context.Context, tasks ...func(ctx context.Context) error) error {
	group, ctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		task := task
		group.Go(func() error { return task(ctx) })
	}
	return group.Wait()
}

// Each runs fn over every item in items, at most concurrency at a
// time, returning the first error encountered. A concurrency of 0
// means unbounded.
func Each(ctx context.Context, items []string, concurrency int, fn func(ctx context.Context, item string) error) error {
	group, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		group.SetLimit(concurrency)
	}
	for _, item := range items {
		item := item
		group.Go(func() error { return fn(ctx, item) })
	}
	return group.Wait()
}
