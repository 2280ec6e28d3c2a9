// Command neat-xor runs the XOR scenario to completion: it loads a YAML configuration, evolves a
// population against the XOR fitness function, and writes the winning network's connection
// weights to an .npy file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio"

	"github.com/corvidlabs/neat/driver"
	"github.com/corvidlabs/neat/examples/xor"
	"github.com/corvidlabs/neat/neat"
	"github.com/corvidlabs/neat/neat/network"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "neat-xor:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML or legacy NEAT options file")
	outPath := flag.String("out", "xor_weights.npy", "path to write the winning network's connection weights")
	flag.Parse()

	opts := neat.DefaultOptions()
	if *configPath != "" {
		loaded, err := neat.ReadOptionsFromFile(*configPath)
		if err != nil {
			return errors.Wrap(err, "loading configuration")
		}
		opts = loaded
	}
	if err := neat.InitLogger(opts.LogLevel); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		neat.WarnLog("received interrupt, stopping after the current generation")
		cancel()
	}()

	d, err := driver.NewDriver(opts, 2, 1, xor.Fitness)
	if err != nil {
		return errors.Wrap(err, "constructing driver")
	}
	d.AddHook(opts.ReportEvery, func(s driver.Snapshot) {
		fmt.Printf("generation %d: best=%.4f mean=%.4f species=%d\n",
			s.Generation, s.BestRawFitness, s.MeanRawFitness, s.SpeciesCount)
	})

	net, fitness, err := d.Start(ctx)
	if err != nil && net == nil {
		return errors.Wrap(err, "run did not produce a network")
	}
	fmt.Printf("best fitness: %.4f (%.2f%% of max)\n", fitness, 100*fitness/xor.MaxFitness)

	return writeWeights(*outPath, net)
}

func writeWeights(path string, net *network.Network) error {
	weights := net.ConnectionWeights()

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	defer f.Close()

	if err := npyio.Write(f, weights); err != nil {
		return errors.Wrap(err, "writing npy weights")
	}
	return nil
}
