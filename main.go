package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/bayleafwalker/bindery-modloader/internal/loader"
	"github.com/bayleafwalker/bindery-modloader/internal/metrics"
)

var setupLog = ctrl.Log.WithName("setup")

func main() {
	var modsDir string
	var loaderVersion string
	var platformVersion string
	var metricsTextfile string

	flag.StringVar(&modsDir, "mods-dir", "mods", "Directory containing mod manifests.")
	flag.StringVar(&loaderVersion, "loader-version", "0.1.0", "Version provided to mods as modloader.")
	flag.StringVar(&platformVersion, "platform-version", "", "Version provided to mods as platform. Empty disables it.")
	flag.StringVar(&metricsTextfile, "metrics-textfile", "", "Write resolution metrics to this file in text format.")

	opts := zap.Options{Development: true}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	reg := prometheus.NewRegistry()
	l := loader.New(nil, loader.Options{
		ModsDir:         modsDir,
		Version:         loaderVersion,
		PlatformVersion: platformVersion,
		Metrics:         metrics.New(reg),
	})

	ctx := log.IntoContext(context.Background(), ctrl.Log.WithName("modloader"))
	plan, err := l.Plan(ctx)
	if metricsTextfile != "" {
		if werr := prometheus.WriteToTextfile(metricsTextfile, reg); werr != nil {
			setupLog.Error(werr, "unable to write metrics", "path", metricsTextfile)
			os.Exit(1)
		}
	}
	if err != nil {
		setupLog.Error(err, "unable to plan mods", "dir", modsDir)
		os.Exit(1)
	}

	for i, e := range plan.Entries {
		version := e.Version()
		if version == "" {
			version = "unversioned"
		}
		fmt.Printf("%d\t%s\t%s\t%s\n", i+1, e.Name(), version, e.Manifest.Spec.Factory)
	}
	for _, name := range plan.Pruned {
		fmt.Printf("-\t%s\tpruned\n", name)
	}
	setupLog.Info("plan ready", "mods", len(plan.Entries), "pruned", len(plan.Pruned), "provided", plan.Provided)
}
