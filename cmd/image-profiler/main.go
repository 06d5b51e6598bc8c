package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	imageprofiler "github.com/visprof/image-profiler"
	"github.com/visprof/image-profiler/internal/config"
	"github.com/visprof/image-profiler/internal/logger"
	"github.com/visprof/image-profiler/internal/utils"
	"github.com/visprof/image-profiler/pkg/types"
)

func main() {
	var in, out, backend, url, model, cascade, configPath string
	var k int
	var pretty, basic bool

	flag.StringVar(&in, "in", "", "input image path, URL, or directory (jpg/png/webp)")
	flag.StringVar(&out, "out", "", "output JSON path (single input) or directory (directory input); empty = stdout")
	flag.StringVar(&backend, "backend", "", "insight backend: ollama, llamacpp or none")
	flag.StringVar(&url, "url", "", "insight server URL (defaults: ollama=http://localhost:11434, llamacpp=http://localhost:8080)")
	flag.StringVar(&model, "model", "", "insight model name")
	flag.StringVar(&cascade, "cascade", "", "pigo face cascade file (empty disables face detection)")
	flag.StringVar(&configPath, "config", "", "config file path (JSON)")
	flag.IntVar(&k, "k", 0, "number of dominant colors (0 = config default)")
	flag.BoolVar(&basic, "basic", false, "use the short insight prompt (faster models)")
	flag.BoolVar(&pretty, "pretty", true, "indent JSON output")
	flag.Parse()

	if in == "" {
		fmt.Fprintf(os.Stderr, "usage: %s -in input.jpg|URL|dir [-backend ollama|llamacpp|none] [-url server_url] [-model name] [-cascade facefinder] [-out profile.json]\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			logger.WithError(err).Error("failed to load config")
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags override the config file
	if backend != "" {
		cfg.Insight.Backend = backend
	}
	if url != "" {
		cfg.Insight.URL = url
	}
	if model != "" {
		cfg.Insight.Model = model
	}
	if cascade != "" {
		cfg.Detection.CascadePath = cascade
	}
	if k > 0 {
		cfg.Colors.K = k
	}
	if basic {
		cfg.Insight.Basic = true
	}

	profiler, err := imageprofiler.NewWithConfig(cfg)
	if err != nil {
		logger.WithError(err).Error("failed to initialize profiler")
		os.Exit(1)
	}

	ctx := context.Background()

	if utils.DirExists(in) {
		runBatch(ctx, profiler, in, out, pretty)
		return
	}

	profile, err := profiler.ProfileSource(ctx, in)
	if err != nil {
		logger.WithFields(logrus.Fields{"input": in}).WithError(err).Error("analysis failed")
		os.Exit(1)
	}

	if err := writeProfile(profile, out, pretty); err != nil {
		logger.WithError(err).Error("failed to write profile")
		os.Exit(1)
	}
}

// runBatch profiles every image under dir, writing one JSON file per
// image into outDir. Individual failures are logged and skipped.
func runBatch(ctx context.Context, profiler *imageprofiler.Profiler, dir, outDir string, pretty bool) {
	if outDir == "" {
		outDir = "profiles"
	}
	if err := utils.EnsureDir(outDir); err != nil {
		logger.WithError(err).Error("failed to create output directory")
		os.Exit(1)
	}

	files, err := utils.ListImageFiles(dir)
	if err != nil {
		logger.WithError(err).Error("failed to list images")
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.WithField("dir", dir).Warn("no image files found")
		return
	}

	failed := 0
	for _, file := range files {
		profile, err := profiler.ProfileFile(ctx, file)
		if err != nil {
			logger.WithFields(logrus.Fields{"input": file}).WithError(err).Error("analysis failed")
			failed++
			continue
		}

		outPath := utils.ProfileOutputPath(file, outDir)
		if err := writeProfile(profile, outPath, pretty); err != nil {
			logger.WithFields(logrus.Fields{"output": outPath}).WithError(err).Error("failed to write profile")
			failed++
			continue
		}
		logger.WithFields(logrus.Fields{
			"input":  file,
			"output": outPath,
			"scene":  profile.Scene.Type,
			"style":  profile.Style.Style,
		}).Info("profile written")
	}

	if failed > 0 {
		logger.WithField("failed", failed).Warn("some images could not be profiled")
		os.Exit(1)
	}
}

func writeProfile(profile *types.FeatureProfile, out string, pretty bool) error {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(profile, "", "  ")
	} else {
		data, err = json.Marshal(profile)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if out == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(out, data, 0o644)
}
