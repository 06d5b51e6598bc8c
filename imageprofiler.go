// Package imageprofiler extracts a structured visual feature profile
// from a reference image.
//
// The profile captures the measurable properties of an image: dominant
// colors, composition, tone, texture, scene category, object likelihoods,
// color harmony and an overall style label. It can optionally be
// enriched with a semantic description fetched from a vision-capable
// model (Ollama or llama.cpp backends).
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		imageprofiler "github.com/visprof/image-profiler"
//	)
//
//	func main() {
//		profiler := imageprofiler.New()
//
//		profile, err := profiler.ProfileFile(context.Background(), "photo.jpg")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		fmt.Printf("scene=%s style=%s colors=%v\n",
//			profile.Scene.Type, profile.Style.Style, profile.DominantColors)
//	}
//
// All analyzers are pure functions of the decoded image; either the
// whole profile is produced or the call fails. The external insight
// fetch is the only best-effort step: if it fails, the profile is
// produced from heuristics alone and the insight field stays nil.
package imageprofiler

import (
	"context"
	"fmt"
	"image"

	"github.com/visprof/image-profiler/internal/config"
	"github.com/visprof/image-profiler/pkg/insight"
	"github.com/visprof/image-profiler/pkg/objects"
	"github.com/visprof/image-profiler/pkg/processing"
	"github.com/visprof/image-profiler/pkg/profile"
	"github.com/visprof/image-profiler/pkg/types"
)

// Version of the image profiler library
const Version = "1.0.0"

// Profiler provides a high-level interface to the analysis pipeline.
type Profiler struct {
	assembler *profile.Assembler
	processor *processing.Processor
}

// New creates a Profiler with default configuration: heuristics only,
// no face detection cascade, no insight backend.
func New() *Profiler {
	p, _ := NewWithConfig(config.Default())
	return p
}

// NewWithConfig creates a Profiler from a configuration. It fails when
// the configuration is invalid, the face cascade cannot be loaded or
// the insight backend cannot be constructed.
func NewWithConfig(cfg *config.Config) (*Profiler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var detector objects.FaceDetector
	if cfg.Detection.CascadePath != "" {
		d, err := objects.NewPigoDetector(cfg.Detection.CascadePath, cfg.Detection.MinQuality)
		if err != nil {
			return nil, fmt.Errorf("failed to create face detector: %w", err)
		}
		detector = d
	}

	client, err := newInsightClient(cfg.Insight)
	if err != nil {
		return nil, err
	}

	assembler := profile.New(profile.Options{
		ColorK:        cfg.Colors.K,
		FaceDetector:  detector,
		InsightClient: client,
		InsightModel:  cfg.Insight.Model,
		BasicInsight:  cfg.Insight.Basic,
		MaxImageDim:   cfg.Insight.MaxImageDim,
		JPEGQuality:   cfg.Insight.JPEGQuality,
	})

	return &Profiler{
		assembler: assembler,
		processor: processing.NewProcessor(),
	}, nil
}

func newInsightClient(cfg config.InsightConfig) (insight.Client, error) {
	switch cfg.Backend {
	case "ollama":
		client, err := insight.NewOllamaClient(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return client, nil
	case "llamacpp":
		client, err := insight.NewLlamaCppClient(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to create llama.cpp client: %w", err)
		}
		return client, nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown insight backend: %s", cfg.Backend)
	}
}

// ProfileFile loads an image from a file path and profiles it. EXIF
// capture metadata is attached when present.
func (p *Profiler) ProfileFile(ctx context.Context, path string) (*types.FeatureProfile, error) {
	return p.assembler.ProfileFile(ctx, path)
}

// ProfileSource loads an image from a file path or an http(s) URL and
// profiles it.
func (p *Profiler) ProfileSource(ctx context.Context, source string) (*types.FeatureProfile, error) {
	img, err := p.processor.LoadImageSmart(source)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return p.assembler.Profile(ctx, img)
}

// ProfileImage profiles an already decoded image.
func (p *Profiler) ProfileImage(ctx context.Context, img image.Image) (*types.FeatureProfile, error) {
	return p.assembler.Profile(ctx, img)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
