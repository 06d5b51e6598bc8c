// Package profile fuses the analyzer outputs into one FeatureProfile.
// The analyzers themselves are pure functions of the decoded image; the
// assembler owns the ordering, the optional insight fetch and the
// all-or-nothing failure policy.
package profile

import (
	"context"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/visprof/image-profiler/internal/logger"
	"github.com/visprof/image-profiler/pkg/colors"
	"github.com/visprof/image-profiler/pkg/composition"
	"github.com/visprof/image-profiler/pkg/insight"
	"github.com/visprof/image-profiler/pkg/objects"
	"github.com/visprof/image-profiler/pkg/processing"
	"github.com/visprof/image-profiler/pkg/scene"
	"github.com/visprof/image-profiler/pkg/style"
	"github.com/visprof/image-profiler/pkg/texture"
	"github.com/visprof/image-profiler/pkg/tone"
	"github.com/visprof/image-profiler/pkg/types"
)

// Options configures an Assembler. The zero value is usable: default
// color count, no face detection, no insight fetch.
type Options struct {
	// ColorK is the dominant-color count; <=0 selects the default.
	ColorK int

	// FaceDetector counts faces; nil reports zero faces.
	FaceDetector objects.FaceDetector

	// InsightClient, when set, fetches a semantic description from a
	// vision model. Fetch failures are logged and never abort the
	// profile.
	InsightClient insight.Client
	InsightModel  string

	// BasicInsight selects the short prompt for faster models.
	BasicInsight bool

	// MaxImageDim and JPEGQuality shape the image sent to the insight
	// backend.
	MaxImageDim int
	JPEGQuality int
}

// Assembler runs the full analysis pipeline.
type Assembler struct {
	opts      Options
	processor *processing.Processor
}

// New creates an Assembler with the given options.
func New(opts Options) *Assembler {
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = 85
	}
	if opts.MaxImageDim <= 0 {
		opts.MaxImageDim = 1024
	}
	return &Assembler{opts: opts, processor: processing.NewProcessor()}
}

// Profile analyzes a decoded image and returns the complete profile.
// Any analyzer failure aborts the whole profile; a partial profile is
// never returned. The insight fetch and the fingerprint/metadata
// supplements are best-effort.
func (a *Assembler) Profile(ctx context.Context, img image.Image) (*types.FeatureProfile, error) {
	return a.profile(ctx, img, "")
}

// ProfileFile analyzes an image loaded from a file, additionally
// attaching its EXIF capture metadata.
func (a *Assembler) ProfileFile(ctx context.Context, path string) (*types.FeatureProfile, error) {
	img, err := a.processor.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return a.profile(ctx, img, path)
}

func (a *Assembler) profile(ctx context.Context, img image.Image, sourcePath string) (*types.FeatureProfile, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}

	var p types.FeatureProfile
	p.Dimensions = types.Dimensions{
		Width:       width,
		Height:      height,
		AspectRatio: float64(width) / float64(height),
	}

	// Insight first: the object detector and style synthesizer consume
	// its tags and style description when available
	ins := a.fetchInsight(ctx, img)
	p.Insight = ins

	var externalTags []string
	var styleDescription string
	if ins != nil {
		externalTags = ins.DetectedObjects
		styleDescription = ins.StyleDescription
	}

	dominant, err := colors.ExtractDominant(img, a.opts.ColorK)
	if err != nil {
		return nil, fmt.Errorf("color extraction failed: %w", err)
	}
	p.DominantColors = dominant

	p.Composition = composition.Analyze(img)

	brightness, contrast, key, err := tone.Analyze(img)
	if err != nil {
		return nil, fmt.Errorf("tone analysis failed: %w", err)
	}
	p.Brightness = brightness
	p.Contrast = contrast
	p.ToneKey = key

	p.Texture, err = texture.Analyze(img)
	if err != nil {
		return nil, fmt.Errorf("texture analysis failed: %w", err)
	}

	p.Scene, err = scene.Analyze(img)
	if err != nil {
		return nil, fmt.Errorf("scene classification failed: %w", err)
	}

	obj, faceCount, err := objects.Analyze(img, a.opts.FaceDetector, externalTags)
	if err != nil {
		return nil, fmt.Errorf("object detection failed: %w", err)
	}
	p.Objects = obj
	p.FaceCount = faceCount
	p.HasFaces = faceCount > 0

	p.Harmony = colors.AnalyzeHarmony(dominant)
	p.Style = style.Synthesize(img, dominant, brightness, contrast, styleDescription)

	// Supplements are best-effort, not analyzers
	if fp, err := a.processor.Fingerprint(img); err == nil {
		p.Fingerprint = fp
	} else {
		logger.WithError(err).Warn("fingerprint computation failed")
	}
	if sourcePath != "" {
		p.Metadata = a.processor.ExtractMetadata(sourcePath)
	}

	return &p, nil
}

// fetchInsight asks the configured vision model to describe the image.
// Any failure is logged and yields nil: heuristics proceed without it.
func (a *Assembler) fetchInsight(ctx context.Context, img image.Image) *types.ExternalInsight {
	if a.opts.InsightClient == nil {
		return nil
	}

	imgB64, err := a.processor.PrepareImageForModel(img, "jpg", a.opts.MaxImageDim, a.opts.JPEGQuality)
	if err != nil {
		logger.WithError(err).Warn("failed to encode image for insight model")
		return nil
	}

	prompt := insight.AnalysisPrompt
	if a.opts.BasicInsight {
		prompt = insight.BasicPrompt
	}

	raw, err := a.opts.InsightClient.Describe(ctx, a.opts.InsightModel, prompt, imgB64)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"model": a.opts.InsightModel,
		}).WithError(err).Warn("insight fetch failed, continuing with heuristics only")
		return nil
	}

	return insight.Extract(raw)
}
