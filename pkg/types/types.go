package types

// Position represents a normalized point with coordinates in [0,1] range
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dimensions holds the pixel dimensions of the analyzed image
type Dimensions struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// Composition describes where the dominant subject sits in the frame.
// SubjectPosition is nil when no contours were found (type "unknown").
type Composition struct {
	Type            string    `json:"type"`
	SubjectPosition *Position `json:"subject_position,omitempty"`
}

// Brightness holds the normalized grayscale mean and its category
// (dark, medium, bright)
type Brightness struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
}

// Contrast holds the normalized grayscale standard deviation and its
// category (low, medium, high)
type Contrast struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
}

// ToneKey partitions the 256-bin brightness histogram into low/mid/high
// proportions. The three values sum to 1.
type ToneKey struct {
	LowKey  float64 `json:"low_key"`
	MidKey  float64 `json:"mid_key"`
	HighKey float64 `json:"high_key"`
}

// Style describes the synthesized overall style of the image
type Style struct {
	Style         string  `json:"style"`
	Saturation    float64 `json:"saturation"`
	Vibrant       bool    `json:"vibrant"`
	Monochromatic bool    `json:"monochromatic"`
}

// Texture holds second-order texture statistics. Entropy, GLCM contrast,
// dissimilarity and gradient strength are unbounded non-negative values;
// the remaining scores are normalized to [0,1].
type Texture struct {
	Entropy          float64 `json:"entropy"`
	GLCMContrast     float64 `json:"glcm_contrast"`
	Dissimilarity    float64 `json:"dissimilarity"`
	Homogeneity      float64 `json:"homogeneity"`
	Energy           float64 `json:"energy"`
	Correlation      float64 `json:"correlation"`
	EdgeDensity      float64 `json:"edge_density"`
	EdgeDensityFine  float64 `json:"edge_density_fine"`
	GradientStrength float64 `json:"gradient_strength"`
	LBPUniformity    float64 `json:"lbp_uniformity"`
	FrequencyRatio   float64 `json:"frequency_ratio"`
	Type             string  `json:"type"`
	Scale            string  `json:"scale"`
}

// Objects holds boolean object-presence likelihoods and the free-form
// detected-object tag list
type Objects struct {
	FaceLikely       bool     `json:"face_likely"`
	PersonLikely     bool     `json:"person_likely"`
	TextLikely       bool     `json:"text_likely"`
	VegetationLikely bool     `json:"vegetation_likely"`
	SkyLikely        bool     `json:"sky_likely"`
	BuildingLikely   bool     `json:"building_likely"`
	DetectedObjects  []string `json:"detected_objects"`
}

// Scene holds the scene category with its confidence and attribute tags
type Scene struct {
	Type       string   `json:"type"`
	Confidence float64  `json:"confidence"`
	Attributes []string `json:"attributes"`
}

// Harmony describes how the dominant hues relate on the color wheel
type Harmony struct {
	Type        string  `json:"type"`
	Score       float64 `json:"score"`
	Temperature string  `json:"temperature"`
}

// Fingerprint holds perceptual hashes of the image, usable for
// duplicate detection of reference images
type Fingerprint struct {
	AHash string `json:"ahash,omitempty"`
	DHash string `json:"dhash,omitempty"`
	PHash string `json:"phash,omitempty"`
}

// Metadata is a best-effort EXIF capture record. Fields are empty when
// the image carries no metadata or parsing fails.
type Metadata struct {
	Format      string `json:"format,omitempty"`
	CameraMake  string `json:"camera_make,omitempty"`
	CameraModel string `json:"camera_model,omitempty"`
	Artist      string `json:"artist,omitempty"`
}

// ExternalInsight is the semantic description of an image supplied by a
// vision-capable collaborator. All fields default to empty; the record as
// a whole is optional and the profile degrades gracefully without it.
type ExternalInsight struct {
	SubjectDescription     string   `json:"subject_description"`
	DetectedObjects        []string `json:"detected_objects"`
	StyleDescription       string   `json:"style_description"`
	ColorAnalysis          string   `json:"color_analysis"`
	CompositionInsights    string   `json:"composition_insights"`
	Mood                   string   `json:"mood"`
	Lighting               string   `json:"lighting"`
	ThumbnailEffectiveness string   `json:"thumbnail_effectiveness"`
	ImprovementSuggestions string   `json:"improvement_suggestions"`
	Keywords               []string `json:"keywords"`
	EmotionalImpact        string   `json:"emotional_impact"`
}

// FeatureProfile is the aggregate analysis output for one reference image.
// Either the whole profile is populated or the analysis failed; partial
// profiles are never produced.
type FeatureProfile struct {
	Dimensions     Dimensions       `json:"dimensions"`
	DominantColors []string         `json:"dominant_colors"`
	Composition    Composition      `json:"composition"`
	Brightness     Brightness       `json:"brightness"`
	Contrast       Contrast         `json:"contrast"`
	ToneKey        ToneKey          `json:"tone_key"`
	HasFaces       bool             `json:"has_faces"`
	FaceCount      int              `json:"face_count"`
	Style          Style            `json:"style"`
	Texture        Texture          `json:"texture"`
	Objects        Objects          `json:"objects"`
	Scene          Scene            `json:"scene"`
	Harmony        Harmony          `json:"harmony"`
	Insight        *ExternalInsight `json:"insight,omitempty"`
	Fingerprint    Fingerprint      `json:"fingerprint"`
	Metadata       Metadata         `json:"metadata"`
}
