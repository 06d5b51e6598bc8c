package insight

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/visprof/image-profiler/pkg/types"
)

// fieldAliases maps model response keys (normalized to lower snake case)
// to insight fields. Several aliases map to the same field because
// models name sections inconsistently.
var fieldAliases = map[string]string{
	"main_subject":            "subject",
	"subject":                 "subject",
	"visual_elements":         "objects",
	"detected_objects":        "objects",
	"style_and_techniques":    "style",
	"style":                   "style",
	"color_analysis":          "color",
	"color_palette":           "color",
	"composition":             "composition",
	"mood":                    "mood",
	"emotional_impact":        "emotional_impact",
	"lighting":                "lighting",
	"thumbnail_effectiveness": "effectiveness",
	"improvement_suggestions": "improvements",
	"keywords":                "keywords",
}

// Extract converts a raw model response into an ExternalInsight. It
// first tries the sanitized response as JSON; if that fails it falls
// back to keyword-anchored section extraction over the plain text.
// Extraction is best-effort and never errors: unmatched fields stay at
// their empty defaults.
func Extract(raw string) *types.ExternalInsight {
	out := &types.ExternalInsight{
		DetectedObjects: []string{},
		Keywords:        []string{},
	}
	if strings.TrimSpace(raw) == "" {
		return out
	}

	sanitized := SanitizeModelJSON(raw)
	if strings.HasPrefix(sanitized, "{") {
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(sanitized), &parsed); err == nil {
			extractJSON(out, parsed)
			return out
		}
	}

	extractText(out, raw)
	return out
}

func extractJSON(out *types.ExternalInsight, parsed map[string]interface{}) {
	for key, value := range parsed {
		field, ok := fieldAliases[normalizeKey(key)]
		if !ok {
			continue
		}
		switch field {
		case "subject":
			setIfEmpty(&out.SubjectDescription, asText(value))
		case "objects":
			if len(out.DetectedObjects) == 0 {
				out.DetectedObjects = asList(value)
			}
		case "style":
			setIfEmpty(&out.StyleDescription, asText(value))
		case "color":
			setIfEmpty(&out.ColorAnalysis, asText(value))
		case "composition":
			setIfEmpty(&out.CompositionInsights, asText(value))
		case "mood":
			setIfEmpty(&out.Mood, asText(value))
		case "emotional_impact":
			setIfEmpty(&out.EmotionalImpact, asText(value))
		case "lighting":
			setIfEmpty(&out.Lighting, asText(value))
		case "effectiveness":
			setIfEmpty(&out.ThumbnailEffectiveness, asText(value))
		case "improvements":
			setIfEmpty(&out.ImprovementSuggestions, asText(value))
		case "keywords":
			if len(out.Keywords) == 0 {
				out.Keywords = asList(value)
			}
		}
	}
}

func extractText(out *types.ExternalInsight, raw string) {
	out.SubjectDescription = extractSection(raw, "subject")
	out.StyleDescription = firstNonEmpty(
		extractSection(raw, "style"),
		extractSection(raw, "technique"),
	)
	out.ColorAnalysis = extractSection(raw, "color")
	out.CompositionInsights = extractSection(raw, "composition")
	out.Mood = firstNonEmpty(
		extractSection(raw, "mood"),
		extractSection(raw, "emotion"),
	)
	out.Lighting = firstNonEmpty(
		extractSection(raw, "lighting"),
		extractSection(raw, "light"),
	)
	out.ThumbnailEffectiveness = firstNonEmpty(
		extractSection(raw, "thumbnail"),
		extractSection(raw, "effectiveness"),
	)
	out.ImprovementSuggestions = firstNonEmpty(
		extractSection(raw, "improvement"),
		extractSection(raw, "suggestion"),
	)
	out.EmotionalImpact = firstNonEmpty(
		extractSection(raw, "emotional"),
		extractSection(raw, "impact"),
	)

	if objects := firstNonEmpty(extractSection(raw, "object"), extractSection(raw, "element")); objects != "" {
		out.DetectedObjects = splitList(objects)
	}
	if keywords := extractSection(raw, "keyword"); keywords != "" {
		out.Keywords = splitList(keywords)
	}
}

// extractSection pulls the text following "<keyword>:" or "<keyword> -"
// up to a blank line or the next capitalized heading.
func extractSection(text, keyword string) string {
	pattern, err := regexp.Compile(`(?is).*` + regexp.QuoteMeta(keyword) + `.*?[:\-]\s*(.*?)(?:\n\n|\n[A-Z]|$)`)
	if err != nil {
		return ""
	}
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// SanitizeModelJSON removes code fences, comments, and trailing commas
// from a model response and slices out the outermost JSON object.
func SanitizeModelJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	// Strip triple-backtick fences if present
	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		if j := strings.LastIndex(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "`")

	// Remove /* ... */ block comments
	reBlock := regexp.MustCompile(`(?s)/\*.*?\*/`)
	raw = reBlock.ReplaceAllString(raw, "")

	// Remove // line/inline comments
	reLine := regexp.MustCompile(`(?m)^\s*//.*$`)
	raw = reLine.ReplaceAllString(raw, "")
	reInline := regexp.MustCompile(`(?m)//.*$`)
	raw = reInline.ReplaceAllString(raw, "")

	// Remove trailing commas before } or ]
	reTrailing := regexp.MustCompile(`,(\s*[}\]])`)
	raw = reTrailing.ReplaceAllString(raw, "$1")

	// Keep only the outermost {...}
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	return strings.TrimSpace(raw)
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return key
}

// asText flattens a JSON value into readable text: strings pass
// through, lists join with commas, objects join their values.
func asText(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := asText(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]interface{}:
		var parts []string
		for _, item := range v {
			if s := asText(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ". ")
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), ".")
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return ""
	}
}

// asList flattens a JSON value into a list of trimmed strings.
func asList(value interface{}) []string {
	switch v := value.(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := asText(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return splitList(v)
	default:
		return []string{}
	}
}

func splitList(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" && value != "" {
		*dst = value
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
