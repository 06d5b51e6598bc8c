// Package insight fetches a semantic description of an image from a
// vision-capable model and turns the free-form response into a
// structured ExternalInsight record. Everything here is best-effort:
// the heuristic pipeline never depends on it.
package insight

import "context"

// Client is the backend-neutral interface for vision models.
type Client interface {
	// Describe sends the prompt together with a base64-encoded image and
	// returns the raw model response text.
	Describe(ctx context.Context, model, prompt, imgB64 string) (string, error)
}

// AnalysisPrompt asks the model for a designer-grade breakdown of the
// image, structured as JSON.
const AnalysisPrompt = "Analyze this image in detail as if you were a professional thumbnail designer and provide the following information:\n" +
	"1. Main subject: Describe the main subject and focal point in detail\n" +
	"2. Visual elements: List all key visual elements, objects, and their arrangement\n" +
	"3. Color analysis: Analyze the color palette, dominant colors, color harmony, and emotional impact of colors\n" +
	"4. Lighting: Describe the lighting direction, quality, mood, and any special lighting effects\n" +
	"5. Composition: Analyze the composition technique, balance, focal points, and visual flow\n" +
	"6. Style and techniques: Identify the artistic style, photographic/design techniques used\n" +
	"7. Emotional impact: Describe the mood, atmosphere, and emotional response the image evokes\n" +
	"8. Thumbnail effectiveness: Assess how effective this would be as a thumbnail and why\n" +
	"9. Improvement suggestions: Suggest specific ways to make this image more engaging as a thumbnail\n" +
	"10. Keywords: List 10-15 specific keywords that best describe this image\n\n" +
	"Format your response as a structured JSON with these categories. Be extremely detailed and specific."

// BasicPrompt is a shorter variant for faster models.
const BasicPrompt = "Describe this image concisely, focusing on:\n" +
	"1. Main subject\n" +
	"2. Key visual elements\n" +
	"3. Color palette and mood\n" +
	"4. Overall style\n" +
	"Format your response as a structured JSON."
