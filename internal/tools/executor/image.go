package executor

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/alita-ai/alita/internal/errors"
	"github.com/alita-ai/alita/pkg/protocol"
)

// DefaultImageSize is used when the caller does not pass a size.
const DefaultImageSize = "1024x1024"

// ImageGenerate calls the OpenAI Images API and returns the image as a
// base64 data URL, so the client never needs a second round-trip.
type ImageGenerate struct {
	client     openai.Client
	model      string
	configured bool
}

// NewImageGenerate creates the image tool. Extra request options are
// for tests (base URL override).
func NewImageGenerate(apiKey, model string, opts ...option.RequestOption) *ImageGenerate {
	reqOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &ImageGenerate{
		client:     openai.NewClient(reqOpts...),
		model:      model,
		configured: apiKey != "",
	}
}

// Name returns the tool's identifier.
func (t *ImageGenerate) Name() string { return "image.generate" }

// Description returns what the tool does.
func (t *ImageGenerate) Description() string {
	return "Generate an image from a text prompt"
}

// Execute runs one image generation. Input is validated before any
// outbound call; a non-2xx upstream status is surfaced in the result
// rather than raised.
func (t *ImageGenerate) Execute(ctx context.Context, args map[string]any) (*protocol.ToolResult, error) {
	start := time.Now()

	prompt := StringArg(args, "prompt")
	if prompt == "" {
		return nil, errors.User(errors.CodeToolInvalidParams, "image.generate: prompt is required")
	}
	if !t.configured {
		return nil, errors.Config(errors.CodeConfigMissingKey, "OPENAI_API_KEY not configured")
	}

	size := StringArg(args, "size")
	if size == "" {
		size = DefaultImageSize
	}
	// There is no native style parameter; fold it into the prompt.
	if style := StringArg(args, "style"); style != "" {
		prompt = fmt.Sprintf("%s, in %s style", prompt, style)
	}

	resp, err := t.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(t.model),
		Size:           openai.ImageGenerateParamsSize(size),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
		N:              openai.Int(1),
	})
	if err != nil {
		var apiErr *openai.Error
		if stderrors.As(err, &apiErr) {
			return TimedResult(protocol.NewErrorResult("image",
				"image API returned %d: %s", apiErr.StatusCode, apiErr.Message), start), nil
		}
		return TimedResult(protocol.NewErrorResult("image", "image API unreachable: %v", err), start), nil
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return TimedResult(protocol.NewErrorResult("image", "image API returned no image data"), start), nil
	}

	return TimedResult(&protocol.ToolResult{
		Success: true,
		Type:    "image",
		Prompt:  prompt,
		DataURL: "data:image/png;base64," + resp.Data[0].B64JSON,
	}, start), nil
}
