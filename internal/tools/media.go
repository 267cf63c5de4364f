package tools

import "context"

// VisionClient describes images through the image-analysis collaborator.
type VisionClient struct {
	client *Client
}

// NewVisionClient wraps a tool client for vision calls.
func NewVisionClient(client *Client) *VisionClient {
	return &VisionClient{client: client}
}

// Analyze returns a description of the image at path, guided by prompt.
func (c *VisionClient) Analyze(ctx context.Context, imagePath, prompt string) (string, error) {
	req := struct {
		Image  string `json:"image"`
		Prompt string `json:"prompt"`
	}{Image: imagePath, Prompt: prompt}

	var resp struct {
		envelope
		Description string `json:"description"`
	}
	if err := c.client.call(ctx, "vision.analyze", req, &resp); err != nil {
		return "", err
	}
	return resp.Description, nil
}

// AudioClient transcribes voice notes and synthesizes spoken replies.
type AudioClient struct {
	client *Client
}

// NewAudioClient wraps a tool client for audio calls.
func NewAudioClient(client *Client) *AudioClient {
	return &AudioClient{client: client}
}

// Transcribe converts the audio file at path to text. An empty transcript
// with a nil error means the audio carried no recognizable speech.
func (c *AudioClient) Transcribe(ctx context.Context, path string) (string, error) {
	req := struct {
		File string `json:"file"`
	}{File: path}

	var resp struct {
		envelope
		Text string `json:"text"`
	}
	if err := c.client.call(ctx, "audio.transcribe", req, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Synthesize renders text to speech in the given language, writing the
// audio to outputPath. Returns the path of the generated file.
func (c *AudioClient) Synthesize(ctx context.Context, text, lang, outputPath string) (string, error) {
	req := struct {
		Text   string `json:"text"`
		Lang   string `json:"lang"`
		Output string `json:"output"`
	}{Text: text, Lang: lang, Output: outputPath}

	var resp struct {
		envelope
		FilePath string `json:"file_path"`
	}
	if err := c.client.call(ctx, "audio.synthesize", req, &resp); err != nil {
		return "", err
	}
	if resp.FilePath == "" {
		resp.FilePath = outputPath
	}
	return resp.FilePath, nil
}
