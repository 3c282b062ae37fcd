package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ironsheep/image-vectorize/internal/config"
	"github.com/ironsheep/image-vectorize/internal/imaging"
	"github.com/ironsheep/image-vectorize/internal/vectorize"
)

// ToolCallParams are the params of tools/call. Arguments is decoded by the
// tool handler named by Name.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall runs one tool. A successful result is returned as a single
// text content item holding the JSON encoding:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed params give -32602; any tool failure gives -32000 with the
// error text as data.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool maps a tool name to its handler.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_vectorize":
		return s.handleImageVectorize(ctx, args)
	case "image_foreground_mask":
		return s.handleImageForegroundMask(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse builds a JSON-RPC error reply.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON indents v as JSON. Tool results always marshal, so an
// error yields an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageVectorizeArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
	config.Overrides
}

// VectorizeResult is the image_vectorize tool result.
type VectorizeResult struct {
	// SVG is the document, omitted when it was written to OutputPath.
	SVG string `json:"svg,omitempty"`

	// OutputPath is where the SVG was written, if requested.
	OutputPath string `json:"output_path,omitempty"`

	// Metadata holds the canvas size and region count.
	Metadata vectorize.Metadata `json:"metadata"`

	// Message explains an empty result.
	Message string `json:"message,omitempty"`
}

// options resolves per-call overrides against the server configuration.
func (s *Server) options(o config.Overrides) (vectorize.Options, error) {
	opts, err := s.cfg.ApplyArgs(o)
	if err != nil {
		return vectorize.Options{}, err
	}
	opts.Upscaler = s.upscaler
	return opts, nil
}

func (s *Server) handleImageVectorize(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageVectorizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts, err := s.options(a.Overrides)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	res, err := vectorize.VectorizeImage(ctx, img, opts)
	if err != nil {
		return nil, err
	}

	out := &VectorizeResult{Metadata: res.Metadata()}
	if res.Empty() {
		out.Message = "no foreground found: every pixel is background or all shapes are below min_area"
	}

	svg := res.Document.SVG()
	if a.OutputPath != "" {
		if err := os.WriteFile(a.OutputPath, svg, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write SVG: %w", err)
		}
		out.OutputPath = a.OutputPath
		return out, nil
	}
	out.SVG = string(svg)
	return out, nil
}

type imageForegroundMaskArgs struct {
	Path  string `json:"path"`
	Color string `json:"color"`
	config.Overrides
}

// MaskResult is the image_foreground_mask tool result.
type MaskResult struct {
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	ForegroundPixels int    `json:"foreground_pixels"`
	ImageBase64      string `json:"image_base64"`
	MimeType         string `json:"mime_type"`
}

func (s *Server) handleImageForegroundMask(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageForegroundMaskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = "#000000"
	}
	fg, err := imaging.ParseHexColor(a.Color)
	if err != nil {
		return nil, err
	}
	opts, err := s.options(a.Overrides)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	mask, err := vectorize.Mask(ctx, imaging.FromImage(img), opts)
	if err != nil {
		return nil, err
	}
	data, err := mask.PNG(fg)
	if err != nil {
		return nil, err
	}

	return &MaskResult{
		Width:            mask.Width(),
		Height:           mask.Height(),
		ForegroundPixels: mask.Count(),
		ImageBase64:      base64.StdEncoding.EncodeToString(data),
		MimeType:         "image/png",
	}, nil
}
