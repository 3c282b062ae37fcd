package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// optionProperties describes the per-call conversion overrides shared by
// the vectorization tools.
func optionProperties() map[string]interface{} {
	return map[string]interface{}{
		"white_threshold": map[string]interface{}{
			"type":        "integer",
			"description": "A pixel is background when all of R, G and B are strictly above this value (0-255)",
			"minimum":     0,
			"maximum":     255,
		},
		"min_area": map[string]interface{}{
			"type":        "number",
			"description": "Contours enclosing fewer than this many input-image pixels are discarded, regardless of upscaling",
			"minimum":     0,
		},
		"stroke_width": map[string]interface{}{
			"type":        "number",
			"description": "Outline width in working-resolution pixels; scaled to output units",
			"minimum":     0,
		},
		"sharpen_factor": map[string]interface{}{
			"type":        "number",
			"description": "Sharpening strength; 1.0 leaves the image unchanged",
		},
		"enable_upscale": map[string]interface{}{
			"type":        "boolean",
			"description": "Upscale before tracing to smooth contours",
		},
		"enable_sharpen": map[string]interface{}{
			"type":        "boolean",
			"description": "Sharpen before tracing",
		},
		"upscale_factor": map[string]interface{}{
			"type":        "integer",
			"description": "Upscale multiplier when enable_upscale is set",
			"minimum":     1,
			"maximum":     8,
		},
	}
}

func pathSchema(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   []string{"path"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	vectorizeProps := optionProperties()
	vectorizeProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Write the SVG to this file instead of returning it inline",
	}

	maskProps := optionProperties()
	maskProps["color"] = map[string]interface{}{
		"type":        "string",
		"description": "Hex color for foreground pixels in the preview (default: #000000)",
		"default":     "#000000",
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: pathSchema(nil),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: pathSchema(nil),
		},

		// Vectorization
		{
			Name: "image_vectorize",
			Description: "Convert a raster image into an SVG of filled color regions. " +
				"Nested shapes become separate paths drawn largest first; white interiors become holes.",
			InputSchema: pathSchema(vectorizeProps),
		},
		{
			Name: "image_foreground_mask",
			Description: "Return the foreground/background separation used for vectorization as a base64-encoded PNG. " +
				"Use this to tune white_threshold before converting.",
			InputSchema: pathSchema(maskProps),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
