package server

import "github.com/ironsheep/image-transform-mcp/internal/transform"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func property(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

var (
	imageProperty = property("string", "Name of the source image in the store")
	destProperty  = property("string", "Name to publish the result under. Defaults to the source name, replacing it")
)

// transformSchema builds the schema of a tool that reads one stored image and
// publishes another. extra adds tool-specific properties; required lists the
// ones besides "image" that must be present.
func transformSchema(extra map[string]interface{}, required ...string) map[string]interface{} {
	props := map[string]interface{}{
		"image": imageProperty,
		"dest":  destProperty,
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   append([]string{"image"}, required...),
	}
}

func componentNames() []string {
	names := make([]string, len(transform.Components))
	for i, c := range transform.Components {
		names[i] = string(c)
	}
	return names
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Files
		{
			Name:        "image_load",
			Description: "Load a PPM, PNG, JPEG, GIF, BMP, TIFF or WebP file into the store under a name.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": property("string", "Absolute path to the image file"),
					"name": property("string", "Name to store the image under"),
				},
				"required": []string{"path", "name"},
			},
		},
		{
			Name:        "image_save",
			Description: "Save a stored image to a file. The format is chosen by extension: .ppm, .png, .jpg, .gif, .bmp or .tif.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image": imageProperty,
					"path":  property("string", "Absolute path of the file to write"),
					"jpeg_quality": map[string]interface{}{
						"type":        "integer",
						"description": "JPEG quality 1-100. 0 or absent uses the configured quality",
						"minimum":     1,
						"maximum":     100,
					},
				},
				"required": []string{"image", "path"},
			},
		},

		// Store
		{
			Name:        "image_list",
			Description: "List the names and dimensions of every stored image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "image_info",
			Description: "Get the width, height and pixel count of a stored image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image": imageProperty,
				},
				"required": []string{"image"},
			},
		},

		// Transformations
		{
			Name:        "image_flip",
			Description: "Mirror an image horizontally (left-right) or vertically (top-bottom).",
			InputSchema: transformSchema(map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{string(transform.Horizontal), string(transform.Vertical)},
					"description": "Axis to mirror across",
				},
			}, "direction"),
		},
		{
			Name:        "image_component",
			Description: "Build a greyscale image from one component of every pixel: a channel, value (max), intensity (mean) or luma.",
			InputSchema: transformSchema(map[string]interface{}{
				"component": map[string]interface{}{
					"type":        "string",
					"enum":        componentNames(),
					"description": "Component to extract",
				},
			}, "component"),
		},
		{
			Name:        "image_brighten",
			Description: "Add a signed increment to every channel, clamping to 0-255. Negative values darken.",
			InputSchema: transformSchema(map[string]interface{}{
				"increment": property("integer", "Amount added to each channel"),
			}, "increment"),
		},
		{
			Name:        "image_color_transform",
			Description: "Apply a 3x3 color matrix to every pixel: a preset (greyscale, sepia) or a custom matrix.",
			InputSchema: transformSchema(map[string]interface{}{
				"preset": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"greyscale", "sepia"},
					"description": "Preset matrix. Give either preset or matrix",
				},
				"matrix": map[string]interface{}{
					"type":        "array",
					"description": "Custom 3x3 matrix; row k produces output channel k",
					"items": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "number"},
					},
				},
			}),
		},
		{
			Name:        "image_filter",
			Description: "Convolve an image with a kernel: a preset (blur, sharpen) or a custom odd square kernel. Edges are clamped.",
			InputSchema: transformSchema(map[string]interface{}{
				"filter": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"blur", "sharpen"},
					"description": "Preset kernel. Give either filter or kernel",
				},
				"kernel": map[string]interface{}{
					"type":        "array",
					"description": "Custom square kernel with an odd side length",
					"items": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "number"},
					},
				},
			}),
		},
		{
			Name:        "image_mosaic",
			Description: "Partition an image into tiles around random seeds and paint each tile with its mean color.",
			InputSchema: transformSchema(map[string]interface{}{
				"seeds": map[string]interface{}{
					"type":        "integer",
					"description": "Number of tiles",
					"minimum":     1,
				},
			}, "seeds"),
		},
		{
			Name:        "image_edge_detect",
			Description: "Canny edge detection. Publishes a black image with edges in white.",
			InputSchema: transformSchema(map[string]interface{}{
				"threshold_low": map[string]interface{}{
					"type":        "integer",
					"description": "Hysteresis low threshold (0-255). Default 50",
					"default":     transform.DefaultEdgeLow,
				},
				"threshold_high": map[string]interface{}{
					"type":        "integer",
					"description": "Hysteresis high threshold (0-255). Default 150",
					"default":     transform.DefaultEdgeHigh,
				},
			}),
		},

		// Analysis
		{
			Name:        "image_histogram",
			Description: "Count the pixels per value (0-255) of the red, green, blue and intensity channels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image": imageProperty,
				},
				"required": []string{"image"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a pixel as hex, RGB and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image": imageProperty,
					"row":   property("integer", "Row (0-based, from top)"),
					"col":   property("integer", "Column (0-based, from left)"),
				},
				"required": []string{"image", "row", "col"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Extract the most common colors of an image, quantized to reduce noise.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image": imageProperty,
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return. Default 5",
						"default":     5,
					},
				},
				"required": []string{"image"},
			},
		},

		// Command registry
		{
			Name:        "image_commands",
			Description: "List every command accepted by image_apply with its arguments.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "image_apply",
			Description: "Run a command by name with positional arguments, e.g. command \"brighten\" with args [\"10\", \"koala\", \"koala-bright\"].",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"command": map[string]interface{}{
						"type":        "string",
						"enum":        transform.CommandNames(),
						"description": "Command name",
					},
					"args": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Positional arguments in the order shown by image_commands",
					},
				},
				"required": []string{"command", "args"},
			},
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
