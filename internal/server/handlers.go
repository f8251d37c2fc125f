package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/image-transform-mcp/internal/codec"
	"github.com/ironsheep/image-transform-mcp/internal/imaging"
	"github.com/ironsheep/image-transform-mcp/internal/transform"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_mosaic").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.debugf("%s failed: %v", params.Name, err)
		return errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Builds a transform.Transform, or reads the store directly for queries
//  4. Applies it to the server's store
//  5. Returns a description of the result or the error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Files
	case "image_load":
		return s.handleImageLoad(args)
	case "image_save":
		return s.handleImageSave(args)

	// Store
	case "image_list":
		return s.handleImageList(args)
	case "image_info":
		return s.handleImageInfo(args)

	// Transformations
	case "image_flip":
		return s.handleImageFlip(args)
	case "image_component":
		return s.handleImageComponent(args)
	case "image_brighten":
		return s.handleImageBrighten(args)
	case "image_color_transform":
		return s.handleImageColorTransform(args)
	case "image_filter":
		return s.handleImageFilter(args)
	case "image_mosaic":
		return s.handleImageMosaic(args)
	case "image_edge_detect":
		return s.handleImageEdgeDetect(args)

	// Analysis
	case "image_histogram":
		return s.handleImageHistogram(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

	// Command registry
	case "image_commands":
		return transform.Commands, nil
	case "image_apply":
		return s.handleImageApply(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// imageResult describes an image published to the store.
type imageResult struct {
	Operation string `json:"operation"`
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// apply runs t against the store and describes the image published under dest.
func (s *Server) apply(t transform.Transform, dest string) (*imageResult, error) {
	if err := t.Apply(s.store); err != nil {
		return nil, err
	}
	img, err := s.store.Get(dest)
	if err != nil {
		return nil, err
	}
	s.debugf("%s published %q (%dx%d)", t.Name(), dest, img.Width(), img.Height())
	return &imageResult{
		Operation: t.Name(),
		Name:      dest,
		Width:     img.Width(),
		Height:    img.Height(),
	}, nil
}

// endpointArgs names the source and destination images of a transformation.
// Dest defaults to Image, replacing it in place.
type endpointArgs struct {
	Image string `json:"image"`
	Dest  string `json:"dest"`
}

func (a endpointArgs) dest() string {
	if a.Dest == "" {
		return a.Image
	}
	return a.Dest
}

// === File Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

type imageLoadResult struct {
	Name string `json:"name"`
	*codec.FileInfo
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	l, err := transform.NewLoad(a.Path, a.Name)
	if err != nil {
		return nil, err
	}
	if err := l.Apply(s.store); err != nil {
		return nil, err
	}
	s.debugf("loaded %s as %q", a.Path, a.Name)
	return &imageLoadResult{Name: a.Name, FileInfo: l.Info()}, nil
}

type imageSaveArgs struct {
	Image       string `json:"image"`
	Path        string `json:"path"`
	JPEGQuality int    `json:"jpeg_quality"`
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts := s.cfg.CodecOptions()
	if a.JPEGQuality != 0 {
		opts.JPEGQuality = a.JPEGQuality
	}
	v, err := transform.NewSave(a.Image, a.Path, opts)
	if err != nil {
		return nil, err
	}
	if err := v.Apply(s.store); err != nil {
		return nil, err
	}
	return &imageLoadResult{Name: a.Image, FileInfo: v.Info()}, nil
}

// === Store Handlers ===

type imageListResult struct {
	Images []imageResult `json:"images"`
	Count  int           `json:"count"`
}

func (s *Server) handleImageList(args json.RawMessage) (interface{}, error) {
	names := s.store.Names()
	result := &imageListResult{Images: make([]imageResult, 0, len(names)), Count: len(names)}
	for _, name := range names {
		img, err := s.store.Get(name)
		if err != nil {
			continue
		}
		result.Images = append(result.Images, imageResult{Name: name, Width: img.Width(), Height: img.Height()})
	}
	return result, nil
}

type imageArgs struct {
	Image string `json:"image"`
}

type imageInfoResult struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Pixels int    `json:"pixels"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.store.Get(a.Image)
	if err != nil {
		return nil, err
	}
	return &imageInfoResult{
		Name:   a.Image,
		Width:  img.Width(),
		Height: img.Height(),
		Pixels: img.Width() * img.Height(),
	}, nil
}

// === Transformation Handlers ===

type imageFlipArgs struct {
	endpointArgs
	Direction string `json:"direction"`
}

func (s *Server) handleImageFlip(args json.RawMessage) (interface{}, error) {
	var a imageFlipArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	t, err := transform.NewFlip(transform.Direction(a.Direction), a.Image, a.dest())
	if err != nil {
		return nil, err
	}
	return s.apply(t, a.dest())
}

type imageComponentArgs struct {
	endpointArgs
	Component string `json:"component"`
}

func (s *Server) handleImageComponent(args json.RawMessage) (interface{}, error) {
	var a imageComponentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	t, err := transform.NewExtract(transform.Component(a.Component), a.Image, a.dest())
	if err != nil {
		return nil, err
	}
	return s.apply(t, a.dest())
}

type imageBrightenArgs struct {
	endpointArgs
	Increment int `json:"increment"`
}

func (s *Server) handleImageBrighten(args json.RawMessage) (interface{}, error) {
	var a imageBrightenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	t, err := transform.NewBrighten(a.Increment, a.Image, a.dest())
	if err != nil {
		return nil, err
	}
	return s.apply(t, a.dest())
}

type imageColorTransformArgs struct {
	endpointArgs
	Preset string      `json:"preset"`
	Matrix [][]float64 `json:"matrix"`
}

func (s *Server) handleImageColorTransform(args json.RawMessage) (interface{}, error) {
	var a imageColorTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var (
		m    transform.Matrix
		name string
	)
	switch {
	case a.Matrix != nil && a.Preset != "":
		return nil, fmt.Errorf("%w: give either preset or matrix, not both", imaging.ErrValidation)
	case a.Matrix != nil:
		var err error
		if m, err = transform.NewMatrix(a.Matrix); err != nil {
			return nil, err
		}
	case a.Preset == "greyscale", a.Preset == "grayscale":
		m, name = transform.Greyscale, "greyscale"
	case a.Preset == "sepia":
		m, name = transform.Sepia, "sepia"
	default:
		return nil, fmt.Errorf("%w: unknown color preset %q", imaging.ErrValidation, a.Preset)
	}

	t, err := transform.NewColorMatrix(name, m, a.Image, a.dest())
	if err != nil {
		return nil, err
	}
	return s.apply(t, a.dest())
}

type imageFilterArgs struct {
	endpointArgs
	Filter string      `json:"filter"`
	Kernel [][]float64 `json:"kernel"`
}

func (s *Server) handleImageFilter(args json.RawMessage) (interface{}, error) {
	var a imageFilterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var (
		k    transform.Kernel
		name string
	)
	switch {
	case a.Kernel != nil && a.Filter != "":
		return nil, fmt.Errorf("%w: give either filter or kernel, not both", imaging.ErrValidation)
	case a.Kernel != nil:
		var err error
		if k, err = transform.NewKernel(a.Kernel); err != nil {
			return nil, err
		}
	case a.Filter == "blur":
		k, name = transform.Blur, "blur"
	case a.Filter == "sharpen":
		k, name = transform.Sharpen, "sharpen"
	default:
		return nil, fmt.Errorf("%w: unknown filter %q", imaging.ErrValidation, a.Filter)
	}

	t, err := transform.NewConvolve(name, k, a.Image, a.dest())
	if err != nil {
		return nil, err
	}
	return s.apply(t, a.dest())
}

type imageMosaicArgs struct {
	endpointArgs
	Seeds int `json:"seeds"`
}

// clusterSummary describes a mosaic tile without its member list.
type clusterSummary struct {
	Seed   transform.Point `json:"seed"`
	Color  imaging.Pixel   `json:"color"`
	Pixels int             `json:"pixels"`
}

type imageMosaicResult struct {
	*imageResult
	Clusters []clusterSummary `json:"clusters"`
}

func (s *Server) handleImageMosaic(args json.RawMessage) (interface{}, error) {
	var a imageMosaicArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	t, err := transform.NewMosaic(a.Seeds, s.rnd, a.Image, a.dest())
	if err != nil {
		return nil, err
	}
	res, err := s.apply(t, a.dest())
	if err != nil {
		return nil, err
	}

	clusters := t.Clusters()
	result := &imageMosaicResult{imageResult: res, Clusters: make([]clusterSummary, len(clusters))}
	for i, c := range clusters {
		result.Clusters[i] = clusterSummary{Seed: c.Seed, Color: c.Color, Pixels: len(c.Members)}
	}
	return result, nil
}

type imageEdgeDetectArgs struct {
	endpointArgs
	ThresholdLow  *int `json:"threshold_low"`
	ThresholdHigh *int `json:"threshold_high"`
}

func (s *Server) handleImageEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a imageEdgeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	low, high := transform.DefaultEdgeLow, transform.DefaultEdgeHigh
	if a.ThresholdLow != nil {
		low = *a.ThresholdLow
	}
	if a.ThresholdHigh != nil {
		high = *a.ThresholdHigh
	}
	t, err := transform.NewEdgeDetect(low, high, a.Image, a.dest())
	if err != nil {
		return nil, err
	}
	return s.apply(t, a.dest())
}

// === Analysis Handlers ===

type imageHistogramResult struct {
	Name string `json:"name"`
	Max  int    `json:"max"`
	*imaging.Histogram
}

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.store.Get(a.Image)
	if err != nil {
		return nil, err
	}
	h := imaging.NewHistogram(img)
	return &imageHistogramResult{Name: a.Image, Max: h.Max(), Histogram: h}, nil
}

type imageSampleColorArgs struct {
	Image string `json:"image"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.store.Get(a.Image)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.Row, a.Col)
}

type imageDominantColorsArgs struct {
	Image string `json:"image"`
	Count int    `json:"count"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.store.Get(a.Image)
	if err != nil {
		return nil, err
	}
	return imaging.DominantColors(img, a.Count)
}

// === Command Registry Handlers ===

type imageApplyArgs struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

type imageApplyResult struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Images  []string `json:"images"`
}

func (s *Server) handleImageApply(args json.RawMessage) (interface{}, error) {
	var a imageApplyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	t, err := transform.Build(a.Command, a.Args, transform.Env{Random: s.rnd, Codec: s.cfg.CodecOptions()})
	if err != nil {
		return nil, err
	}
	if err := t.Apply(s.store); err != nil {
		return nil, err
	}
	s.debugf("applied %s %v", a.Command, a.Args)
	return &imageApplyResult{Command: a.Command, Args: a.Args, Images: s.store.Names()}, nil
}
