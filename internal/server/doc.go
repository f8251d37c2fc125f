// Package server implements the MCP (Model Context Protocol) server for image
// transformation tools.
//
// This package provides a JSON-RPC 2.0 server that exposes a named image store
// and the transformations of package transform through the MCP protocol.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Files:
//   - image_load: Read a file into the store under a name
//   - image_save: Write a stored image to a file
//
// Store:
//   - image_list: Names and sizes of stored images
//   - image_info: Size of one stored image
//
// Transformations (each reads "image" and publishes "dest", which defaults
// to "image"):
//   - image_flip: Horizontal or vertical mirror
//   - image_component: Greyscale from red, green, blue, value, intensity or luma
//   - image_brighten: Add a signed increment to every channel
//   - image_color_transform: 3x3 color matrix (greyscale, sepia or custom)
//   - image_filter: Convolution (blur, sharpen or custom kernel)
//   - image_mosaic: Random-seed tiles painted with their mean color
//   - image_edge_detect: Canny edge detection
//
// Analysis:
//   - image_histogram: Per-channel value counts
//   - image_sample_color: Color at a pixel
//   - image_dominant_colors: Extract color palette
//
// Command registry:
//   - image_commands: The commands image_apply accepts
//   - image_apply: Run a command by name with positional arguments
//
// # Image Store
//
// Images live in an in-memory imaging.Store for the lifetime of the server
// process. A failed tool call leaves the store unchanged.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
