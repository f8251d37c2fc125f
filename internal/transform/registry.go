package transform

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ironsheep/image-transform-mcp/internal/codec"
	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// ArgSpec describes a single argument for a command. Fields are textual and
// intended for help output rather than machine-enforced typing.
type ArgSpec struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "int", "name" or "path"
	Required    bool   `json:"required"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description"`
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string    `json:"name"`
	Args        []ArgSpec `json:"args"`
	Usage       string    `json:"usage"`
	Description string    `json:"description"`
}

var (
	srcArg  = ArgSpec{"src", "name", true, "", "name of the image to read"}
	dstArg  = ArgSpec{"dst", "name", true, "", "name to publish the result under"}
	pathArg = ArgSpec{"path", "path", true, "", "image file path"}
)

func unary(name, description string) CommandSpec {
	return CommandSpec{
		Name:        name,
		Args:        []ArgSpec{srcArg, dstArg},
		Usage:       name + " <src> <dst>",
		Description: description,
	}
}

// Commands is the list of commands Build accepts, in display order.
var Commands = []CommandSpec{
	{
		Name:        "load",
		Args:        []ArgSpec{pathArg, {"dst", "name", true, "", "name to store the image under"}},
		Usage:       "load <path> <dst>",
		Description: "Read a PPM, PNG, JPEG, GIF, BMP, TIFF or WebP file into the store.",
	},
	{
		Name:        "save",
		Args:        []ArgSpec{pathArg, srcArg},
		Usage:       "save <path> <src>",
		Description: "Write an image to a PPM, PNG, JPEG, GIF, BMP or TIFF file.",
	},
	unary("horizontal-flip", "Mirror the image left to right."),
	unary("vertical-flip", "Mirror the image top to bottom."),
	unary("red-component", "Greyscale image of the red channel."),
	unary("green-component", "Greyscale image of the green channel."),
	unary("blue-component", "Greyscale image of the blue channel."),
	unary("value-component", "Greyscale image of max(r,g,b)."),
	unary("intensity-component", "Greyscale image of the mean of r, g and b."),
	unary("luma-component", "Greyscale image of Rec. 709 luma."),
	{
		Name:        "brighten",
		Args:        []ArgSpec{{"increment", "int", true, "", "signed amount added to every channel"}, srcArg, dstArg},
		Usage:       "brighten <increment> <src> <dst>",
		Description: "Brighten (or darken, if negative) every channel, clamping to 0-255.",
	},
	unary("greyscale", "Apply the greyscale color matrix."),
	unary("sepia", "Apply the sepia color matrix."),
	unary("blur", "Convolve with a 3x3 Gaussian blur kernel."),
	unary("sharpen", "Convolve with a 5x5 sharpening kernel."),
	{
		Name:        "mosaic",
		Args:        []ArgSpec{{"seeds", "int", true, "", "number of mosaic tiles"}, srcArg, dstArg},
		Usage:       "mosaic <seeds> <src> <dst>",
		Description: "Partition the image around random seeds and paint each tile its mean color.",
	},
	{
		Name: "edge-detect",
		Args: []ArgSpec{
			{"low", "int", false, "50", "hysteresis low threshold (0-255)"},
			{"high", "int", false, "150", "hysteresis high threshold (0-255)"},
			srcArg, dstArg,
		},
		Usage:       "edge-detect [low high] <src> <dst>",
		Description: "Canny edge detection, edges white on black.",
	},
}

// Default hysteresis thresholds for edge-detect.
const (
	DefaultEdgeLow  = 50
	DefaultEdgeHigh = 150
)

// Env carries what Build needs beyond a command's own arguments.
type Env struct {
	// Random drives mosaic seed placement. Required for "mosaic".
	Random RandomSource

	// Codec tunes files written by "save".
	Codec codec.Options
}

// Lookup returns the CommandSpec with the given name.
func Lookup(name string) (CommandSpec, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return CommandSpec{}, false
}

// CommandNames returns the sorted names of every command.
func CommandNames() []string {
	names := make([]string, len(Commands))
	for i, c := range Commands {
		names[i] = c.Name
	}
	sort.Strings(names)
	return names
}

// Build constructs the Transform for a command and its positional arguments,
// as listed in Commands, e.g. Build("brighten", []string{"10", "in", "out"}, env).
//
// Returns an error wrapping ErrValidation for an unknown command, a wrong
// argument count or a malformed number.
func Build(name string, args []string, env Env) (Transform, error) {
	cs, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown command %q", imaging.ErrValidation, name)
	}
	if !arityOK(cs, len(args)) {
		return nil, fmt.Errorf("%w: wrong number of arguments for %s, usage: %s",
			imaging.ErrValidation, name, cs.Usage)
	}

	switch name {
	case "load":
		return NewLoad(args[0], args[1])
	case "save":
		return NewSave(args[1], args[0], env.Codec)
	case "horizontal-flip":
		return NewFlip(Horizontal, args[0], args[1])
	case "vertical-flip":
		return NewFlip(Vertical, args[0], args[1])
	case "red-component", "green-component", "blue-component",
		"value-component", "intensity-component", "luma-component":
		return NewExtract(Component(name[:len(name)-len("-component")]), args[0], args[1])
	case "brighten":
		n, err := intArg(cs, args[0])
		if err != nil {
			return nil, err
		}
		return NewBrighten(n, args[1], args[2])
	case "greyscale":
		return NewColorMatrix(name, Greyscale, args[0], args[1])
	case "sepia":
		return NewColorMatrix(name, Sepia, args[0], args[1])
	case "blur":
		return NewConvolve(name, Blur, args[0], args[1])
	case "sharpen":
		return NewConvolve(name, Sharpen, args[0], args[1])
	case "mosaic":
		n, err := intArg(cs, args[0])
		if err != nil {
			return nil, err
		}
		return NewMosaic(n, env.Random, args[1], args[2])
	case "edge-detect":
		low, high := DefaultEdgeLow, DefaultEdgeHigh
		if len(args) == 4 {
			var err error
			if low, err = intArg(cs, args[0]); err != nil {
				return nil, err
			}
			if high, err = intArg(cs, args[1]); err != nil {
				return nil, err
			}
			args = args[2:]
		}
		return NewEdgeDetect(low, high, args[0], args[1])
	}
	return nil, fmt.Errorf("%w: unknown command %q", imaging.ErrValidation, name)
}

// arityOK accepts either every argument or only the required ones. Optional
// arguments always come first and are given all together or not at all.
func arityOK(cs CommandSpec, n int) bool {
	required := 0
	for _, a := range cs.Args {
		if a.Required {
			required++
		}
	}
	return n == len(cs.Args) || n == required
}

func intArg(cs CommandSpec, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s expects an integer, got %q", imaging.ErrValidation, cs.Name, s)
	}
	return n, nil
}
