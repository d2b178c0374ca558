package resalloc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
)

// ArgumentError reports missing, conflicting or malformed command-line
// arguments. Err may hold several causes.
type ArgumentError struct {
	Err error
}

func (e *ArgumentError) Error() string {
	return "invalid arguments: " + e.Err.Error()
}

func (e *ArgumentError) Unwrap() error { return e.Err }

func newArgumentError(errs *multierror.Error) *ArgumentError {
	errs.ErrorFormat = func(es []error) string {
		msgs := make([]string, len(es))
		for i, err := range es {
			msgs[i] = err.Error()
		}
		return strings.Join(msgs, "; ")
	}
	return &ArgumentError{Err: errs}
}

var (
	errMissingMemory   = errors.New("--memory is required")
	errConflictingWait = errors.New("--duration and --wait-forever are mutually exclusive")
)

// ParseArgs reads the flags in args (without the program name) into a
// Config. Usage is written to output when parsing fails. -h returns
// pflag.ErrHelp as is.
func ParseArgs(args []string, output io.Writer) (*Config, error) {
	fs := pflag.NewFlagSet("resalloc", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, "Usage: resalloc --memory <SIZE> [--duration <SECONDS> | --wait-forever]\n\n"+
			"Allocates SIZE bytes of RAM, touches every page and waits before exiting.\n"+
			"SIZE accepts B, K/KB, M/MB, G/GB and T/TB suffixes (powers of 1000).\n\n")
		fs.PrintDefaults()
	}
	fs.SortFlags = false

	memory := fs.StringP("memory", "m", "", "amount of RAM to allocate (e.g. 512MB, 2GB)")
	duration := fs.Uint64P("duration", "d", DefaultDurationSeconds, "seconds to wait before exiting")
	forever := fs.BoolP("wait-forever", "F", false, "wait indefinitely until interrupted")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		fs.Usage()
		return nil, newArgumentError(multierror.Append(nil, err))
	}

	var result *multierror.Error
	if strings.TrimSpace(*memory) == "" {
		result = multierror.Append(result, errMissingMemory)
	}
	if *forever && fs.Changed("duration") {
		result = multierror.Append(result, errConflictingWait)
	}
	if fs.NArg() > 0 {
		result = multierror.Append(result, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " ")))
	}
	if result.ErrorOrNil() != nil {
		fs.Usage()
		return nil, newArgumentError(result)
	}

	c := &Config{Memory: *memory, Wait: FixedSeconds(*duration)}
	if *forever {
		c.Wait = Forever()
	}

	return c, nil
}
