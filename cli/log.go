package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/ardnew/runr/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-format flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-level flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"warn"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"text"    enum:"text,json"                   help:"Set log format."`
	TimeLayout string    `default:"kitchen"                                    help:"Set timestamp format."`
	Caller     bool      `default:"false"                                      help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                       help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(timeLayout(f.TimeLayout)),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// timeLayout translates well-known layout names to their reference layouts.
// Anything unrecognized is passed through as a literal [time.Time.Format]
// layout, and "none" (or the empty string) disables timestamps.
func timeLayout(name string) string {
	switch strings.ToLower(name) {
	case "", "none":
		return ""
	case "kitchen":
		return time.Kitchen
	case "stamp":
		return time.Stamp
	case "timeonly":
		return time.TimeOnly
	case "datetime":
		return time.DateTime
	case "rfc3339":
		return time.RFC3339
	default:
		return name
	}
}

// scan performs an early pass over command-line arguments to extract and
// apply logger configuration before Kong begins parsing. This ensures the
// logger is configured properly regardless of flag position on the command
// line.
//
// While logFormat and logLevel types implement encoding.TextUnmarshaler to
// configure the logger as flags are encountered during parsing, boolean flags
// like Pretty don't go through that interface. This pre-scan ensures all logger
// flags are applied early.
func (f *logConfig) scan(args []string) {
	// next returns the following argument when it looks like a flag value.
	next := func(i int) (string, bool) {
		if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
			return args[i+1], true
		}

		return "", false
	}

	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		switch name {
		case "--log-level":
			if !assigned {
				if v, ok := next(i); ok {
					value, i = v, i+1
				}
			}

			_ = f.Level.UnmarshalText([]byte(value))

		case "--log-format":
			if !assigned {
				if v, ok := next(i); ok {
					value, i = v, i+1
				}
			}

			_ = f.Format.UnmarshalText([]byte(value))

		case "--log-pretty", "--no-log-pretty":
			enable := name == "--log-pretty"
			if assigned {
				b, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}
				// A negated flag with an explicit false value re-enables.
				enable = enable == b
			}

			f.Pretty = enable

			log.Config(log.WithPretty(enable))

		case "--log-caller", "--no-log-caller":
			enable := name == "--log-caller"
			if assigned {
				b, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				enable = enable == b
			}

			f.Caller = enable

			log.Config(log.WithCaller(enable))
		}
	}
}
