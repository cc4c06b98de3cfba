package args

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/simpleflo/codeserver/internal/observability"
	"github.com/simpleflo/codeserver/pkg/models"
)

// ParseOptions controls the context a token sequence is parsed in.
type ParseOptions struct {
	// ConfigFile is the path of the config file the tokens were derived
	// from. Empty means the tokens came from the command line.
	ConfigFile string
}

type parser struct {
	opts ParseOptions
}

func (p *parser) fail(code models.ErrorCode, format string, a ...interface{}) *models.CodeServerError {
	msg := fmt.Sprintf(format, a...)
	if p.opts.ConfigFile == "" {
		return models.NewError(code, msg)
	}
	return models.NewError(code, fmt.Sprintf("error reading %s: %s", p.opts.ConfigFile, msg)).
		WithDetails("config_file", p.opts.ConfigFile)
}

// Parse interprets tokens against the option catalog in a single pass.
// It fails on the first invalid token and never returns a partial record.
func Parse(tokens []string, opts ParseOptions) (*Args, error) {
	p := &parser{opts: opts}
	out := New()
	ended := false

	for i := 0; i < len(tokens); i++ {
		arg := tokens[i]

		if !ended && arg == "--" {
			ended = true
			continue
		}

		if ended || !strings.HasPrefix(arg, "-") {
			out.Positional = append(out.Positional, arg)
			continue
		}

		var (
			spec     OptionSpec
			found    bool
			value    string
			hasValue bool
		)
		if strings.HasPrefix(arg, "--") {
			key, v, ok := strings.Cut(arg[2:], "=")
			spec, found = Lookup(key)
			value, hasValue = v, ok
		} else {
			spec, found = LookupShort(arg[1:])
		}
		if !found {
			err := p.fail(models.ErrUnknownOption, "Unknown option %s", arg)
			if s := Suggest(arg); s != "" {
				err = err.WithDetails("suggestion", "--"+s)
			}
			return nil, err
		}

		if spec.ConfigOnly && opts.ConfigFile == "" {
			return nil, models.Errorf(models.ErrRestrictedOption,
				"--%s can only be set in the config file or passed in via $%s",
				spec.Name, strings.ToUpper(strings.ReplaceAll(spec.Name, "-", "_")))
		}

		if spec.Kind == KindBoolean {
			out.Set(spec.Name, BoolValue(true))
			continue
		}

		if !hasValue && i+1 < len(tokens) && tokens[i+1] != "" && !strings.HasPrefix(tokens[i+1], "-") {
			i++
			value, hasValue = tokens[i], true
		}

		if spec.Kind == KindOptionalString {
			if !hasValue {
				out.Set(spec.Name, BareOptionalValue())
				continue
			}
			if value == "false" {
				continue
			}
			if value == "" {
				out.Set(spec.Name, OptionalValue(""))
				continue
			}
		} else if !hasValue || value == "" {
			return nil, p.fail(models.ErrMissingValue, "--%s requires a value", spec.Name)
		}

		if spec.Path {
			abs, err := filepath.Abs(value)
			if err != nil {
				return nil, fmt.Errorf("resolve --%s: %w", spec.Name, err)
			}
			value = abs
		}

		v, err := p.coerce(spec, value, out)
		if err != nil {
			return nil, err
		}
		out.Set(spec.Name, v)
	}

	if cert, ok := out.Optional(OptCert); ok && cert.Value != "" && !out.Has(OptCertKey) {
		return nil, p.fail(models.ErrMissingValue, "--%s is missing", OptCertKey)
	}

	logger := observability.Logger("args")
	logger.Debug().
		Str("config_file", opts.ConfigFile).
		Interface("args", observability.SanitizeForLog(out.LogFields())).
		Msg("parsed arguments")

	return out, nil
}

// coerce converts a raw value according to the option kind. List values
// are appended to whatever the record already holds.
func (p *parser) coerce(spec OptionSpec, value string, current *Args) (Value, error) {
	switch spec.Kind {
	case KindString:
		return StringValue(value), nil
	case KindStringList:
		return ListValue(append(current.Strings(spec.Name), value)...), nil
	case KindOptionalString:
		return OptionalValue(value), nil
	case KindNumber:
		n, err := strconv.Atoi(value)
		if err != nil {
			return Value{}, p.fail(models.ErrInvalidNumber, "--%s must be a number", spec.Name)
		}
		return NumberValue(n), nil
	case KindEnum:
		for _, allowed := range spec.Enum {
			if value == allowed {
				return EnumValue(value), nil
			}
		}
		return Value{}, p.fail(models.ErrInvalidEnumValue, "--%s valid values: [%s]",
			spec.Name, strings.Join(spec.Enum, ", "))
	default:
		return Value{}, fmt.Errorf("option --%s has unsupported kind %s", spec.Name, spec.Kind)
	}
}
