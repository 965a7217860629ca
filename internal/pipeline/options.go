package pipeline

import (
	"errors"
	"fmt"

	"github.com/dgallion1/specgest/internal/config"
	"github.com/dgallion1/specgest/internal/extract"
	"github.com/dgallion1/specgest/internal/record"
	"github.com/dgallion1/specgest/internal/segment"
)

// ErrUnknownOption is returned for an option string no engine mode accepts.
var ErrUnknownOption = errors.New("unknown option")

// Options is the single configuration shared by every engine mode.
type Options struct {
	AnchorStrictness extract.AnchorStrictness
	HierarchyNaming  record.Naming
	RecordShape      record.Shape
	KeyPhrases       bool
	HeaderStrictness segment.Strictness
	PDFFallback      bool
}

func DefaultOptions() Options {
	return Options{
		AnchorStrictness: extract.AnchorLoose,
		HierarchyNaming:  record.Named,
		RecordShape:      record.Nested,
		HeaderStrictness: segment.Lenient,
		PDFFallback:      true,
	}
}

// ParseOptions validates option strings. Empty strings select defaults.
func ParseOptions(anchors, naming, shape, headers string, keyPhrases bool) (Options, error) {
	opts := DefaultOptions()
	opts.KeyPhrases = keyPhrases

	switch extract.AnchorStrictness(anchors) {
	case "":
	case extract.AnchorLoose, extract.AnchorStrict:
		opts.AnchorStrictness = extract.AnchorStrictness(anchors)
	default:
		return opts, fmt.Errorf("%w: anchor strictness %q", ErrUnknownOption, anchors)
	}

	n, err := record.ParseNaming(naming)
	if err != nil {
		return opts, fmt.Errorf("%w: %v", ErrUnknownOption, err)
	}
	opts.HierarchyNaming = n

	s, err := record.ParseShape(shape)
	if err != nil {
		return opts, fmt.Errorf("%w: %v", ErrUnknownOption, err)
	}
	opts.RecordShape = s

	switch segment.Strictness(headers) {
	case "":
	case segment.Lenient, segment.Strict:
		opts.HeaderStrictness = segment.Strictness(headers)
	default:
		return opts, fmt.Errorf("%w: header strictness %q", ErrUnknownOption, headers)
	}
	return opts, nil
}

// OptionsFromConfig builds engine options from loaded configuration.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	opts, err := ParseOptions(cfg.AnchorStrictness, cfg.HierarchyNaming, cfg.RecordShape, cfg.HeaderStrictness, cfg.KeyPhrases)
	if err != nil {
		return opts, err
	}
	opts.PDFFallback = cfg.PDFFallbackPdftotext
	return opts, nil
}
