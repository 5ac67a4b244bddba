package toon

import (
	"errors"

	"github.com/ondatra-labs/toon/internal/decode"
	"github.com/ondatra-labs/toon/internal/encode"
)

var errTooManyConfigs = errors.New("toon: at most one config argument is allowed")

// Encode renders v as a TOON document. An optional cfg overrides the Core
// Profile defaults (DefaultEncoderConfig); passing more than one cfg is an
// error.
func Encode(v Value, cfg ...EncoderConfig) (string, error) {
	c, err := resolveEncoderConfig(cfg)
	if err != nil {
		return "", err
	}
	return encode.Encode(v, c)
}

// Decode parses a TOON document into a Value tree. An optional cfg
// overrides the Core Profile defaults (DefaultDecoderConfig); passing more
// than one cfg is an error.
func Decode(text string, cfg ...DecoderConfig) (Value, error) {
	c, err := resolveDecoderConfig(cfg)
	if err != nil {
		return Value{}, err
	}
	return decode.Decode(text, c)
}

func resolveEncoderConfig(cfg []EncoderConfig) (EncoderConfig, error) {
	switch len(cfg) {
	case 0:
		return DefaultEncoderConfig(), nil
	case 1:
		return cfg[0], nil
	default:
		return EncoderConfig{}, errTooManyConfigs
	}
}

func resolveDecoderConfig(cfg []DecoderConfig) (DecoderConfig, error) {
	switch len(cfg) {
	case 0:
		return DefaultDecoderConfig(), nil
	case 1:
		return cfg[0], nil
	default:
		return DecoderConfig{}, errTooManyConfigs
	}
}
