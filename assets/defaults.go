package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultGuardrailYAML contains the embedded default guardrail rules.
//
//go:embed defaults/guardrail.yaml
var DefaultGuardrailYAML []byte

// FallbackScriptPY is the stock floor-plan script served by the builtin
// offline provider.
//
//go:embed templates/fallback_plan.py
var FallbackScriptPY []byte

// FallbackHelloPY is the stock generic script served by the builtin offline
// provider for non-drawing prompts.
//
//go:embed templates/fallback_hello.py
var FallbackHelloPY []byte
