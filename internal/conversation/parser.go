// Package conversation provides command parsing and user notification implementations.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/ottodough/internal/domain"
	"github.com/hammamikhairi/ottodough/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches calculator commands using keywords and simple patterns.
// Numeric arguments are passed through as text; range and format checks
// happen at the input boundary before the engine is called.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex *regexp.Regexp
	build func(m []string) *domain.Intent
}

const num = `(-?[0-9]*\.?[0-9]+\s*[g%]?|\S+)`

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), simple(domain.IntentHelp)},
		{regexp.MustCompile(`(?i)^(quit|exit|q|bye)$`), simple(domain.IntentQuit)},
		{regexp.MustCompile(`(?i)^(summary|show|status|s)$`), simple(domain.IntentSummary)},
		{regexp.MustCompile(`(?i)^(reset|clear)$`), simple(domain.IntentReset)},
		{regexp.MustCompile(`(?i)^(types|flours|flour types)$`), simple(domain.IntentListFlourTypes)},
		{regexp.MustCompile(`(?i)^(presets|list presets)$`), simple(domain.IntentListPresets)},
		{regexp.MustCompile(`(?i)^(?:preset|use|load)\s+(.+)$`), func(m []string) *domain.Intent {
			return &domain.Intent{Type: domain.IntentApplyPreset, Target: strings.TrimSpace(m[1])}
		}},
		{regexp.MustCompile(`(?i)^(?:add|\+)(?:\s+(.*))?$`), parseAdd},
		{regexp.MustCompile(`(?i)^(?:remove|rm|delete|del)\s+(\S+)$`), func(m []string) *domain.Intent {
			return &domain.Intent{Type: domain.IntentRemoveFlour, Target: m[1]}
		}},
		{regexp.MustCompile(`(?i)^(?:rename|name|type)\s+(\S+)\s+(.+)$`), func(m []string) *domain.Intent {
			return &domain.Intent{Type: domain.IntentRenameFlour, Target: m[1], Name: strings.TrimSpace(m[2])}
		}},
		{regexp.MustCompile(`(?i)^(?:flour|weigh)\s+(\S+)\s+` + num + `$`), func(m []string) *domain.Intent {
			return &domain.Intent{Type: domain.IntentReweighFlour, Target: m[1], Value: m[2]}
		}},
		{regexp.MustCompile(`(?i)^(?:hydration|hyd)\s+` + num + `$`), ratio(domain.FieldWater)},
		{regexp.MustCompile(`(?i)^(?:starter%|starter ratio|leaven%)\s+` + num + `$`), ratio(domain.FieldStarter)},
		{regexp.MustCompile(`(?i)^(?:salt%|salt ratio)\s+` + num + `$`), ratio(domain.FieldSalt)},
		{regexp.MustCompile(`(?i)^(?:water|w)\s+` + num + `$`), massOrRatio(domain.FieldWater)},
		{regexp.MustCompile(`(?i)^(?:starter|leaven|levain)\s+` + num + `$`), massOrRatio(domain.FieldStarter)},
		{regexp.MustCompile(`(?i)^salt\s+` + num + `$`), massOrRatio(domain.FieldSalt)},
	}
	return p
}

// Parse converts user input into an intent.
func (p *KeywordParser) Parse(ctx context.Context, input string, session *domain.Session) (*domain.Intent, error) {
	trimmed := strings.Join(strings.Fields(input), " ")
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		intent := rule.build(m)
		intent.Payload = trimmed
		p.log.Debug("matched intent: %s", intent.Type)
		return intent, nil
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

func simple(t domain.IntentType) func([]string) *domain.Intent {
	return func([]string) *domain.Intent { return &domain.Intent{Type: t} }
}

func ratio(f domain.Field) func([]string) *domain.Intent {
	return func(m []string) *domain.Intent {
		return &domain.Intent{Type: domain.IntentSetRatio, Field: f, Value: m[1]}
	}
}

// massOrRatio treats a trailing "%" as a ratio edit, anything else as grams.
func massOrRatio(f domain.Field) func([]string) *domain.Intent {
	return func(m []string) *domain.Intent {
		v := strings.TrimSpace(m[1])
		if strings.HasSuffix(v, "%") {
			return &domain.Intent{Type: domain.IntentSetRatio, Field: f, Value: v}
		}
		return &domain.Intent{Type: domain.IntentSetMass, Field: f, Value: v}
	}
}

// parseAdd splits "add [name...] [grams]". A trailing number is the mass.
func parseAdd(m []string) *domain.Intent {
	intent := &domain.Intent{Type: domain.IntentAddFlour}
	fields := strings.Fields(m[1])
	if n := len(fields); n > 0 && looksNumeric(fields[n-1]) {
		intent.Value = fields[n-1]
		fields = fields[:n-1]
	}
	intent.Name = strings.Join(fields, " ")
	return intent
}

func looksNumeric(s string) bool {
	s = strings.TrimSuffix(s, "g")
	if s == "" {
		return false
	}
	dot := false
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !dot:
			dot = true
		case c == '-' && i == 0:
		default:
			return false
		}
	}
	return true
}
