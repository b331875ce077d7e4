package instruction

import (
	"strings"

	"github.com/kailas-cloud/mediasense/internal/db"
	"github.com/kailas-cloud/mediasense/internal/domain"
)

func keyPrefix() string { return domain.KeyPrefix + "instruction:" }

func indexName() string { return domain.KeyPrefix + "instruction:idx" }

func docKey(id string) string { return keyPrefix() + id }

func buildIndex() (*db.IndexDefinition, error) {
	return db.NewIndex(indexName(), keyPrefix()).
		Text("$.technology", "technology").
		Text("$.instruction", "instruction").
		Text("$.strict_rules[*]", "strict_rules").
		Build()
}

// technologyQuery matches templates whose technology contains every word of filter,
// each word treated as a token prefix.
func technologyQuery(filter string) string {
	words := strings.Fields(strings.ToLower(filter))
	if len(words) == 0 {
		return "*"
	}
	terms := make([]string, 0, len(words))
	for _, w := range words {
		term := queryEscaper.Replace(w)
		if len([]rune(w)) >= 2 {
			term += "*"
		}
		terms = append(terms, term)
	}
	return "@technology:(" + strings.Join(terms, " ") + ")"
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`, `'`, `\'`, `"`, `\"`, `@`, `\@`, `{`, `\{`, `}`, `\}`,
	`(`, `\(`, `)`, `\)`, `|`, `\|`, `-`, `\-`, `~`, `\~`, `*`, `\*`,
	`[`, `\[`, `]`, `\]`, `!`, `\!`, `%`, `\%`, `^`, `\^`, `$`, `\$`,
	`<`, `\<`, `>`, `\>`, `=`, `\=`, `;`, `\;`, `+`, `\+`, `.`, `\.`,
	`,`, `\,`, `:`, `\:`,
)
