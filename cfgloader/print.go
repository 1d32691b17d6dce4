package cfgloader

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/forja-labs/pkg/mask"
)

// printConfig prints the loaded config with sensitive fields masked,
// one dotted path per line in declaration order.
func printConfig(config any) {
	om := mask.StructToOrdMap(config)
	if om == nil {
		return
	}

	var b strings.Builder
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(&b, "  %s: %v\n", pair.Key, pair.Value)
	}

	slog.Info(fmt.Sprintf("Loaded config:\n%s", b.String()))
}
