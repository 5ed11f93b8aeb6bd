package apply

import (
	_ "embed"
	"strings"
)

// Message constants
const (
	MsgShort = "Materialize a template tree into a target directory"

	MsgFlagExistsPolicy = "What to do with files that already exist: skip, error or overwrite (default from config)"
	MsgFlagName         = "Value for the __NAME__ path marker"
	MsgFlagSub          = "Path substitution MARKER=VALUE (repeatable)"
	MsgFlagValues       = "Values file (.yaml, .yml, .toml or .json, repeatable)"
	MsgFlagSet          = "Template value key=value, dotted keys nest (repeatable)"
)

// Embedded message files
var (
	//go:embed apply-long.txt
	msgLongRaw string
	MsgLong    = strings.TrimSpace(msgLongRaw)

	//go:embed apply-example.txt
	msgExampleRaw string
	MsgExample    = strings.TrimSpace(msgExampleRaw)
)
