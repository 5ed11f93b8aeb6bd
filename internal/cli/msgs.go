package cli

import (
	"embed"
	"strings"
)

// Root command messages
const (
	MsgRootShort = "Materialize template trees into directories"

	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Preview changes without writing anything"
	MsgFlagFormat    = "Output format: auto, term, text or json"
	MsgFlagTemplates = "Templates directory (overrides templates_dir)"

	MsgGroupCore   = "Materialize:"
	MsgGroupConfig = "Catalog and config:"
	MsgGroupMisc   = "Misc:"
)

// Command groups
const (
	GroupCore   = "core"
	GroupConfig = "config"
	GroupMisc   = "misc"
)

var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)

// helpTopics are the pages served by "stamp help <topic>"
//
//go:embed topics
var helpTopics embed.FS
