package newcmd

// Message constants
const (
	MsgShort = "Create a project from a template family"
	MsgLong  = `New materializes a template family from the templates directory into
<target-path>. The chosen variant is applied first, then every --example in
the order given, all into the same target.

Each family is a subcommand. Its variables become flags: a variable
app_name is passed as --app-name, rendered as {{ app_name }} and replaces
the __APP_NAME__ path marker.`
	MsgExample = `  stamp new app ./my-app --app-name my_app
  stamp new app ./my-app --app-name my_app --variant minimal --example mnist`

	MsgFamilyShort = "Create a project from the %s family"

	MsgFlagVariant      = "Variant to materialize"
	MsgFlagExample      = "Example to add after the variant (repeatable)"
	MsgFlagExistsPolicy = "What to do with files that already exist: skip, error or overwrite (default from config)"
)
